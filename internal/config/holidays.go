package config

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// ExpandHolidays evaluates the holiday RRULEs over [start, end] inclusive
// and returns the matching dates as a YYYY-MM-DD set
func ExpandHolidays(rules []string, start, end time.Time) (map[string]bool, error) {
	holidays := make(map[string]bool)

	for i, raw := range rules {
		rule, err := rrule.StrToRRule(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}

		// RRULEs without an explicit DTSTART default to the moment of
		// parsing; anchor them before the window so recurrences inside
		// the period are found
		if rule.OrigOptions.Dtstart.IsZero() {
			rule.DTStart(start.AddDate(-1, 0, 0))
		}

		for _, d := range rule.Between(start, end, true) {
			holidays[d.Format("2006-01-02")] = true
		}
	}

	return holidays, nil
}
