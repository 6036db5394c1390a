package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/internal/config"
	"github.com/dispatch-rota/scheduler/pkg/core/services"
	"github.com/dispatch-rota/scheduler/pkg/postgres"
	"github.com/dispatch-rota/scheduler/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	env string
	app *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "scheduler",
		Short: "Dispatcher shift scheduler - generate and validate shift schedules",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.database != nil {
					app.database.Close()
				}
				if app.logger != nil {
					app.logger.Sync()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(listRosterCmd())
	rootCmd.AddCommand(listRequirementsCmd())
	rootCmd.AddCommand(requestTimeOffCmd())
	rootCmd.AddCommand(cancelShiftCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting scheduler", zap.String("environment", env))

	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.logger.Info("Database connection established")

	return nil
}

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <period_id>",
		Short: "Generate shift assignments for a schedule period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			periodID := args[0]
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			allowOvertime, _ := cmd.Flags().GetBool("allow-overtime")
			considerPreferences, _ := cmd.Flags().GetBool("consider-preferences")

			params := services.GenerateParams{
				ConsiderPreferences: considerPreferences || app.cfg.Generation.ConsiderPreferences,
				AllowOvertime:       allowOvertime || app.cfg.Generation.AllowOvertime,
				DryRun:              dryRun,
			}

			result, err := services.GenerateSchedule(app.ctx, app.database, app.cfg, app.logger, periodID, params)
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule generated\n\n")
			fmt.Printf("Shifts generated:      %d\n", result.ShiftsGenerated)
			fmt.Printf("Unfilled requirements: %d\n", result.UnfilledRequirements)
			if dryRun {
				fmt.Println("(dry run - nothing was saved)")
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving assignments")
	cmd.Flags().Bool("allow-overtime", false, "Let approved overtime raise weekly ceilings")
	cmd.Flags().Bool("consider-preferences", false, "Balance load and honor preferred shift categories")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <period_id>",
		Short: "Validate a period's stored assignments against staffing requirements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.ValidateSchedulePeriod(app.ctx, app.database, app.cfg, app.logger, args[0])
			if err != nil {
				return err
			}

			if result.Valid {
				fmt.Println("\nSchedule is valid")
				return nil
			}

			fmt.Printf("\nSchedule has %d violations:\n", len(result.Errors))
			for _, msg := range result.Errors {
				fmt.Printf("  - %s\n", msg)
			}
			fmt.Println()

			return nil
		},
	}
}

func listRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listRoster <period_id>",
		Short: "List the employees on a period's roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := app.database.GetRoster(app.ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list roster: %w", err)
			}

			fmt.Printf("\nFound %d employees:\n\n", len(roster))
			for _, e := range roster {
				fmt.Printf("- %s %s (%s) - %s - pattern %s, cap %gh",
					e.FirstName, e.LastName, e.ID, e.Role, e.ShiftPattern, e.WeeklyHoursCap)
				if e.MaxOvertimeHours > 0 {
					fmt.Printf(" (+%gh overtime)", e.MaxOvertimeHours)
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func listRequirementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listRequirements",
		Short: "List all staffing requirement blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			requirements, err := app.database.GetStaffingRequirements(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list requirements: %w", err)
			}

			fmt.Printf("\nFound %d staffing blocks:\n\n", len(requirements))
			for _, r := range requirements {
				fmt.Printf("- %s-%s: min %d employees, min %d supervisors",
					r.StartTime, r.EndTime, r.MinEmployees, r.MinSupervisors)
				if r.DayOfWeek != "" {
					fmt.Printf(" (%s only)", r.DayOfWeek)
				}
				if r.HolidayOnly {
					fmt.Printf(" (holidays only)")
				}
				fmt.Println()
			}

			return nil
		},
	}
}

func requestTimeOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requestTimeOff <employee_id> <start_date> <end_date>",
		Short: "File a time off request for an employee",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := services.RequestTimeOff(app.ctx, app.database, app.logger, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Printf("\nTime off request filed (pending approval)\n")
			fmt.Printf("Request ID: %s\n", request.ID)
			fmt.Printf("Dates:      %s to %s\n\n", request.StartDate, request.EndDate)

			return nil
		},
	}
}

func cancelShiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancelShift <assignment_id>",
		Short: "Cancel a scheduled shift if coverage allows it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.CancelAssignment(app.ctx, app.database, app.cfg, app.logger, args[0])
			if err != nil {
				return err
			}

			if !result.Valid {
				fmt.Printf("\nShift cannot be cancelled:\n")
				for _, msg := range result.Errors {
					fmt.Printf("  - %s\n", msg)
				}
				fmt.Println()
				return nil
			}

			fmt.Println("\nShift cancelled")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.database.RunMigrations(app.ctx); err != nil {
				return err
			}
			fmt.Println("Migrations applied")
			return nil
		},
	}
}
