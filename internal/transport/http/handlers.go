package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dispatch-rota/scheduler/internal/config"
	"github.com/dispatch-rota/scheduler/pkg/core/generator"
	"github.com/dispatch-rota/scheduler/pkg/core/model"
	"github.com/dispatch-rota/scheduler/pkg/core/schedule"
	"github.com/dispatch-rota/scheduler/pkg/core/services"
	"github.com/dispatch-rota/scheduler/pkg/db"
)

// Handler serves the JSON API over the scheduling core
type Handler struct {
	Database db.Database
	Cfg      *config.Config
	Logger   *zap.Logger
}

// NewHandler creates an API handler
func NewHandler(database db.Database, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{Database: database, Cfg: cfg, Logger: logger}
}

// RegisterRoutes mounts the API routes on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/schedule/generate", h.generateSchedule)
		r.Post("/schedule/validate", h.validateSchedule)
		r.Post("/assignments", h.createAssignment)
		r.Post("/assignments/validate", h.validateAssignment)
		r.Post("/assignments/{id}/cancel", h.cancelAssignment)
		r.Post("/timeoff", h.requestTimeOff)
		r.Get("/requirements", h.listRequirements)
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type generateRequest struct {
	PeriodID            string `json:"periodId"`
	StartDate           string `json:"startDate,omitempty"`
	EndDate             string `json:"endDate,omitempty"`
	ConsiderPreferences *bool  `json:"considerPreferences,omitempty"`
	AllowOvertime       *bool  `json:"allowOvertime,omitempty"`
	DryRun              bool   `json:"dryRun,omitempty"`
}

type generateResponse struct {
	Success              bool                    `json:"success"`
	ShiftsGenerated      int                     `json:"shiftsGenerated"`
	UnfilledRequirements int                     `json:"unfilledRequirements"`
	Errors               []string                `json:"errors"`
	Assignments          []model.ShiftAssignment `json:"assignments"`
}

func (h *Handler) generateSchedule(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PeriodID == "" {
		writeError(w, http.StatusBadRequest, "periodId is required")
		return
	}

	params := services.GenerateParams{
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		ConsiderPreferences: h.Cfg.Generation.ConsiderPreferences,
		AllowOvertime:       h.Cfg.Generation.AllowOvertime,
		DryRun:              req.DryRun,
	}
	if req.ConsiderPreferences != nil {
		params.ConsiderPreferences = *req.ConsiderPreferences
	}
	if req.AllowOvertime != nil {
		params.AllowOvertime = *req.AllowOvertime
	}

	result, err := services.GenerateSchedule(r.Context(), h.Database, h.Cfg, h.Logger, req.PeriodID, params)
	if err != nil {
		if errors.Is(err, generator.ErrInvalidPeriod) || errors.Is(err, generator.ErrMissingData) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.Logger.Error("Schedule generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "schedule generation failed")
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Success:              result.Success,
		ShiftsGenerated:      result.ShiftsGenerated,
		UnfilledRequirements: result.UnfilledRequirements,
		Errors:               result.Errors,
		Assignments:          result.Assignments,
	})
}

type validateRequest struct {
	PeriodID string `json:"periodId"`
}

type validationResponse struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

func (h *Handler) validateSchedule(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PeriodID == "" {
		writeError(w, http.StatusBadRequest, "periodId is required")
		return
	}

	result, err := services.ValidateSchedulePeriod(r.Context(), h.Database, h.Cfg, h.Logger, req.PeriodID)
	if err != nil {
		h.Logger.Error("Schedule validation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "schedule validation failed")
		return
	}

	writeJSON(w, http.StatusOK, validationResponse{IsValid: result.Valid, Errors: result.Errors})
}

type assignmentPayload struct {
	EmployeeID    string `json:"employeeId"`
	ShiftOptionID string `json:"shiftOptionId,omitempty"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	IsSupervisor  bool   `json:"isSupervisor,omitempty"`
}

func (h *Handler) createAssignment(w http.ResponseWriter, r *http.Request) {
	var payload assignmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return
	}

	created, result, err := services.CreateAssignment(r.Context(), h.Database, h.Logger, model.ShiftAssignment{
		EmployeeID:    payload.EmployeeID,
		ShiftOptionID: payload.ShiftOptionID,
		Date:          payload.Date,
		StartTime:     payload.StartTime,
		EndTime:       payload.EndTime,
		IsSupervisor:  payload.IsSupervisor,
	})
	if err != nil {
		h.Logger.Error("Assignment creation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "assignment creation failed")
		return
	}
	if !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{IsValid: false, Errors: result.Errors})
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) cancelAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := services.CancelAssignment(r.Context(), h.Database, h.Cfg, h.Logger, id)
	if err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("Assignment cancellation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "assignment cancellation failed")
		return
	}
	if !result.Valid {
		writeJSON(w, http.StatusConflict, validationResponse{IsValid: false, Errors: result.Errors})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": string(model.StatusCancelled)})
}

func (h *Handler) validateAssignment(w http.ResponseWriter, r *http.Request) {
	var payload assignmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := schedule.ValidateShiftAssignment(model.ShiftAssignment{
		Date:      payload.Date,
		StartTime: payload.StartTime,
		EndTime:   payload.EndTime,
	})

	writeJSON(w, http.StatusOK, validationResponse{IsValid: result.Valid, Errors: result.Errors})
}

type timeOffPayload struct {
	EmployeeID string `json:"employeeId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
}

func (h *Handler) requestTimeOff(w http.ResponseWriter, r *http.Request) {
	var payload timeOffPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employeeId is required")
		return
	}

	request, err := services.RequestTimeOff(r.Context(), h.Database, h.Logger,
		payload.EmployeeID, payload.StartDate, payload.EndDate)
	if err != nil {
		var conflict *services.ErrTimeOffConflict
		if errors.As(err, &conflict) {
			writeError(w, http.StatusConflict, conflict.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, request)
}

func (h *Handler) listRequirements(w http.ResponseWriter, r *http.Request) {
	requirements, err := h.Database.GetStaffingRequirements(r.Context())
	if err != nil {
		h.Logger.Error("Failed to fetch staffing requirements", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch staffing requirements")
		return
	}
	writeJSON(w, http.StatusOK, requirements)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
