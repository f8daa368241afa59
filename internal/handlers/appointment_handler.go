package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/odontolab/clinic-api/internal/dto"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/httpresp"
	"github.com/odontolab/clinic-api/internal/middleware"

	domain "github.com/odontolab/clinic-api/internal/domain/appointment"
	ucAppointment "github.com/odontolab/clinic-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	getUC        *ucAppointment.GetAppointment
	listUC       *ucAppointment.ListAppointments
	updateUC     *ucAppointment.UpdateAppointment
	statusUC     *ucAppointment.UpdateStatus
	cancelUC     *ucAppointment.CancelAppointment
	deleteUC     *ucAppointment.HardDeleteAppointment
	availUC      *ucAppointment.CheckAvailability
	upcomingUC   *ucAppointment.ListUpcoming
	statsUC      *ucAppointment.GetStats
	clinicTZ     *time.Location
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	getUC *ucAppointment.GetAppointment,
	listUC *ucAppointment.ListAppointments,
	updateUC *ucAppointment.UpdateAppointment,
	statusUC *ucAppointment.UpdateStatus,
	cancelUC *ucAppointment.CancelAppointment,
	deleteUC *ucAppointment.HardDeleteAppointment,
	availUC *ucAppointment.CheckAvailability,
	upcomingUC *ucAppointment.ListUpcoming,
	statsUC *ucAppointment.GetStats,
	clinicTZ *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		getUC:      getUC,
		listUC:     listUC,
		updateUC:   updateUC,
		statusUC:   statusUC,
		cancelUC:   cancelUC,
		deleteUC:   deleteUC,
		availUC:    availUC,
		upcomingUC: upcomingUC,
		statsUC:    statsUC,
		clinicTZ:   clinicTZ,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" binding:"required,uuid"`
	DentistID       string `json:"dentist_id" binding:"required,uuid"`
	ScheduledTime   string `json:"scheduled_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Reason          string `json:"reason"`
	Notes           string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ScheduledTime   *string `json:"scheduled_time"`
	DurationMinutes *int    `json:"duration_minutes"`
	Reason          *string `json:"reason"`
	Notes           *string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	scheduledTime, err := time.Parse(time.RFC3339, req.ScheduledTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_scheduled_time", "scheduled_time must be RFC 3339.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		PatientID:       uuid.MustParse(req.PatientID),
		DentistID:       uuid.MustParse(req.DentistID),
		ScheduledTime:   scheduledTime,
		DurationMinutes: req.DurationMinutes,
		Reason:          req.Reason,
		Notes:           req.Notes,
	}, caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// GET / LIST
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), id, caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	filters, err := h.parseListFilters(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_filters", err.Error())
		return
	}

	apps, total, err := h.listUC.Execute(c.Request.Context(), filters, caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(apps), total)
}

// ======================================================
// UPDATE / STATUS / CANCEL / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var patch ucAppointment.UpdatePatch
	if req.ScheduledTime != nil {
		t, err := time.Parse(time.RFC3339, *req.ScheduledTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_scheduled_time", "scheduled_time must be RFC 3339.")
			return
		}
		patch.ScheduledTime = &t
	}
	patch.DurationMinutes = req.DurationMinutes
	patch.Reason = req.Reason
	patch.Notes = req.Notes

	ap, err := h.updateUC.Execute(c.Request.Context(), id, patch, caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	status := domain.Status(req.Status)
	if !domain.IsValidStatus(status) {
		httperr.BadRequest(c, "invalid_status", "Unknown appointment status.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), id, status, req.Notes, caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req CancelAppointmentRequest
	// body is optional for cancel
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.Execute(c.Request.Context(), id, req.Reason, caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) HardDelete(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), id, caller); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(204)
}

// ======================================================
// AVAILABILITY / UPCOMING / STATS
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	dentistID, err := uuid.Parse(c.Query("dentist_id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_dentist_id", "dentist_id is required.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), h.clinicTZ)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	in := ucAppointment.AvailabilityInput{
		DentistID:           dentistID,
		Date:                date,
		StartHour:           queryInt(c, "start_hour", 0),
		EndHour:             queryInt(c, "end_hour", 0),
		SlotDurationMinutes: queryInt(c, "slot_duration_minutes", 0),
	}

	slots, err := h.availUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"dentist_id": dentistID,
		"date":       date.Format("2006-01-02"),
		"slots":      slots,
	})
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	apps, err := h.upcomingUC.Execute(c.Request.Context(), queryInt(c, "days_ahead", 0), caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(apps), int64(len(apps)))
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, h.clinicTZ)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
			return
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, h.clinicTZ)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
			return
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}

	stats, err := h.statsUC.Execute(c.Request.Context(), from, to, caller)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, stats)
}

// ======================================================
// FILTER PARSING
// ======================================================

func (h *AppointmentHandler) parseListFilters(c *gin.Context) (domain.ListFilters, error) {
	var filters domain.ListFilters

	if v := c.Query("patient_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filters, err
		}
		filters.PatientID = &id
	}
	if v := c.Query("dentist_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filters, err
		}
		filters.DentistID = &id
	}
	if v := c.Query("status"); v != "" {
		status := domain.Status(v)
		filters.Status = &status
	}
	if v := c.Query("from"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, h.clinicTZ)
		if err != nil {
			return filters, err
		}
		filters.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, h.clinicTZ)
		if err != nil {
			return filters, err
		}
		end := t.AddDate(0, 0, 1)
		filters.To = &end
	}

	filters.Page = queryInt(c, "page", 1)
	filters.PerPage = queryInt(c, "per_page", 50)

	return filters, nil
}
