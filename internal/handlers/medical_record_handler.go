package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/odontolab/clinic-api/internal/authz"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/httpresp"
	"github.com/odontolab/clinic-api/internal/middleware"
	"github.com/odontolab/clinic-api/internal/models"
)

// MedicalRecordHandler manages clinical history entries. Dentists
// author records as themselves; only the author or an administrator
// may read or amend one.
type MedicalRecordHandler struct {
	db *gorm.DB
}

func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{db: db}
}

type CreateMedicalRecordRequest struct {
	PatientID       string  `json:"patient_id" binding:"required,uuid"`
	VisitDate       string  `json:"visit_date" binding:"required"`
	Diagnosis       string  `json:"diagnosis" binding:"required"`
	Treatment       string  `json:"treatment" binding:"required"`
	Notes           string  `json:"notes"`
	TeethChart      string  `json:"teeth_chart"`
	NextAppointment *string `json:"next_appointment"`
}

type UpdateMedicalRecordRequest struct {
	Diagnosis  *string `json:"diagnosis"`
	Treatment  *string `json:"treatment"`
	Notes      *string `json:"notes"`
	TeethChart *string `json:"teeth_chart"`
}

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if !authz.CanCreateMedicalRecord(caller) {
		httperr.Forbidden(c, httperr.CodeNotAuthorized, "Only dentists may create medical records.")
		return
	}

	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	visitDate, err := time.Parse(time.RFC3339, req.VisitDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_visit_date", "visit_date must be RFC 3339.")
		return
	}

	patientID := uuid.MustParse(req.PatientID)
	var patient models.Patient
	if err := h.db.First(&patient, "id = ?", patientID).Error; err != nil {
		httperr.NotFound(c, httperr.CodePatientNotFound, "Patient not found.")
		return
	}

	record := models.MedicalRecord{
		PatientID:  patientID,
		DentistID:  caller.ID, // records are always authored as oneself
		VisitDate:  visitDate,
		Diagnosis:  req.Diagnosis,
		Treatment:  req.Treatment,
		Notes:      req.Notes,
		TeethChart: req.TeethChart,
	}

	if req.NextAppointment != nil && *req.NextAppointment != "" {
		next, err := time.Parse(time.RFC3339, *req.NextAppointment)
		if err != nil {
			httperr.BadRequest(c, "invalid_next_appointment", "next_appointment must be RFC 3339.")
			return
		}
		record.NextAppointment = &next
	}

	if err := h.db.Omit("Patient", "Dentist").Create(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_create_record", "Could not create medical record.")
		return
	}

	httpresp.Created(c, record)
}

func (h *MedicalRecordHandler) Get(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid medical record id.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.Preload("Patient").Preload("Dentist").First(&record, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeRecordNotFound, "Medical record not found.")
		return
	}

	if !authz.CanAccessMedicalRecord(caller, record.DentistID) {
		httperr.Forbidden(c, httperr.CodeNotAuthorized, "You don't have permission to view this medical record.")
		return
	}

	httpresp.OK(c, record)
}

func (h *MedicalRecordHandler) List(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	q := h.db.Model(&models.MedicalRecord{})

	// Dentists only ever see their own records, whatever they filter.
	switch caller.Role {
	case authz.RoleDentist:
		q = q.Where("dentist_id = ?", caller.ID)
	case authz.RoleAdministrator:
	default:
		httperr.Forbidden(c, httperr.CodeNotAuthorized, "You don't have permission to list medical records.")
		return
	}

	if v := c.Query("patient_id"); v != "" {
		patientID, err := uuid.Parse(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_patient_id", "Invalid patient id.")
			return
		}
		q = q.Where("patient_id = ?", patientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Could not list medical records.")
		return
	}

	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(c, "per_page", 50)
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	var records []models.MedicalRecord
	if err := q.
		Preload("Patient").
		Order("visit_date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&records).Error; err != nil {
		httperr.Internal(c, "failed_to_list_records", "Could not list medical records.")
		return
	}

	httpresp.List(c, records, total)
}

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid medical record id.")
		return
	}

	var record models.MedicalRecord
	if err := h.db.First(&record, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeRecordNotFound, "Medical record not found.")
		return
	}

	if !authz.CanAccessMedicalRecord(caller, record.DentistID) {
		httperr.Forbidden(c, httperr.CodeNotAuthorized, "You can only amend your own medical records.")
		return
	}

	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Diagnosis != nil {
		record.Diagnosis = *req.Diagnosis
	}
	if req.Treatment != nil {
		record.Treatment = *req.Treatment
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}
	if req.TeethChart != nil {
		record.TeethChart = *req.TeethChart
	}

	if err := h.db.Omit("Patient", "Dentist").Save(&record).Error; err != nil {
		httperr.Internal(c, "failed_to_update_record", "Could not update medical record.")
		return
	}

	httpresp.OK(c, record)
}

func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if !authz.CanDeleteMedicalRecord(caller) {
		httperr.Forbidden(c, httperr.CodeNotAuthorized, "Only administrators may delete medical records.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid medical record id.")
		return
	}

	res := h.db.Delete(&models.MedicalRecord{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_record", "Could not delete medical record.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, httperr.CodeRecordNotFound, "Medical record not found.")
		return
	}

	c.Status(204)
}
