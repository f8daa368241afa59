package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/httpresp"
	"github.com/odontolab/clinic-api/internal/models"
)

type PatientHandler struct {
	db *gorm.DB
}

func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{db: db}
}

type CreatePatientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	BirthDate string `json:"birth_date"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	patient := models.Patient{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if req.BirthDate != "" {
		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_birth_date", "birth_date must be YYYY-MM-DD.")
			return
		}
		patient.BirthDate = &bd
	}

	if err := h.db.Create(&patient).Error; err != nil {
		httperr.Internal(c, "failed_to_create_patient", "Could not create patient.")
		return
	}

	httpresp.Created(c, patient)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid patient id.")
		return
	}

	var patient models.Patient
	if err := h.db.First(&patient, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, httperr.CodePatientNotFound, "Patient not found.")
		return
	}

	httpresp.OK(c, patient)
}

func (h *PatientHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Patient{})

	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR phone LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Could not list patients.")
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

	var patients []models.Patient
	if err := q.
		Order("last_name ASC, first_name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_patients", "Could not list patients.")
		return
	}

	httpresp.List(c, patients, total)
}
