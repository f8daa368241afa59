package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/httpresp"
	"github.com/odontolab/clinic-api/internal/models"
)

// ContactHandler takes public contact-form submissions and lets staff
// review them.
type ContactHandler struct {
	db *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db}
}

type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

func (h *ContactHandler) Create(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	contact := models.ContactRequest{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}

	if err := h.db.Create(&contact).Error; err != nil {
		httperr.Internal(c, "failed_to_create_contact", "Could not record contact request.")
		return
	}

	httpresp.Created(c, contact)
}

func (h *ContactHandler) List(c *gin.Context) {
	q := h.db.Model(&models.ContactRequest{})

	if c.Query("handled") == "false" {
		q = q.Where("handled = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_contacts", "Could not list contact requests.")
		return
	}

	var contacts []models.ContactRequest
	if err := q.Order("created_at DESC").Limit(200).Find(&contacts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_contacts", "Could not list contact requests.")
		return
	}

	httpresp.List(c, contacts, total)
}

func (h *ContactHandler) MarkHandled(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid contact request id.")
		return
	}

	var contact models.ContactRequest
	if err := h.db.First(&contact, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeContactNotFound, "Contact request not found.")
		return
	}

	contact.Handled = true
	if err := h.db.Save(&contact).Error; err != nil {
		httperr.Internal(c, "failed_to_update_contact", "Could not update contact request.")
		return
	}

	httpresp.OK(c, contact)
}
