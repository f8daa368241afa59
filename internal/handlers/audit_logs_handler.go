package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/odontolab/clinic-api/internal/authz"
	"github.com/odontolab/clinic-api/internal/httperr"
	"github.com/odontolab/clinic-api/internal/httpresp"
	"github.com/odontolab/clinic-api/internal/middleware"
	"github.com/odontolab/clinic-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	caller := middleware.CallerFrom(c)
	if caller.Role != authz.RoleAdministrator {
		httperr.Forbidden(c, httperr.CodeNotAuthorized, "Only administrators may view audit logs.")
		return
	}

	q := h.db.Model(&models.AuditLog{})

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(c, "per_page", 50)
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Could not list audit logs.")
		return
	}

	httpresp.List(c, logs, total)
}
