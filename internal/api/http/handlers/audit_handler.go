package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redesmx/isp-backoffice/internal/api/dto"
	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/repository"
)

// AuditHandler exposes the read-only audit trail to administrators.
type AuditHandler struct {
	audit repository.AuditLogRepository
}

// NewAuditHandler constructs handler.
func NewAuditHandler(audit repository.AuditLogRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListAuditLogs GET /staff/audit-logs.
func (h *AuditHandler) ListAuditLogs(c *fiber.Ctx) error {
	filter := repository.AuditFilter{}
	if table := c.Query("table"); table != "" {
		filter.TableName = &table
	}
	if record := c.Query("record_id"); record != "" {
		filter.RecordID = &record
	}
	if action := c.Query("action"); action != "" {
		parsed := domain.AuditAction(action)
		filter.Action = &parsed
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	entries, err := h.audit.ListWithFilter(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.AuditLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.AuditLogResponse{
			ID:          entry.ID,
			TableName:   entry.TableName,
			RecordID:    entry.RecordID,
			Action:      entry.Action,
			OldData:     entry.OldData,
			NewData:     entry.NewData,
			PerformedBy: entry.PerformedBy,
			PerformedAt: entry.PerformedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
