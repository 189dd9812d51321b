package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditUsecase "github.com/allisson/vaultkeep/internal/audit/usecase"
	"github.com/allisson/vaultkeep/internal/httpapi/dto"
	"github.com/allisson/vaultkeep/internal/httputil"
)

// AuditHandler handles HTTP requests for the audit log's read-only surface.
// Purging is deliberately CLI-only; it is not exposed over HTTP.
type AuditHandler struct {
	auditUseCase auditUsecase.UseCase
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(auditUseCase auditUsecase.UseCase, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{auditUseCase: auditUseCase, logger: logger}
}

// ListHandler lists audit records for the resolved workspace, newest first.
// GET /v1/workspaces/:workspace/audit-logs - requires PermissionList.
func (h *AuditHandler) ListHandler(c *gin.Context) {
	workspace := workspaceFrom(c)

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	records, total, err := h.auditUseCase.List(c.Request.Context(), workspace.ID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditRecordsToResponse(records, total))
}

// VerifyHandler recomputes and checks an audit record's signature.
// GET /v1/workspaces/:workspace/audit-logs/:id/verify - requires PermissionRead.
func (h *AuditHandler) VerifyHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.auditUseCase.Verify(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
