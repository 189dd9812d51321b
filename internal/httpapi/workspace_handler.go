package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/vaultkeep/internal/httpapi/dto"
	"github.com/allisson/vaultkeep/internal/httputil"
	customValidation "github.com/allisson/vaultkeep/internal/validation"
	workspaceUsecase "github.com/allisson/vaultkeep/internal/workspace/usecase"
)

// WorkspaceHandler handles HTTP requests for workspace bootstrap.
type WorkspaceHandler struct {
	workspaceUseCase workspaceUsecase.WorkspaceUseCase
	logger           *slog.Logger
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(workspaceUseCase workspaceUsecase.WorkspaceUseCase, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceUseCase: workspaceUseCase, logger: logger}
}

// CreateHandler creates a new workspace.
// POST /v1/workspaces - Unauthenticated: a workspace is the tenant boundary
// that a token must already be bound to, so bootstrapping the first one
// cannot itself require a token. Operators are expected to restrict network
// access to this endpoint (see cmd/vaultkeep's create-workspace command for
// an out-of-band alternative).
func (h *WorkspaceHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	workspace, err := h.workspaceUseCase.Create(c.Request.Context(), req.Slug, req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapWorkspaceToResponse(workspace))
}
