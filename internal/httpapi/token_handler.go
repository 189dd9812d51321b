package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
	authUsecase "github.com/allisson/vaultkeep/internal/auth/usecase"
	apperrors "github.com/allisson/vaultkeep/internal/errors"
	"github.com/allisson/vaultkeep/internal/httpapi/dto"
	"github.com/allisson/vaultkeep/internal/httputil"
	customValidation "github.com/allisson/vaultkeep/internal/validation"
)

// TokenHandler handles HTTP requests for bearer token lifecycle operations.
type TokenHandler struct {
	tokenUseCase authUsecase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(tokenUseCase authUsecase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{tokenUseCase: tokenUseCase, logger: logger}
}

// IssueHandler issues a new bearer token for the workspace resolved by
// WorkspaceMiddleware. POST /v1/workspaces/:workspace/tokens - requires
// PermissionCreate.
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	workspace := workspaceFrom(c)

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	authCtx, _ := AuthContextFrom(c.Request.Context())

	var expiresAt *time.Time
	if req.ExpiresInSeconds > 0 {
		t := time.Now().UTC().Add(time.Duration(req.ExpiresInSeconds) * time.Second)
		expiresAt = &t
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &authDomain.IssueTokenInput{
		WorkspaceID: workspace.ID,
		Name:        req.Name,
		Role:        req.Role,
		Scopes:      req.Scopes,
		ExpiresAt:   expiresAt,
		CreatedBy:   authCtx.ActorID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssueTokenToResponse(output))
}

// ListHandler lists every token issued within the resolved workspace.
// GET /v1/workspaces/:workspace/tokens - requires PermissionList.
func (h *TokenHandler) ListHandler(c *gin.Context) {
	workspace := workspaceFrom(c)

	tokens, err := h.tokenUseCase.List(c.Request.Context(), workspace.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapTokensToListResponse(tokens))
}

// RevokeHandler deactivates a token. DELETE /v1/workspaces/:workspace/tokens/:id -
// requires PermissionDelete. Confirms the token belongs to the resolved
// workspace before revoking, since TokenUseCase.Revoke takes only a token ID.
func (h *TokenHandler) RevokeHandler(c *gin.Context) {
	workspace := workspaceFrom(c)

	tokenID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid token id: %w", err), h.logger)
		return
	}

	tokens, err := h.tokenUseCase.List(c.Request.Context(), workspace.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	found := false
	for _, t := range tokens {
		if t.ID == tokenID {
			found = true
			break
		}
	}
	if !found {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, h.logger)
		return
	}

	if err := h.tokenUseCase.Revoke(c.Request.Context(), tokenID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
