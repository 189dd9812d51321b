package httpapi

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	"github.com/allisson/vaultkeep/internal/httpapi/dto"
	"github.com/allisson/vaultkeep/internal/httputil"
	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
	secretsUsecase "github.com/allisson/vaultkeep/internal/secrets/usecase"
	customValidation "github.com/allisson/vaultkeep/internal/validation"
)

// SecretHandler handles HTTP requests for the versioned secret store.
type SecretHandler struct {
	secretUseCase secretsUsecase.SecretUseCase
	logger        *slog.Logger
}

// NewSecretHandler creates a new secret handler.
func NewSecretHandler(secretUseCase secretsUsecase.SecretUseCase, logger *slog.Logger) *SecretHandler {
	return &SecretHandler{secretUseCase: secretUseCase, logger: logger}
}

// PutHandler creates or updates a secret. PUT /v1/workspaces/:workspace/secrets/*key -
// requires PermissionCreate.
func (h *SecretHandler) PutHandler(c *gin.Context) {
	workspace := workspaceFrom(c)
	key := trimKeyParam(c.Param("key"))

	var req dto.PutSecretRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(plaintext)

	authCtx, _ := AuthContextFrom(c.Request.Context())

	output, err := h.secretUseCase.Put(c.Request.Context(), &secretsDomain.PutInput{
		WorkspaceID: workspace.ID,
		Key:         key,
		Type:        req.Type,
		Plaintext:   plaintext,
		Tags:        req.Tags,
		Description: req.Description,
		Actor:       authCtx.ActorID,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPutOutputToResponse(output))
}

// GetHandler decrypts and returns a secret's current or a specific version.
// GET /v1/workspaces/:workspace/secrets/*key - requires PermissionRead.
// An optional ?version= query parameter selects a historical version.
func (h *SecretHandler) GetHandler(c *gin.Context) {
	workspace := workspaceFrom(c)
	key := trimKeyParam(c.Param("key"))

	var version uint
	if raw := c.Query("version"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httputil.HandleValidationErrorGin(c, err, h.logger)
			return
		}
		version = uint(v)
	}

	decrypted, err := h.secretUseCase.Get(c.Request.Context(), workspace.ID, key, version)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	value := base64.StdEncoding.EncodeToString(decrypted.Plaintext)
	response := dto.MapDecryptedSecretToResponse(decrypted, value)
	cryptoDomain.Zero(decrypted.Plaintext)

	c.JSON(http.StatusOK, response)
}

// ListHandler lists secret metadata within a workspace, optionally filtered
// by key prefix. GET /v1/workspaces/:workspace/secrets - requires
// PermissionList.
func (h *SecretHandler) ListHandler(c *gin.Context) {
	workspace := workspaceFrom(c)
	prefix := c.Query("prefix")

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	items, total, err := h.secretUseCase.List(c.Request.Context(), workspace.ID, prefix, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapListItemsToResponse(items, total))
}

// VersionsHandler lists a secret's version history.
// GET /v1/workspaces/:workspace/secret-versions/*key - requires PermissionRead.
func (h *SecretHandler) VersionsHandler(c *gin.Context) {
	workspace := workspaceFrom(c)
	key := trimKeyParam(c.Param("key"))

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	versions, err := h.secretUseCase.Versions(c.Request.Context(), workspace.ID, key, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVersionsToResponse(versions))
}

// DeleteHandler removes a secret and all of its versions.
// DELETE /v1/workspaces/:workspace/secrets/*key - requires PermissionDelete.
func (h *SecretHandler) DeleteHandler(c *gin.Context) {
	workspace := workspaceFrom(c)
	key := trimKeyParam(c.Param("key"))

	if err := h.secretUseCase.Delete(c.Request.Context(), workspace.ID, key); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// trimKeyParam strips the leading slash Gin's wildcard route parameter
// always includes.
func trimKeyParam(raw string) string {
	if len(raw) > 0 && raw[0] == '/' {
		return raw[1:]
	}
	return raw
}
