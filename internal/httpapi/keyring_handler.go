package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/vaultkeep/internal/crypto/domain"
	"github.com/allisson/vaultkeep/internal/httpapi/dto"
	"github.com/allisson/vaultkeep/internal/httputil"
	keyringUsecase "github.com/allisson/vaultkeep/internal/keyring/usecase"
	customValidation "github.com/allisson/vaultkeep/internal/validation"
)

// KeyringHandler handles HTTP requests for per-workspace keyring rotation.
type KeyringHandler struct {
	keyringManager keyringUsecase.KeyringManager
	masterKeyChain *cryptoDomain.MasterKeyChain
	logger         *slog.Logger
}

// NewKeyringHandler creates a new keyring handler. The master key chain is
// resolved once at process startup and held for the handler's lifetime.
func NewKeyringHandler(
	keyringManager keyringUsecase.KeyringManager,
	masterKeyChain *cryptoDomain.MasterKeyChain,
	logger *slog.Logger,
) *KeyringHandler {
	return &KeyringHandler{keyringManager: keyringManager, masterKeyChain: masterKeyChain, logger: logger}
}

// RotateHandler creates a new active keyring entry for the resolved
// workspace. POST /v1/workspaces/:workspace/keyring/rotate - requires
// PermissionRotate.
func (h *KeyringHandler) RotateHandler(c *gin.Context) {
	workspace := workspaceFrom(c)

	var req dto.RotateKeyringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.keyringManager.Rotate(c.Request.Context(), h.masterKeyChain, workspace.ID, req.Algorithm); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
