package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/vaultkeep/internal/auth/domain"
)

// mockTokenService is a mock implementation of TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (plainToken, fingerprint, tokenHash string, err error) {
	args := m.Called()
	return args.String(0), args.String(1), args.String(2), args.Error(3)
}

func (m *mockTokenService) Fingerprint(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

func (m *mockTokenService) VerifyToken(plainToken, tokenHash string) bool {
	args := m.Called(plainToken, tokenHash)
	return args.Bool(0)
}

// mockTokenRepository is a mock implementation of TokenRepository for testing.
type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenRepository) GetByFingerprint(ctx context.Context, fingerprint string) (*authDomain.Token, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *mockTokenRepository) Get(ctx context.Context, tokenID uuid.UUID) (*authDomain.Token, error) {
	args := m.Called(ctx, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Token), args.Error(1)
}

func (m *mockTokenRepository) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*authDomain.Token, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.Token), args.Error(1)
}

func (m *mockTokenRepository) UpdateLastUsed(ctx context.Context, tokenID uuid.UUID, sourceAddr string, usedAt time.Time) error {
	args := m.Called(ctx, tokenID, sourceAddr, usedAt)
	return args.Error(0)
}

func (m *mockTokenRepository) SetActive(ctx context.Context, tokenID uuid.UUID, isActive bool) error {
	args := m.Called(ctx, tokenID, isActive)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}

		tokenService.On("GenerateToken").Return("vt_plain", "fingerprint-1", "hash-1", nil).Once()
		tokenRepo.On("Create", ctx, mock.MatchedBy(func(tok *authDomain.Token) bool {
			return tok.WorkspaceID == workspaceID && tok.Name == "ci-deploy" && tok.Role == authDomain.RoleWrite
		})).Return(nil).Once()

		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())
		out, err := uc.Issue(ctx, &authDomain.IssueTokenInput{
			WorkspaceID: workspaceID,
			Name:        "ci-deploy",
			Role:        authDomain.RoleWrite,
			CreatedBy:   "operator@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "vt_plain", out.PlainToken)
		tokenRepo.AssertExpectations(t)
		tokenService.AssertExpectations(t)
	})

	t.Run("Error_InvalidRole", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}
		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())

		_, err := uc.Issue(ctx, &authDomain.IssueTokenInput{
			WorkspaceID: workspaceID,
			Name:        "x",
			Role:        authDomain.Role("superuser"),
		})
		assert.Error(t, err)
		tokenRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Error_NameTaken", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}

		tokenService.On("GenerateToken").Return("vt_plain", "fingerprint-2", "hash-2", nil).Once()
		tokenRepo.On("Create", ctx, mock.Anything).Return(authDomain.ErrTokenNameTaken).Once()

		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())
		_, err := uc.Issue(ctx, &authDomain.IssueTokenInput{
			WorkspaceID: workspaceID,
			Name:        "dup",
			Role:        authDomain.RoleRead,
		})
		assert.ErrorIs(t, err, authDomain.ErrTokenNameTaken)
	})
}

func TestTokenUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.Must(uuid.NewV7())
	tokenID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}

		stored := &authDomain.Token{
			ID:          tokenID,
			WorkspaceID: workspaceID,
			Role:        authDomain.RoleAdmin,
			TokenHash:   "hash-1",
			IsActive:    true,
			CreatedBy:   "operator@example.com",
		}

		tokenService.On("Fingerprint", "vt_plain").Return("fingerprint-1").Once()
		tokenRepo.On("GetByFingerprint", ctx, "fingerprint-1").Return(stored, nil).Once()
		tokenService.On("VerifyToken", "vt_plain", "hash-1").Return(true).Once()
		tokenRepo.On("UpdateLastUsed", mock.Anything, tokenID, "203.0.113.1", mock.Anything).Return(nil).Maybe()

		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())
		authCtx, err := uc.Authenticate(ctx, "vt_plain", "203.0.113.1")

		require.NoError(t, err)
		assert.Equal(t, workspaceID, authCtx.WorkspaceID)
		assert.Equal(t, tokenID, authCtx.TokenID)
		assert.ElementsMatch(t, authDomain.DefaultPermissions(authDomain.RoleAdmin), authCtx.Permissions)
	})

	t.Run("Error_MissingPrefix", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}
		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())

		_, err := uc.Authenticate(ctx, "not-a-token", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
		tokenRepo.AssertNotCalled(t, "GetByFingerprint")
	})

	t.Run("Error_UnknownFingerprint", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}

		tokenService.On("Fingerprint", "vt_unknown").Return("fp-unknown").Once()
		tokenRepo.On("GetByFingerprint", ctx, "fp-unknown").Return(nil, authDomain.ErrTokenNotFound).Once()

		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())
		_, err := uc.Authenticate(ctx, "vt_unknown", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_HashMismatch", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}

		stored := &authDomain.Token{ID: tokenID, TokenHash: "hash-1", IsActive: true}
		tokenService.On("Fingerprint", "vt_plain").Return("fp-1").Once()
		tokenRepo.On("GetByFingerprint", ctx, "fp-1").Return(stored, nil).Once()
		tokenService.On("VerifyToken", "vt_plain", "hash-1").Return(false).Once()

		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())
		_, err := uc.Authenticate(ctx, "vt_plain", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_Inactive", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}

		stored := &authDomain.Token{ID: tokenID, TokenHash: "hash-1", IsActive: false}
		tokenService.On("Fingerprint", "vt_plain").Return("fp-1").Once()
		tokenRepo.On("GetByFingerprint", ctx, "fp-1").Return(stored, nil).Once()
		tokenService.On("VerifyToken", "vt_plain", "hash-1").Return(true).Once()

		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())
		_, err := uc.Authenticate(ctx, "vt_plain", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		tokenRepo := &mockTokenRepository{}
		tokenService := &mockTokenService{}

		past := time.Now().UTC().Add(-time.Hour)
		stored := &authDomain.Token{ID: tokenID, TokenHash: "hash-1", IsActive: true, ExpiresAt: &past}
		tokenService.On("Fingerprint", "vt_plain").Return("fp-1").Once()
		tokenRepo.On("GetByFingerprint", ctx, "fp-1").Return(stored, nil).Once()
		tokenService.On("VerifyToken", "vt_plain", "hash-1").Return(true).Once()

		uc := NewTokenUseCase(tokenRepo, tokenService, discardLogger())
		_, err := uc.Authenticate(ctx, "vt_plain", "")
		assert.ErrorIs(t, err, authDomain.ErrInvalidToken)
	})
}

func TestTokenUseCase_Authorize(t *testing.T) {
	uc := NewTokenUseCase(&mockTokenRepository{}, &mockTokenService{}, discardLogger())

	authCtx := &authDomain.AuthContext{Permissions: []authDomain.Permission{authDomain.PermissionRead}}

	assert.NoError(t, uc.Authorize(authCtx, authDomain.PermissionRead))
	assert.Error(t, uc.Authorize(authCtx, authDomain.PermissionDelete))
}

func TestTokenUseCase_AuthorizeWorkspace(t *testing.T) {
	uc := NewTokenUseCase(&mockTokenRepository{}, &mockTokenService{}, discardLogger())

	workspaceID := uuid.Must(uuid.NewV7())
	authCtx := &authDomain.AuthContext{WorkspaceID: workspaceID}

	assert.NoError(t, uc.AuthorizeWorkspace(authCtx, workspaceID))
	assert.Error(t, uc.AuthorizeWorkspace(authCtx, uuid.Must(uuid.NewV7())))
}
