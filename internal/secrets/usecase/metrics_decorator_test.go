package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	secretsDomain "github.com/allisson/vaultkeep/internal/secrets/domain"
	"github.com/allisson/vaultkeep/internal/secrets/usecase"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

type mockSecretUseCase struct {
	mock.Mock
}

func (m *mockSecretUseCase) Put(ctx context.Context, input *secretsDomain.PutInput) (*secretsDomain.PutOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.PutOutput), args.Error(1)
}

func (m *mockSecretUseCase) Get(
	ctx context.Context, workspaceID uuid.UUID, key string, version uint,
) (*secretsDomain.DecryptedSecret, error) {
	args := m.Called(ctx, workspaceID, key, version)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*secretsDomain.DecryptedSecret), args.Error(1)
}

func (m *mockSecretUseCase) List(
	ctx context.Context, workspaceID uuid.UUID, prefix string, limit, offset int,
) ([]*secretsDomain.ListItem, int, error) {
	args := m.Called(ctx, workspaceID, prefix, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*secretsDomain.ListItem), args.Int(1), args.Error(2)
}

func (m *mockSecretUseCase) Versions(
	ctx context.Context, workspaceID uuid.UUID, key string, limit, offset int,
) ([]*secretsDomain.VersionSummary, error) {
	args := m.Called(ctx, workspaceID, key, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*secretsDomain.VersionSummary), args.Error(1)
}

func (m *mockSecretUseCase) Delete(ctx context.Context, workspaceID uuid.UUID, key string) error {
	args := m.Called(ctx, workspaceID, key)
	return args.Error(0)
}

func TestSecretUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.Must(uuid.NewV7())

	t.Run("Put success", func(t *testing.T) {
		mockNext := &mockSecretUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSecretUseCaseWithMetrics(mockNext, mockMetrics)

		input := &secretsDomain.PutInput{WorkspaceID: workspaceID, Key: "app/key"}
		output := &secretsDomain.PutOutput{NewVersion: 1}

		mockNext.On("Put", ctx, input).Return(output, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "secrets", "secret_put", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "secrets", "secret_put", mock.AnythingOfType("time.Duration"), "success").
			Return().Once()

		res, err := uc.Put(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, output, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Get error", func(t *testing.T) {
		mockNext := &mockSecretUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSecretUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Get", ctx, workspaceID, "app/missing", uint(0)).
			Return(nil, secretsDomain.ErrSecretNotFound).Once()
		mockMetrics.On("RecordOperation", ctx, "secrets", "secret_get", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "secrets", "secret_get", mock.AnythingOfType("time.Duration"), "error").
			Return().Once()

		_, err := uc.Get(ctx, workspaceID, "app/missing", 0)
		assert.ErrorIs(t, err, secretsDomain.ErrSecretNotFound)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List success", func(t *testing.T) {
		mockNext := &mockSecretUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSecretUseCaseWithMetrics(mockNext, mockMetrics)

		items := []*secretsDomain.ListItem{{Key: "app/a"}}
		mockNext.On("List", ctx, workspaceID, "app/", 10, 0).Return(items, 1, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "secrets", "secret_list", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "secrets", "secret_list", mock.AnythingOfType("time.Duration"), "success").
			Return().Once()

		res, total, err := uc.List(ctx, workspaceID, "app/", 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, items, res)
		assert.Equal(t, 1, total)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Versions success", func(t *testing.T) {
		mockNext := &mockSecretUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSecretUseCaseWithMetrics(mockNext, mockMetrics)

		versions := []*secretsDomain.VersionSummary{{Version: 1}}
		mockNext.On("Versions", ctx, workspaceID, "app/key", 10, 0).Return(versions, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "secrets", "secret_versions", "success").Return().Once()
		mockMetrics.On(
			"RecordDuration", ctx, "secrets", "secret_versions", mock.AnythingOfType("time.Duration"), "success",
		).Return().Once()

		res, err := uc.Versions(ctx, workspaceID, "app/key", 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, versions, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete success", func(t *testing.T) {
		mockNext := &mockSecretUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewSecretUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("Delete", ctx, workspaceID, "app/key").Return(nil).Once()
		mockMetrics.On("RecordOperation", ctx, "secrets", "secret_delete", "success").Return().Once()
		mockMetrics.On(
			"RecordDuration", ctx, "secrets", "secret_delete", mock.AnythingOfType("time.Duration"), "success",
		).Return().Once()

		err := uc.Delete(ctx, workspaceID, "app/key")
		assert.NoError(t, err)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
