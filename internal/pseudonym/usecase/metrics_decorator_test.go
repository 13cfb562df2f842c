package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/ecdc/internal/metrics"
	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
	"github.com/allisson/ecdc/internal/pseudonym/usecase/mocks"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
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

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

func expectRecord(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "pseudonym", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "pseudonym", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestNewIDBridgeWithMetrics(t *testing.T) {
	t.Parallel()

	decorator := NewIDBridgeWithMetrics(mocks.NewMockIDBridge(t), &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*IDBridge)(nil), decorator)
}

func TestMetricsDecorator_EncodeUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockBridge := mocks.NewMockIDBridge(t)
		mockMetrics := &mockBusinessMetrics{}

		mockBridge.On("EncodeUser", ctx, int64(42)).Return("3467-7244-0811", nil).Once()
		expectRecord(mockMetrics, ctx, "user_encode", "success")

		decorator := NewIDBridgeWithMetrics(mockBridge, mockMetrics)
		uid, err := decorator.EncodeUser(ctx, 42)

		assert.NoError(t, err)
		assert.Equal(t, "3467-7244-0811", uid)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockBridge := mocks.NewMockIDBridge(t)
		mockMetrics := &mockBusinessMetrics{}

		mockBridge.On("EncodeUser", ctx, int64(-1)).Return("", pseudonymDomain.ErrOutOfDomain).Once()
		expectRecord(mockMetrics, ctx, "user_encode", "error")

		decorator := NewIDBridgeWithMetrics(mockBridge, mockMetrics)
		_, err := decorator.EncodeUser(ctx, -1)

		assert.ErrorIs(t, err, pseudonymDomain.ErrOutOfDomain)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Operations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	reference := "-100"
	tgid := int64(-100)
	admins := pseudonymDomain.AdminSet{"3467-7244-0811"}

	tests := []struct {
		operation string
		setup     func(m *mocks.MockIDBridge)
		call      func(b IDBridge)
		status    string
	}{
		{
			operation: "user_decode",
			setup: func(m *mocks.MockIDBridge) {
				m.On("DecodeUser", ctx, "bad").Return(int64(0), pseudonymDomain.ErrInvalidFormat).Once()
			},
			call:   func(b IDBridge) { _, _ = b.DecodeUser(ctx, "bad") },
			status: "error",
		},
		{
			operation: "user_normalize",
			setup: func(m *mocks.MockIDBridge) {
				m.On("NormalizeUser", ctx, "346772440811").Return("3467-7244-0811", nil).Once()
			},
			call:   func(b IDBridge) { _, _ = b.NormalizeUser(ctx, "346772440811") },
			status: "success",
		},
		{
			operation: "user_identity",
			setup: func(m *mocks.MockIDBridge) {
				m.On("BuildIdentity", ctx, int64(42)).
					Return(pseudonymDomain.UserIdentity{TID: 42, UID: "3467-7244-0811"}, nil).
					Once()
			},
			call:   func(b IDBridge) { _, _ = b.BuildIdentity(ctx, 42) },
			status: "success",
		},
		{
			operation: "chat_encode",
			setup: func(m *mocks.MockIDBridge) {
				m.On("EncodeChat", ctx, int64(-100)).Return("-2347-5375-7972-4393", nil).Once()
			},
			call:   func(b IDBridge) { _, _ = b.EncodeChat(ctx, -100) },
			status: "success",
		},
		{
			operation: "chat_decode",
			setup: func(m *mocks.MockIDBridge) {
				m.On("DecodeChat", ctx, "-2347-5375-7972-4393").Return(int64(-100), nil).Once()
			},
			call:   func(b IDBridge) { _, _ = b.DecodeChat(ctx, "-2347-5375-7972-4393") },
			status: "success",
		},
		{
			operation: "admin_check",
			setup: func(m *mocks.MockIDBridge) {
				m.On("IsAdmin", ctx, int64(42), admins).Return(true).Once()
			},
			call:   func(b IDBridge) { _ = b.IsAdmin(ctx, 42, admins) },
			status: "success",
		},
		{
			operation: "chat_resolve",
			setup: func(m *mocks.MockIDBridge) {
				m.On("ResolveChatReference", ctx, &reference).Return(&tgid, nil).Once()
			},
			call:   func(b IDBridge) { _, _ = b.ResolveChatReference(ctx, &reference) },
			status: "success",
		},
		{
			operation: "admin_recipients",
			setup: func(m *mocks.MockIDBridge) {
				m.On("ResolveAdminRecipients", ctx, admins).Return([]int64{42}).Once()
			},
			call:   func(b IDBridge) { _ = b.ResolveAdminRecipients(ctx, admins) },
			status: "success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			t.Parallel()
			mockBridge := mocks.NewMockIDBridge(t)
			mockMetrics := &mockBusinessMetrics{}

			tt.setup(mockBridge)
			expectRecord(mockMetrics, ctx, tt.operation, tt.status)

			tt.call(NewIDBridgeWithMetrics(mockBridge, mockMetrics))
			mockMetrics.AssertExpectations(t)
		})
	}
}

func TestMetricsDecorator_EnabledNotRecorded(t *testing.T) {
	mockBridge := mocks.NewMockIDBridge(t)
	mockMetrics := &mockBusinessMetrics{}
	mockBridge.On("Enabled").Return(true).Once()

	assert.True(t, NewIDBridgeWithMetrics(mockBridge, mockMetrics).Enabled())
	mockMetrics.AssertNotCalled(t, "RecordOperation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
