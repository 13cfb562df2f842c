// Package mocks provides mock implementations of pseudonym use cases for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	pseudonymDomain "github.com/allisson/ecdc/internal/pseudonym/domain"
)

// MockIDBridge is a mock implementation of usecase.IDBridge.
type MockIDBridge struct {
	mock.Mock
}

// NewMockIDBridge creates a MockIDBridge whose expectations are asserted on cleanup.
func NewMockIDBridge(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIDBridge {
	m := &MockIDBridge{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockIDBridge) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockIDBridge) EncodeUser(ctx context.Context, tid int64) (string, error) {
	args := m.Called(ctx, tid)
	return args.String(0), args.Error(1)
}

func (m *MockIDBridge) DecodeUser(ctx context.Context, uid string) (int64, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIDBridge) NormalizeUser(ctx context.Context, uid string) (string, error) {
	args := m.Called(ctx, uid)
	return args.String(0), args.Error(1)
}

func (m *MockIDBridge) BuildIdentity(ctx context.Context, tid int64) (pseudonymDomain.UserIdentity, error) {
	args := m.Called(ctx, tid)
	return args.Get(0).(pseudonymDomain.UserIdentity), args.Error(1)
}

func (m *MockIDBridge) EncodeChat(ctx context.Context, tgid int64) (string, error) {
	args := m.Called(ctx, tgid)
	return args.String(0), args.Error(1)
}

func (m *MockIDBridge) DecodeChat(ctx context.Context, ugid string) (int64, error) {
	args := m.Called(ctx, ugid)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockIDBridge) IsAdmin(ctx context.Context, tid int64, admins pseudonymDomain.AdminSet) bool {
	args := m.Called(ctx, tid, admins)
	return args.Bool(0)
}

func (m *MockIDBridge) ResolveChatReference(ctx context.Context, reference *string) (*int64, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockIDBridge) ResolveAdminRecipients(ctx context.Context, admins pseudonymDomain.AdminSet) []int64 {
	args := m.Called(ctx, admins)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]int64)
}
