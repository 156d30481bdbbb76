package session_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/sessionstore/core/session"
)

// mockGateway implements session.Gateway for testing
type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Bootstrap(ctx context.Context, schema session.Schema) error {
	args := m.Called(ctx, schema)
	return args.Error(0)
}

func (m *mockGateway) Select(ctx context.Context, t session.Table, id string) (string, error) {
	args := m.Called(ctx, t, id)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) Insert(ctx context.Context, t session.Table, id, payload string) error {
	args := m.Called(ctx, t, id, payload)
	return args.Error(0)
}

func (m *mockGateway) Delete(ctx context.Context, t session.Table, id string) error {
	args := m.Called(ctx, t, id)
	return args.Error(0)
}

func (m *mockGateway) Count(ctx context.Context, t session.Table) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGateway) Truncate(ctx context.Context, t session.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
