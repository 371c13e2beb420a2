package api

import (
	"context"

	"sweetshop-web/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClient is a testify mock of Client, shared by the package tests of
// every consumer of the sweets API
type MockClient struct {
	mock.Mock
}

func (m *MockClient) ListSweets(ctx context.Context, token string) ([]models.Sweet, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Sweet), args.Error(1)
}

func (m *MockClient) CreateSweet(ctx context.Context, token string, fields models.SweetFields) (*models.Sweet, error) {
	args := m.Called(ctx, token, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

func (m *MockClient) UpdateSweet(ctx context.Context, token, id string, fields models.SweetFields) (*models.Sweet, error) {
	args := m.Called(ctx, token, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sweet), args.Error(1)
}

func (m *MockClient) DeleteSweet(ctx context.Context, token, id string) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func (m *MockClient) PurchaseSweet(ctx context.Context, token, id string, quantity int) error {
	args := m.Called(ctx, token, id, quantity)
	return args.Error(0)
}

func (m *MockClient) RestockSweet(ctx context.Context, token, id string, quantity int) error {
	args := m.Called(ctx, token, id, quantity)
	return args.Error(0)
}

func (m *MockClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}

func (m *MockClient) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AuthResult), args.Error(1)
}
