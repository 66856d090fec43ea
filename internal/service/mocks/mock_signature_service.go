package mocks

import (
	"context"

	"digisign/internal/model"
	"digisign/internal/repository"
	"digisign/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockSignatureService struct {
	mock.Mock
}

func (m *MockSignatureService) Create(ctx context.Context, documentID, name, cpf string) (*model.Signature, error) {
	args := m.Called(ctx, documentID, name, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signature), args.Error(1)
}

func (m *MockSignatureService) Sign(ctx context.Context, signatureID string) (*model.Signature, error) {
	args := m.Called(ctx, signatureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signature), args.Error(1)
}

func (m *MockSignatureService) SignPublic(ctx context.Context, documentID, cpf string) (string, error) {
	args := m.Called(ctx, documentID, cpf)
	return args.String(0), args.Error(1)
}

func (m *MockSignatureService) List(ctx context.Context, limit int, cursor *repository.SignatureCursor) (*service.SignatureListResult, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SignatureListResult), args.Error(1)
}

func (m *MockSignatureService) ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Signature), args.Error(1)
}
