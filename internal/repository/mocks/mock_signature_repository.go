package mocks

import (
	"context"
	"time"

	"digisign/internal/model"
	"digisign/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockSignatureRepository struct {
	mock.Mock
}

func (m *MockSignatureRepository) Create(ctx context.Context, sig *model.Signature) (*model.Signature, error) {
	args := m.Called(ctx, sig)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signature), args.Error(1)
}

func (m *MockSignatureRepository) FindByDocumentAndCPF(ctx context.Context, documentID, cpf string) (*model.Signature, error) {
	args := m.Called(ctx, documentID, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signature), args.Error(1)
}

func (m *MockSignatureRepository) MarkSigned(ctx context.Context, id string, signedAt time.Time) (*model.Signature, error) {
	args := m.Called(ctx, id, signedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signature), args.Error(1)
}

func (m *MockSignatureRepository) UpsertSigned(ctx context.Context, documentID, name, cpf, hash string, signedAt time.Time) (*model.Signature, error) {
	args := m.Called(ctx, documentID, name, cpf, hash, signedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Signature), args.Error(1)
}

func (m *MockSignatureRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Signature, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Signature), args.Error(1)
}

func (m *MockSignatureRepository) ListPage(ctx context.Context, limit int, cursor *repository.SignatureCursor) ([]repository.SignatureListItem, error) {
	args := m.Called(ctx, limit, cursor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.SignatureListItem), args.Error(1)
}
