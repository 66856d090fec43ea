package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"digisign/internal/model"
	"digisign/internal/repository"
	"digisign/internal/service"
	serviceMocks "digisign/internal/service/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartPDF(t *testing.T, title string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", title))
	part, err := writer.CreateFormFile("file", "contract.pdf")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/admin/documents", UploadDocument(mockSvc))

	pdf := []byte("%PDF-1.7 content")

	t.Run("created with etag and location", func(t *testing.T) {
		body, ct := multipartPDF(t, "contract", pdf)

		expectedDoc := &model.Document{ID: uuid.NewString(), Title: "contract", ContentSHA256: "abc123"}
		mockSvc.On("Upload", mock.Anything, "contract", pdf, mock.Anything, int64(len(pdf)), "admin-1").
			Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/admin/documents", body)
		req.Header.Set("Content-Type", ct)
		req.Header.Set("X-User-ID", "admin-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, `W/"abc123"`, resp.Header.Get("ETag"))
		assert.Equal(t, "/documents/"+expectedDoc.ID, resp.Header.Get("Location"))

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("invalid pdf maps to conflict", func(t *testing.T) {
		body, ct := multipartPDF(t, "contract", pdf)
		mockSvc.On("Upload", mock.Anything, "contract", pdf, mock.Anything, int64(len(pdf)), "").
			Return(nil, service.ErrInvalidPDF).Once()

		req := httptest.NewRequest(http.MethodPost, "/admin/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_PDF_SIGNATURE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("duplicate content maps to conflict", func(t *testing.T) {
		body, ct := multipartPDF(t, "contract", pdf)
		mockSvc.On("Upload", mock.Anything, "contract", pdf, mock.Anything, int64(len(pdf)), "").
			Return(nil, service.ErrDuplicateContent).Once()

		req := httptest.NewRequest(http.MethodPost, "/admin/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DUPLICATE_CONTENT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("storage unavailable maps to 503", func(t *testing.T) {
		body, ct := multipartPDF(t, "contract", pdf)
		mockSvc.On("Upload", mock.Anything, "contract", pdf, mock.Anything, int64(len(pdf)), "").
			Return(nil, service.ErrStorageUnavailable).Once()

		req := httptest.NewRequest(http.MethodPost, "/admin/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "STORAGE_UNAVAILABLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id", GetDocument(mockSvc))

	id := uuid.NewString()

	t.Run("found with etag", func(t *testing.T) {
		mockSvc.On("GetMetadata", mock.Anything, id).
			Return(&model.Document{ID: id, ContentSHA256: "abc123"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, `W/"abc123"`, resp.Header.Get("ETag"))
		mockSvc.AssertExpectations(t)
	})

	t.Run("not modified on matching etag", func(t *testing.T) {
		mockSvc.On("GetMetadata", mock.Anything, id).
			Return(&model.Document{ID: id, ContentSHA256: "abc123"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		req.Header.Set("If-None-Match", `W/"abc123"`)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("GetMetadata", mock.Anything, id).
			Return(nil, service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DOCUMENT_NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSignPublic(t *testing.T) {
	docID := uuid.NewString()

	t.Run("returns hash and echoes idempotency key", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Post("/user/sign", SignPublic(mockSvc))

		mockSvc.On("SignPublic", mock.Anything, docID, "123.456.789-09").
			Return("deadbeef", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/user/sign",
			strings.NewReader(`{"documentId":"`+docID+`","cpf":"123.456.789-09"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "key-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "key-1", resp.Header.Get("Idempotency-Key"))

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "deadbeef", body["hash"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("signer already added retries idempotently", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Post("/user/sign", SignPublic(mockSvc))

		mockSvc.On("SignPublic", mock.Anything, docID, "12345678909").
			Return("", service.ErrSignerAlreadyAdded).Once()
		mockSvc.On("SignPublic", mock.Anything, docID, "12345678909").
			Return("deadbeef", nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/user/sign",
			strings.NewReader(`{"documentId":"`+docID+`","cpf":"12345678909"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "deadbeef", body["hash"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("document not found maps to conflict", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Post("/user/sign", SignPublic(mockSvc))

		mockSvc.On("SignPublic", mock.Anything, docID, "12345678909").
			Return("", service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/user/sign",
			strings.NewReader(`{"documentId":"`+docID+`","cpf":"12345678909"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DOCUMENT_NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing body fields", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Post("/user/sign", SignPublic(mockSvc))

		req := httptest.NewRequest(http.MethodPost, "/user/sign", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateSignature(t *testing.T) {
	mockSvc := new(serviceMocks.MockSignatureService)
	app := fiber.New()
	app.Post("/admin/documents/:id/signatures", CreateSignature(mockSvc))

	docID := uuid.NewString()

	t.Run("created", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, docID, "Alice", "12345678909").
			Return(&model.Signature{ID: "sig-1", Status: model.SignatureStatusPending}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/admin/documents/"+docID+"/signatures",
			strings.NewReader(`{"name":"Alice","cpf":"12345678909"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("signer already added", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, docID, "Alice2", "12345678909").
			Return(nil, service.ErrSignerAlreadyAdded).Once()

		req := httptest.NewRequest(http.MethodPost, "/admin/documents/"+docID+"/signatures",
			strings.NewReader(`{"name":"Alice2","cpf":"12345678909"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "SIGNER_ALREADY_ADDED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListSignatures(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("plain array by default", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Get("/admin/signatures", ListSignatures(mockSvc))

		mockSvc.On("List", mock.Anything, 10, (*repository.SignatureCursor)(nil)).
			Return(&service.SignatureListResult{
				Items: []repository.SignatureListItem{{ID: "sig-1", CreatedAt: now}},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/admin/signatures?limit=10", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var items []repository.SignatureListItem
		json.NewDecoder(resp.Body).Decode(&items)
		assert.Len(t, items, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("envelope format carries next cursor", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Get("/admin/signatures", ListSignatures(mockSvc))

		mockSvc.On("List", mock.Anything, 0, (*repository.SignatureCursor)(nil)).
			Return(&service.SignatureListResult{
				Items:      []repository.SignatureListItem{{ID: "sig-1", CreatedAt: now}},
				NextCursor: &repository.SignatureCursor{ID: "sig-1", CreatedAt: now},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/admin/signatures?format=envelope", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body service.SignatureListResult
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Len(t, body.Items, 1)
		require.NotNil(t, body.NextCursor)
		assert.Equal(t, "sig-1", body.NextCursor.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("cursor parsed from query", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Get("/admin/signatures", ListSignatures(mockSvc))

		cursor := &repository.SignatureCursor{ID: "sig-9", CreatedAt: now}
		mockSvc.On("List", mock.Anything, 0, cursor).
			Return(&service.SignatureListResult{Items: []repository.SignatureListItem{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet,
			"/admin/signatures?cursorId=sig-9&cursorCreatedAt="+now.Format(time.RFC3339), nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("non-numeric limit falls back to default", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockSignatureService)
		app := fiber.New()
		app.Get("/admin/signatures", ListSignatures(mockSvc))

		mockSvc.On("List", mock.Anything, 0, (*repository.SignatureCursor)(nil)).
			Return(&service.SignatureListResult{Items: []repository.SignatureListItem{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/admin/signatures?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestSignSignature(t *testing.T) {
	mockSvc := new(serviceMocks.MockSignatureService)
	app := fiber.New()
	app.Post("/signatures/:id/sign", SignSignature(mockSvc))

	id := uuid.NewString()

	t.Run("signed", func(t *testing.T) {
		now := time.Now().UTC()
		mockSvc.On("Sign", mock.Anything, id).
			Return(&model.Signature{ID: id, Status: model.SignatureStatusSigned, SignedAt: &now}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/signatures/"+id+"/sign", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var sig model.Signature
		json.NewDecoder(resp.Body).Decode(&sig)
		assert.Equal(t, model.SignatureStatusSigned, sig.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing signature", func(t *testing.T) {
		mockSvc.On("Sign", mock.Anything, id).
			Return(nil, service.ErrSignatureNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/signatures/"+id+"/sign", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCertificateURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id/certificate-url", CertificateURL(mockSvc))

	id := uuid.NewString()

	t.Run("url returned", func(t *testing.T) {
		mockSvc.On("CertificateURL", mock.Anything, id).
			Return("https://blob.example/key.pdf?sig=abc", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/certificate-url", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://blob.example/key.pdf?sig=abc", body["url"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("degraded document", func(t *testing.T) {
		mockSvc.On("CertificateURL", mock.Anything, id).
			Return("", service.ErrCertificateUnavailable).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/certificate-url", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CERTIFICATE_UNAVAILABLE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("strict mode outage", func(t *testing.T) {
		mockSvc.On("CertificateURL", mock.Anything, id).
			Return("", service.ErrStorageUnavailable).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id+"/certificate-url", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestNextDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/user/documents/next", NextDocument(mockSvc))

	t.Run("latest document", func(t *testing.T) {
		mockSvc.On("NextForUser", mock.Anything).
			Return(&service.NextDocument{ID: "doc-1", Title: "contract"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user/documents/next", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body service.NextDocument
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "doc-1", body.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("empty store", func(t *testing.T) {
		mockSvc.On("NextForUser", mock.Anything).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/user/documents/next", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
