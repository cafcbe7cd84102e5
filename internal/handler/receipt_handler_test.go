package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/service"
	"github.com/oatside/gala/gala-backend/internal/testutil"
)

func multipartBody(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("Failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("Failed to write multipart data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadReceipt_Success(t *testing.T) {
	e := echo.New()
	store := testutil.NewMockReceiptStore()
	entryRepo := testutil.NewMockBudgetEntryRepository()
	handler := NewReceiptHandler(service.NewReceiptService(store, entryRepo, &testutil.RecordingPublisher{}))

	entry := &domain.BudgetEntry{
		ID: uuid.New(), EventID: uuid.New(),
		ItemName: "Catering", Amount: decimal.NewFromInt(300),
	}
	entryRepo.AddEntry(entry)

	body, contentType := multipartBody(t, "receipt.jpg", "image/jpeg", []byte("jpeg-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/"+entry.ID.String()+"/receipt", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(entry.ID.String())

	if err := handler.UploadReceipt(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var response EntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.ReceiptURL == nil {
		t.Error("Expected a receipt URL in the response")
	}
	if response.ReceiptFilename == nil || *response.ReceiptFilename != "receipt.jpg" {
		t.Errorf("Expected original filename, got %v", response.ReceiptFilename)
	}
}

func TestUploadReceipt_NotAnImage(t *testing.T) {
	e := echo.New()
	store := testutil.NewMockReceiptStore()
	entryRepo := testutil.NewMockBudgetEntryRepository()
	handler := NewReceiptHandler(service.NewReceiptService(store, entryRepo, &testutil.RecordingPublisher{}))

	entry := &domain.BudgetEntry{ID: uuid.New(), EventID: uuid.New(), ItemName: "Catering"}
	entryRepo.AddEntry(entry)

	body, contentType := multipartBody(t, "notes.pdf", "application/pdf", []byte("pdf-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/"+entry.ID.String()+"/receipt", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(entry.ID.String())

	if err := handler.UploadReceipt(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(store.Objects) != 0 {
		t.Error("Rejected file must not reach storage")
	}
}

func TestUploadReceipt_MissingFile(t *testing.T) {
	e := echo.New()
	handler := NewReceiptHandler(service.NewReceiptService(
		testutil.NewMockReceiptStore(),
		testutil.NewMockBudgetEntryRepository(),
		&testutil.RecordingPublisher{},
	))

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/"+id+"/receipt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := handler.UploadReceipt(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUploadReceipt_StorageDisabled(t *testing.T) {
	e := echo.New()
	handler := NewReceiptHandler(service.NewReceiptService(
		nil,
		testutil.NewMockBudgetEntryRepository(),
		&testutil.RecordingPublisher{},
	))

	id := uuid.NewString()
	body, contentType := multipartBody(t, "receipt.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/"+id+"/receipt", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := handler.UploadReceipt(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}

func TestUploadReceipt_EntryNotFound(t *testing.T) {
	e := echo.New()
	handler := NewReceiptHandler(service.NewReceiptService(
		testutil.NewMockReceiptStore(),
		testutil.NewMockBudgetEntryRepository(),
		&testutil.RecordingPublisher{},
	))

	id := uuid.NewString()
	body, contentType := multipartBody(t, "receipt.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries/"+id+"/receipt", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	if err := handler.UploadReceipt(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
