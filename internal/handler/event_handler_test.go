package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/oatside/gala/gala-backend/internal/domain"
	"github.com/oatside/gala/gala-backend/internal/service"
	"github.com/oatside/gala/gala-backend/internal/testutil"
)

const testDeleteConfirmation = "oatside-pepero"

func newEventHandler(eventRepo *testutil.MockEventRepository) *EventHandler {
	eventService := service.NewEventService(eventRepo, &testutil.RecordingPublisher{}, testDeleteConfirmation)
	return NewEventHandler(eventService)
}

func TestCreateEvent_Success(t *testing.T) {
	e := echo.New()
	eventRepo := testutil.NewMockEventRepository()
	handler := newEventHandler(eventRepo)

	reqBody := `{"name": "Annual Gala", "allocatedBudget": "5000.00", "venue": "Riverside Hall", "startDate": "2025-06-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.CreateEvent(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Name != "Annual Gala" {
		t.Errorf("Expected name 'Annual Gala', got %s", response.Name)
	}
	if response.AllocatedBudget != "5000.00" {
		t.Errorf("Expected budget '5000.00', got %s", response.AllocatedBudget)
	}
	if response.Status != "Active" {
		t.Errorf("Expected status 'Active', got %s", response.Status)
	}
	if response.StartDate == nil || *response.StartDate != "2025-06-01" {
		t.Errorf("Expected start date '2025-06-01', got %v", response.StartDate)
	}
}

func TestCreateEvent_MissingName(t *testing.T) {
	e := echo.New()
	handler := newEventHandler(testutil.NewMockEventRepository())

	reqBody := `{"name": "  "}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestCreateEvent_BadBudget(t *testing.T) {
	e := echo.New()
	handler := newEventHandler(testutil.NewMockEventRepository())

	reqBody := `{"name": "Gala", "allocatedBudget": "lots"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateEvent(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	e := echo.New()
	handler := newEventHandler(testutil.NewMockEventRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := handler.GetEvent(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetEvent_InvalidID(t *testing.T) {
	e := echo.New()
	handler := newEventHandler(testutil.NewMockEventRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := handler.GetEvent(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetEvents_ReturnsAll(t *testing.T) {
	e := echo.New()
	eventRepo := testutil.NewMockEventRepository()
	gala := &domain.Event{ID: uuid.New(), Name: "Gala", Status: domain.EventStatusActive}
	eventRepo.AddEvent(gala)
	eventRepo.AddEvent(&domain.Event{ID: uuid.New(), Name: "Fun Run", Status: domain.EventStatusCompleted})
	eventRepo.Totals[gala.ID] = domain.EventWithTotals{
		TotalIncome:   decimal.NewFromInt(2000),
		TotalExpenses: decimal.NewFromInt(750),
	}
	handler := newEventHandler(eventRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetEvents(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []EventListItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("Expected 2 events, got %d", len(response))
	}
	if response[0].TotalIncome != "2000.00" || response[0].TotalExpenses != "750.00" {
		t.Errorf("Expected rollups 2000.00/750.00, got %s/%s", response[0].TotalIncome, response[0].TotalExpenses)
	}
	if response[1].TotalIncome != "0.00" {
		t.Errorf("Expected zero rollup for event without entries, got %s", response[1].TotalIncome)
	}
}

func TestUpdateEvent_Status(t *testing.T) {
	e := echo.New()
	eventRepo := testutil.NewMockEventRepository()
	event := &domain.Event{ID: uuid.New(), Name: "Gala", Status: domain.EventStatusActive}
	eventRepo.AddEvent(event)
	handler := newEventHandler(eventRepo)

	reqBody := `{"status": "Completed"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/events/"+event.ID.String(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(event.ID.String())

	if err := handler.UpdateEvent(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Status != "Completed" {
		t.Errorf("Expected status 'Completed', got %s", response.Status)
	}
}

func TestUpdateEvent_InvalidStatus(t *testing.T) {
	e := echo.New()
	eventRepo := testutil.NewMockEventRepository()
	event := &domain.Event{ID: uuid.New(), Name: "Gala", Status: domain.EventStatusActive}
	eventRepo.AddEvent(event)
	handler := newEventHandler(eventRepo)

	reqBody := `{"status": "Paused"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/events/"+event.ID.String(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(event.ID.String())

	if err := handler.UpdateEvent(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteEvent_WrongConfirmation(t *testing.T) {
	e := echo.New()
	eventRepo := testutil.NewMockEventRepository()
	event := &domain.Event{ID: uuid.New(), Name: "Gala", Status: domain.EventStatusActive}
	eventRepo.AddEvent(event)
	handler := newEventHandler(eventRepo)

	reqBody := `{"confirmation": "please"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/"+event.ID.String(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(event.ID.String())

	if err := handler.DeleteEvent(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}

	// Event survives
	if _, err := eventRepo.GetByID(event.ID); err != nil {
		t.Error("Event should still exist")
	}
}

func TestDeleteEvent_Success(t *testing.T) {
	e := echo.New()
	eventRepo := testutil.NewMockEventRepository()
	event := &domain.Event{ID: uuid.New(), Name: "Gala", Status: domain.EventStatusActive}
	eventRepo.AddEvent(event)
	handler := newEventHandler(eventRepo)

	reqBody := `{"confirmation": "oatside-pepero"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/events/"+event.ID.String(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(event.ID.String())

	if err := handler.DeleteEvent(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
}
