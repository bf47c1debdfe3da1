package treatment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func setupHandler() (*echo.Echo, *Handler, *mockBookingLookup) {
	e := echo.New()
	svc, bookings := newTestService()
	h := NewHandler(svc)
	h.RegisterRoutes(e.Group("/api/v1"), e.Group("/api/v1"))
	return e, h, bookings
}

func seedTreatment(t *testing.T, h *Handler, name string, price float64, slots []string) {
	t.Helper()
	if err := h.svc.Create(context.Background(), &Treatment{Name: name, Price: price, Slots: slots}); err != nil {
		t.Fatalf("seed treatment: %v", err)
	}
}

func TestListAvailability_OK(t *testing.T) {
	e, h, bookings := setupHandler()
	seedTreatment(t, h, "Cleaning", 30, []string{"9-10", "10-11"})
	bookings.book("2023-01-01", "Cleaning", "9-10")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments?date=2023-01-01", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var items []Availability
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].TreatmentName != "Cleaning" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(items[0].RemainingSlots) != 1 || items[0].RemainingSlots[0] != "10-11" {
		t.Errorf("expected [10-11], got %v", items[0].RemainingSlots)
	}
}

func TestListAvailability_MemoryStrategy(t *testing.T) {
	e, h, bookings := setupHandler()
	seedTreatment(t, h, "Cleaning", 30, []string{"9-10", "10-11"})
	bookings.book("2023-01-01", "Cleaning", "10-11")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments?date=2023-01-01&strategy=memory", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []Availability
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items[0].RemainingSlots) != 1 || items[0].RemainingSlots[0] != "9-10" {
		t.Errorf("expected [9-10], got %v", items[0].RemainingSlots)
	}
}

func TestListAvailability_BadStrategy(t *testing.T) {
	e, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments?strategy=psychic", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestListAvailability_EmptyCatalog(t *testing.T) {
	e, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty array, got %s", body)
	}
}

func TestGetTreatment_NotFound(t *testing.T) {
	e, _, _ := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments/Nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCreateTreatment(t *testing.T) {
	e, _, _ := setupHandler()

	body := `{"name":"Root Canal","price":250,"slots":["13:00 - 14:00"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/treatments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created Treatment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Name != "Root Canal" || len(created.Slots) != 1 {
		t.Errorf("unexpected treatment: %+v", created)
	}
}

func TestCreateTreatment_MissingSlots(t *testing.T) {
	e, _, _ := setupHandler()

	body := `{"name":"Root Canal","price":250}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/treatments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
