package payment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func setupHandler(proc *mockProcessor, marker *mockMarker) (*echo.Echo, *mockRepo) {
	e := echo.New()
	repo := newMockRepo()
	NewHandler(NewService(repo, marker, proc, zerolog.Nop())).RegisterRoutes(e.Group("/api/v1"))
	return e, repo
}

func TestRecordPayment_Created(t *testing.T) {
	bookingID := uuid.New()
	marker := newMockMarker(bookingID)
	e, repo := setupHandler(&mockProcessor{}, marker)

	body := fmt.Sprintf(`{"bookingId":%q,"transactionId":"tx_1","amount":30,"email":"pat@example.com"}`, bookingID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.payments) != 1 {
		t.Error("payment not persisted")
	}
	if marker.paid[bookingID] != "tx_1" {
		t.Errorf("booking not marked paid, got %q", marker.paid[bookingID])
	}
}

func TestRecordPayment_MissingTransactionID(t *testing.T) {
	e, _ := setupHandler(&mockProcessor{}, newMockMarker())

	body := fmt.Sprintf(`{"bookingId":%q,"amount":30}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateIntent_OK(t *testing.T) {
	e, _ := setupHandler(&mockProcessor{secret: "pi_abc_secret"}, newMockMarker())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent",
		strings.NewReader(`{"amount":4500,"currency":"usd"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["clientSecret"] != "pi_abc_secret" {
		t.Errorf("unexpected client secret: %q", resp["clientSecret"])
	}
}

func TestCreateIntent_ZeroAmount(t *testing.T) {
	e, _ := setupHandler(&mockProcessor{}, newMockMarker())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent",
		strings.NewReader(`{"amount":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateIntent_ProcessorFailure(t *testing.T) {
	e, _ := setupHandler(&mockProcessor{err: fmt.Errorf("stripe unreachable")}, newMockMarker())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/intent",
		strings.NewReader(`{"amount":4500,"currency":"usd"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}
