package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateIntent(t *testing.T) {
	var gotAmount, gotCurrency string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if user, _, ok := r.BasicAuth(); !ok || user != "sk_test_123" {
			t.Error("expected secret key as basic auth user")
		}
		r.ParseForm()
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret_abc"}`))
	}))
	defer srv.Close()

	c := NewStripeClient("sk_test_123", srv.URL)
	secret, err := c.CreateIntent(context.Background(), 4500, "usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_1_secret_abc" {
		t.Errorf("expected client secret, got %q", secret)
	}
	if gotAmount != "4500" || gotCurrency != "usd" {
		t.Errorf("expected amount=4500 currency=usd, got %s %s", gotAmount, gotCurrency)
	}
}

func TestCreateIntent_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := NewStripeClient("sk_test_123", srv.URL)
	if _, err := c.CreateIntent(context.Background(), 4500, "usd"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestCreateIntent_MissingSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"pi_1"}`))
	}))
	defer srv.Close()

	c := NewStripeClient("sk_test_123", srv.URL)
	if _, err := c.CreateIntent(context.Background(), 4500, "usd"); err == nil {
		t.Error("expected error for response without client secret")
	}
}
