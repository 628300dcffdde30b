package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResendMailerSend(t *testing.T) {
	var got sendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m, err := NewResendMailer("re_test_key", "orders@brushandbeyond.in")
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	m.baseURL = srv.URL

	if err := m.Send(context.Background(), "asha@example.com", "Order confirmed", "plain", "<p>html</p>"); err != nil {
		t.Fatalf("send: %v", err)
	}

	if auth != "Bearer re_test_key" {
		t.Fatalf("auth header = %q", auth)
	}
	if got.From != "orders@brushandbeyond.in" || len(got.To) != 1 || got.To[0] != "asha@example.com" {
		t.Fatalf("request = %+v", got)
	}
	if got.Subject != "Order confirmed" || got.Text != "plain" || got.HTML != "<p>html</p>" {
		t.Fatalf("request body = %+v", got)
	}
}

func TestResendMailerNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid recipient"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m, err := NewResendMailer("re_test_key", "orders@brushandbeyond.in")
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}
	m.baseURL = srv.URL

	if err := m.Send(context.Background(), "bad@example.com", "s", "t", ""); err == nil {
		t.Fatal("expected error for 422 response")
	}
}

func TestNewResendMailerRequiresKey(t *testing.T) {
	if _, err := NewResendMailer("", "orders@brushandbeyond.in"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
