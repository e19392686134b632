package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDMiddleware(t *testing.T) {
	t.Run("request_id欠落時は400を返し後続を呼ばない", func(t *testing.T) {
		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		handler := NewRequestIDMiddleware()(next)

		req := httptest.NewRequest(http.MethodGet, "/account/1", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
		if nextCalled {
			t.Error("next handler should not be called")
		}
		if body := strings.TrimSpace(w.Body.String()); body != "{}" {
			t.Errorf("expected empty JSON body, got %q", body)
		}
	})

	t.Run("request_idをコンテキストに注入する", func(t *testing.T) {
		var gotRequestID string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := RequestIDFromContext(r.Context())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotRequestID = id
			w.WriteHeader(http.StatusOK)
		})

		handler := NewRequestIDMiddleware()(next)

		req := httptest.NewRequest(http.MethodGet, "/account/1?request_id=req-123", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		if gotRequestID != "req-123" {
			t.Errorf("expected request ID 'req-123', got %q", gotRequestID)
		}
	})
}

func TestRequestIDFromContext(t *testing.T) {
	t.Run("未設定のコンテキストはエラー", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, err := RequestIDFromContext(req.Context()); err == nil {
			t.Error("expected error for context without request ID")
		}
	})
}
