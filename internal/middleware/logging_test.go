package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// mockHTTPMetrics はテスト用のHTTPMetrics実装。
type mockHTTPMetrics struct {
	recorded []int
}

func (m *mockHTTPMetrics) RecordHTTPStatus(statusCode int) {
	m.recorded = append(m.recorded, statusCode)
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("リクエストの構造化ログを出力する", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
		handler := NewLoggingMiddleware(logger, nil)(next)

		req := httptest.NewRequest(http.MethodPost, "/post?request_id=req-42", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse log entry: %v", err)
		}

		if entry["msg"] != "http_request" {
			t.Errorf("expected msg 'http_request', got %v", entry["msg"])
		}
		if entry["method"] != "POST" {
			t.Errorf("expected method POST, got %v", entry["method"])
		}
		if entry["path"] != "/post" {
			t.Errorf("expected path /post, got %v", entry["path"])
		}
		if entry["status"] != float64(201) {
			t.Errorf("expected status 201, got %v", entry["status"])
		}
		if entry["request_id"] != "req-42" {
			t.Errorf("expected request_id 'req-42', got %v", entry["request_id"])
		}
		if _, ok := entry["duration_ms"]; !ok {
			t.Error("expected duration_ms in log entry")
		}
	})

	t.Run("500系はエラーレベルで出力する", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		handler := NewLoggingMiddleware(logger, nil)(next)

		req := httptest.NewRequest(http.MethodGet, "/account/1", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse log entry: %v", err)
		}
		if entry["level"] != "ERROR" {
			t.Errorf("expected level ERROR, got %v", entry["level"])
		}
	})

	t.Run("ステータスコードをメトリクスに記録する", func(t *testing.T) {
		logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
		collector := &mockHTTPMetrics{}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		handler := NewLoggingMiddleware(logger, collector)(next)

		req := httptest.NewRequest(http.MethodGet, "/account/999", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if len(collector.recorded) != 1 || collector.recorded[0] != http.StatusNotFound {
			t.Errorf("expected recorded status [404], got %v", collector.recorded)
		}
	})

	t.Run("WriteHeader未呼び出しは200として記録する", func(t *testing.T) {
		logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
		collector := &mockHTTPMetrics{}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("{}"))
		})
		handler := NewLoggingMiddleware(logger, collector)(next)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if len(collector.recorded) != 1 || collector.recorded[0] != http.StatusOK {
			t.Errorf("expected recorded status [200], got %v", collector.recorded)
		}
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Run("panicを500に封じ込める", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
		handler := NewRecoveryMiddleware(discardLogger())(next)

		req := httptest.NewRequest(http.MethodGet, "/account/1", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}
	})

	t.Run("panicなしのリクエストには影響しない", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := NewRecoveryMiddleware(discardLogger())(next)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})
}
