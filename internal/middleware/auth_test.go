package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/buzzgate/internal/model"
)

// discardLogger はテスト出力を汚さない破棄ロガーを返す。
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockAuthenticator はテスト用のAuthenticator実装。
type mockAuthenticator struct {
	authenticateFn func(requestID, username, password string) (*model.Account, error)
}

func (m *mockAuthenticator) Authenticate(requestID, username, password string) (*model.Account, error) {
	return m.authenticateFn(requestID, username, password)
}

func newAuthTestRequest() *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/account/1?request_id=req-1", nil)
	return req.WithContext(ContextWithRequestID(req.Context(), "req-1"))
}

func TestBasicAuthMiddleware(t *testing.T) {
	t.Run("資格情報欠落時は401とWWW-Authenticateを返す", func(t *testing.T) {
		auth := &mockAuthenticator{
			authenticateFn: func(requestID, username, password string) (*model.Account, error) {
				t.Fatal("authenticator should not be called")
				return nil, nil
			},
		}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called")
		})
		handler := NewBasicAuthMiddleware(auth, discardLogger())(next)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, newAuthTestRequest())

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
		if w.Header().Get("WWW-Authenticate") == "" {
			t.Error("expected WWW-Authenticate header")
		}
	})

	t.Run("資格情報不正は401を返す", func(t *testing.T) {
		auth := &mockAuthenticator{
			authenticateFn: func(requestID, username, password string) (*model.Account, error) {
				return nil, nil
			},
		}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called")
		})
		handler := NewBasicAuthMiddleware(auth, discardLogger())(next)

		req := newAuthTestRequest()
		req.SetBasicAuth("alice", "wrong-password")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", w.Code)
		}
	})

	t.Run("委譲中のインフラ障害は500を返し注入されたロガーに記録する", func(t *testing.T) {
		auth := &mockAuthenticator{
			authenticateFn: func(requestID, username, password string) (*model.Account, error) {
				return nil, errors.New("connection refused")
			},
		}

		var logBuf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&logBuf, nil))

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called")
		})
		handler := NewBasicAuthMiddleware(auth, logger)(next)

		req := newAuthTestRequest()
		req.SetBasicAuth("alice", "password")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", w.Code)
		}

		var entry map[string]any
		if err := json.Unmarshal(logBuf.Bytes(), &entry); err != nil {
			t.Fatalf("failed to parse log entry: %v", err)
		}
		if entry["msg"] != "authentication delegate failed" {
			t.Errorf("expected delegate failure log, got %v", entry["msg"])
		}
		if entry["request_id"] != "req-1" {
			t.Errorf("expected request_id 'req-1' in log, got %v", entry["request_id"])
		}
	})

	t.Run("認証成功時はアカウントをコンテキストに注入する", func(t *testing.T) {
		account := &model.Account{ID: 7, Username: "alice"}
		var gotRequestID, gotUsername, gotPassword string
		auth := &mockAuthenticator{
			authenticateFn: func(requestID, username, password string) (*model.Account, error) {
				gotRequestID = requestID
				gotUsername = username
				gotPassword = password
				return account, nil
			},
		}

		var gotRequester *model.Account
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester, err := RequesterFromContext(r.Context())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			gotRequester = requester
			w.WriteHeader(http.StatusOK)
		})
		handler := NewBasicAuthMiddleware(auth, discardLogger())(next)

		req := newAuthTestRequest()
		req.SetBasicAuth("alice", "secret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
		if gotRequestID != "req-1" {
			t.Errorf("expected request ID 'req-1', got %q", gotRequestID)
		}
		if gotUsername != "alice" || gotPassword != "secret" {
			t.Errorf("unexpected credentials: %q / %q", gotUsername, gotPassword)
		}
		if gotRequester == nil || gotRequester.ID != 7 {
			t.Errorf("expected requester account ID 7, got %+v", gotRequester)
		}
	})

	t.Run("リクエストIDがないコンテキストは400を返す", func(t *testing.T) {
		auth := &mockAuthenticator{
			authenticateFn: func(requestID, username, password string) (*model.Account, error) {
				return nil, nil
			},
		}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next handler should not be called")
		})
		handler := NewBasicAuthMiddleware(auth, discardLogger())(next)

		req := httptest.NewRequest(http.MethodGet, "/account/1", nil)
		req.SetBasicAuth("alice", "secret")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}
