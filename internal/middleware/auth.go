package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/buzzgate/internal/model"
)

// Authenticator は資格情報検証のインターフェース。auth.Delegateが実装する。
type Authenticator interface {
	// Authenticate は資格情報を検証する。資格情報不正は(nil, nil)、
	// インフラ障害はエラーを返す。
	Authenticate(requestID, username, password string) (*model.Account, error)
}

// NewBasicAuthMiddleware はHTTP Basic資格情報をAuthenticatorで検証するミドルウェアを返す。
// 認証済みアカウントをリクエストコンテキストに注入する。loggerがnilの場合はslog.Default()を使う。
// 資格情報の欠落・不正は401、検証中のインフラ障害は500を返す。
// この区別は正しさに関わる。接続障害を「パスワード誤り」として返してはならない。
func NewBasicAuthMiddleware(authenticator Authenticator, logger *slog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID, err := RequestIDFromContext(r.Context())
			if err != nil {
				// リクエストIDミドルウェアが前段にない構成ミス
				writeEmptyJSON(w, http.StatusBadRequest)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="buzzgate"`)
				writeEmptyJSON(w, http.StatusUnauthorized)
				return
			}

			account, err := authenticator.Authenticate(requestID, username, password)
			if err != nil {
				logger.Error("authentication delegate failed",
					slog.String("request_id", requestID),
					slog.String("error", err.Error()),
				)
				writeEmptyJSON(w, http.StatusInternalServerError)
				return
			}
			if account == nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="buzzgate"`)
				writeEmptyJSON(w, http.StatusUnauthorized)
				return
			}

			ctx := ContextWithRequester(r.Context(), account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
