package middleware

import "net/http"

// NewRequestIDMiddleware はクエリパラメータrequest_idを必須化するミドルウェアを返す。
// 欠落時はバックエンド呼び出しも認証委譲も行わずに400を返す。
// 取得したリクエストIDはリクエストコンテキストに注入する。
func NewRequestIDMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.URL.Query().Get("request_id")
			if requestID == "" {
				writeEmptyJSON(w, http.StatusBadRequest)
				return
			}

			ctx := ContextWithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeEmptyJSON は空のJSONオブジェクトボディでステータスコードを書き込む。
// エラー応答の統一フォーマット（本文は常に{}）。
func writeEmptyJSON(w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte("{}\n"))
}
