// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"

	"github.com/hitoshi/buzzgate/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// requestIDContextKey はリクエストコンテキストにリクエストIDを格納するためのキー。
var requestIDContextKey = contextKey("request_id")

// requesterContextKey はリクエストコンテキストに認証済みアカウントを格納するためのキー。
var requesterContextKey = contextKey("requester")

// RequestIDFromContext はリクエストコンテキストからリクエストIDを取得する。
// リクエストIDミドルウェアを通過したリクエストでのみ有効。
func RequestIDFromContext(ctx context.Context) (string, error) {
	requestID, ok := ctx.Value(requestIDContextKey).(string)
	if !ok || requestID == "" {
		return "", fmt.Errorf("request ID not found in context")
	}
	return requestID, nil
}

// ContextWithRequestID はコンテキストにリクエストIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// RequesterFromContext はリクエストコンテキストから認証済みアカウントを取得する。
// Basic認証ミドルウェアを通過したリクエストでのみ有効。
func RequesterFromContext(ctx context.Context) (*model.Account, error) {
	requester, ok := ctx.Value(requesterContextKey).(*model.Account)
	if !ok || requester == nil {
		return nil, fmt.Errorf("requester not found in context")
	}
	return requester, nil
}

// ContextWithRequester はコンテキストに認証済みアカウントを注入する。
func ContextWithRequester(ctx context.Context, account *model.Account) context.Context {
	return context.WithValue(ctx, requesterContextKey, account)
}
