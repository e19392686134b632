package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/buzzgate/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// バックエンドクライアント取得
	Clients ClientFactory

	// ミドルウェア依存
	Authenticator middleware.Authenticator
	RateLimiter   *middleware.RateLimiter
	Logger        *slog.Logger
	HTTPMetrics   middleware.HTTPMetrics

	// Prometheusスクレイプ用ハンドラー。nilの場合/metricsは公開しない。
	MetricsHandler http.Handler
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → RequestID → (BasicAuth → RateLimit(General) | RateLimit(Signup))
//
// アカウント作成（POST /account）だけは認証不要で、IPキーのレート制限がかかる。
// /healthと/metricsはリクエストIDも認証も要求しない。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware(deps.Logger))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.HTTPMetrics))

	accountHandler := NewAccountHandler(deps.Clients, deps.Logger)
	followHandler := NewFollowHandler(deps.Clients, deps.Logger)
	postHandler := NewPostHandler(deps.Clients, deps.Logger)
	likeHandler := NewLikeHandler(deps.Clients, deps.Logger)

	// --- 運用ルート ---

	r.Get("/health", Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 認証不要のルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRequestIDMiddleware())
		r.Use(deps.RateLimiter.SignupMiddleware())

		r.Post("/account", accountHandler.Create)
	})

	// --- 認証が必要なルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewRequestIDMiddleware())
		r.Use(middleware.NewBasicAuthMiddleware(deps.Authenticator, deps.Logger))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// アカウント
		r.Get("/account/{id}", accountHandler.Retrieve)
		r.Put("/account/{id}", accountHandler.Update)
		r.Delete("/account/{id}", accountHandler.Delete)

		// フォロー
		r.Post("/follow", followHandler.Create)
		r.Get("/follow", followHandler.List)
		r.Get("/follow/{id}", followHandler.Retrieve)
		r.Delete("/follow/{id}", followHandler.Delete)

		// 投稿
		r.Post("/post", postHandler.Create)
		r.Get("/post", postHandler.List)
		r.Get("/post/{id}", postHandler.Retrieve)
		r.Delete("/post/{id}", postHandler.Delete)

		// いいね
		r.Post("/like", likeHandler.Create)
		r.Get("/like", likeHandler.List)
		r.Get("/like/{id}", likeHandler.Retrieve)
		r.Delete("/like/{id}", likeHandler.Delete)
	})

	return r
}

// Health はロードバランサ向けのヘルスチェックエンドポイント。
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
