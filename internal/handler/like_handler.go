package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/buzzgate/internal/model"
)

// LikeHandler はいいね管理のHTTPハンドラー。
type LikeHandler struct {
	clients ClientFactory
	logger  *slog.Logger
}

// NewLikeHandler はLikeHandlerを生成する。loggerがnilの場合はslog.Default()を使う。
func NewLikeHandler(clients ClientFactory, logger *slog.Logger) *LikeHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LikeHandler{clients: clients, logger: logger}
}

// likePostRequest はいいね作成リクエストのボディ。
// post_idの欠落を検出するためポインタにする。
type likePostRequest struct {
	PostID *int64 `json:"post_id"`
}

var (
	createLikeConditions = conditionTable{
		model.ConditionAlreadyExists: http.StatusBadRequest,
	}
	retrieveLikeConditions = conditionTable{
		model.ConditionNotFound: http.StatusNotFound,
	}
	deleteLikeConditions = conditionTable{
		model.ConditionNotAuthorized: http.StatusForbidden,
		model.ConditionNotFound:      http.StatusNotFound,
	}
	// アカウント・投稿のどちらのフィルタも存在しないエンティティを参照しうる。
	listLikesConditions = conditionTable{
		model.ConditionAccountNotFound: http.StatusBadRequest,
		model.ConditionPostNotFound:    http.StatusBadRequest,
	}
)

// Create は認証済みリクエスタによるいいね作成を処理する。
// POST /like
func (h *LikeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	var req likePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}
	// 必須フィールドの欠落はバックエンドへ到達する前に拒否する
	if req.PostID == nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Like()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createLikeConditions)
		return
	}
	defer client.Close()

	like, err := client.LikePost(ctx, *req.PostID)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createLikeConditions)
		return
	}

	writeJSON(w, http.StatusCreated, toLikeStandard(like))
}

// Retrieve はいいねのexpanded表現を返す。
// 相関コンテキストは認証済みリクエスタから組み立てる。
// GET /like/{id}
func (h *LikeHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	likeID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Like()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrieveLikeConditions)
		return
	}
	defer client.Close()

	like, err := client.RetrieveExpandedLike(ctx, likeID)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrieveLikeConditions)
		return
	}

	writeJSON(w, http.StatusOK, toLikeExpanded(like))
}

// Delete はいいね削除を処理する。
// DELETE /like/{id}
func (h *LikeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	likeID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Like()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deleteLikeConditions)
		return
	}
	defer client.Close()

	if err := client.DeleteLike(ctx, likeID); err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deleteLikeConditions)
		return
	}

	writeEmptyBody(w, http.StatusOK)
}

// List はいいね一覧をexpanded表現で返す。
// GET /like?account_id=&post_id=&limit=&offset=
func (h *LikeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	var query model.LikeQuery
	if query.AccountID, err = parseOptionalInt64Query(r, "account_id"); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}
	if query.PostID, err = parseOptionalInt64Query(r, "post_id"); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Like()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, listLikesConditions)
		return
	}
	defer client.Close()

	likes, err := client.ListLikes(ctx, query, limit, offset)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, listLikesConditions)
		return
	}

	results := make([]*likeExpandedResponse, len(likes))
	for i, like := range likes {
		results[i] = toLikeExpanded(like)
	}
	writeJSON(w, http.StatusOK, results)
}
