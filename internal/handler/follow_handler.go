package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/buzzgate/internal/model"
)

// FollowHandler はフォロー管理のHTTPハンドラー。
type FollowHandler struct {
	clients ClientFactory
	logger  *slog.Logger
}

// NewFollowHandler はFollowHandlerを生成する。loggerがnilの場合はslog.Default()を使う。
func NewFollowHandler(clients ClientFactory, logger *slog.Logger) *FollowHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FollowHandler{clients: clients, logger: logger}
}

// followAccountRequest はフォロー作成リクエストのボディ。
// account_idの欠落を検出するためポインタにする。
type followAccountRequest struct {
	AccountID *int64 `json:"account_id"`
}

var (
	createFollowConditions = conditionTable{
		model.ConditionAlreadyExists: http.StatusBadRequest,
	}
	retrieveFollowConditions = conditionTable{
		model.ConditionNotFound: http.StatusNotFound,
	}
	deleteFollowConditions = conditionTable{
		model.ConditionNotAuthorized: http.StatusForbidden,
		model.ConditionNotFound:      http.StatusNotFound,
	}
	// 存在しないアカウントを参照するフィルタはaccount_not_found条件になる。
	// 空一覧（200）とは区別してクライアントエラーとして返す。
	listFollowsConditions = conditionTable{
		model.ConditionAccountNotFound: http.StatusBadRequest,
	}
)

// Create は認証済みリクエスタからのフォロー作成を処理する。
// POST /follow
func (h *FollowHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	var req followAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}
	// 必須フィールドの欠落はバックエンドへ到達する前に拒否する
	if req.AccountID == nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Follow()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createFollowConditions)
		return
	}
	defer client.Close()

	follow, err := client.FollowAccount(ctx, *req.AccountID)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createFollowConditions)
		return
	}

	writeJSON(w, http.StatusCreated, toFollowStandard(follow))
}

// Retrieve はフォローのexpanded表現を返す。
// GET /follow/{id}
func (h *FollowHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	followID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Follow()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrieveFollowConditions)
		return
	}
	defer client.Close()

	follow, err := client.RetrieveExpandedFollow(ctx, followID)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrieveFollowConditions)
		return
	}

	writeJSON(w, http.StatusOK, toFollowExpanded(follow))
}

// Delete はフォロー削除を処理する。
// DELETE /follow/{id}
func (h *FollowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	followID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Follow()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deleteFollowConditions)
		return
	}
	defer client.Close()

	if err := client.DeleteFollow(ctx, followID); err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deleteFollowConditions)
		return
	}

	writeEmptyBody(w, http.StatusOK)
}

// List はフォロー一覧をexpanded表現で返す。
// GET /follow?follower_id=&followee_id=&limit=&offset=
func (h *FollowHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var query model.FollowQuery
	if query.FollowerID, err = parseOptionalInt64Query(r, "follower_id"); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}
	if query.FolloweeID, err = parseOptionalInt64Query(r, "followee_id"); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Follow()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, listFollowsConditions)
		return
	}
	defer client.Close()

	follows, err := client.ListFollows(ctx, query, limit, offset)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, listFollowsConditions)
		return
	}

	results := make([]*followExpandedResponse, len(follows))
	for i, follow := range follows {
		results[i] = toFollowExpanded(follow)
	}
	writeJSON(w, http.StatusOK, results)
}
