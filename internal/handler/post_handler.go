package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/buzzgate/internal/model"
)

// PostHandler は投稿管理のHTTPハンドラー。
type PostHandler struct {
	clients ClientFactory
	logger  *slog.Logger
}

// NewPostHandler はPostHandlerを生成する。loggerがnilの場合はslog.Default()を使う。
func NewPostHandler(clients ClientFactory, logger *slog.Logger) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{clients: clients, logger: logger}
}

// createPostRequest は投稿作成リクエストのボディ。
// textの欠落を検出するためポインタにする。
type createPostRequest struct {
	Text *string `json:"text"`
}

var (
	createPostConditions = conditionTable{
		model.ConditionInvalidAttributes: http.StatusBadRequest,
	}
	retrievePostConditions = conditionTable{
		model.ConditionNotFound: http.StatusNotFound,
	}
	deletePostConditions = conditionTable{
		model.ConditionNotAuthorized: http.StatusForbidden,
		model.ConditionNotFound:      http.StatusNotFound,
	}
	listPostsConditions = conditionTable{
		model.ConditionAccountNotFound: http.StatusBadRequest,
	}
)

// Create は認証済みリクエスタ名義の投稿作成を処理する。
// POST /post
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}
	// 必須フィールドの欠落はバックエンドへ到達する前に拒否する
	// （空文字列の妥当性判断はバックエンドのinvalid_attributes条件に委ねる）
	if req.Text == nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Post()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createPostConditions)
		return
	}
	defer client.Close()

	post, err := client.CreatePost(ctx, *req.Text)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createPostConditions)
		return
	}

	writeJSON(w, http.StatusCreated, toPostStandard(post))
}

// Retrieve は投稿のexpanded表現を返す。
// GET /post/{id}
func (h *PostHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	postID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Post()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrievePostConditions)
		return
	}
	defer client.Close()

	post, err := client.RetrieveExpandedPost(ctx, postID)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrievePostConditions)
		return
	}

	writeJSON(w, http.StatusOK, toPostExpanded(post))
}

// Delete は投稿削除を処理する。
// DELETE /post/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	postID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Post()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deletePostConditions)
		return
	}
	defer client.Close()

	if err := client.DeletePost(ctx, postID); err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deletePostConditions)
		return
	}

	writeEmptyBody(w, http.StatusOK)
}

// List は投稿一覧をexpanded表現で返す。
// GET /post?author_id=&limit=&offset=
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
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

	var query model.PostQuery
	if query.AuthorID, err = parseOptionalInt64Query(r, "author_id"); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Post()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, listPostsConditions)
		return
	}
	defer client.Close()

	posts, err := client.ListPosts(ctx, query, limit, offset)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, listPostsConditions)
		return
	}

	results := make([]*postExpandedResponse, len(posts))
	for i, post := range posts {
		results[i] = toPostExpanded(post)
	}
	writeJSON(w, http.StatusOK, results)
}
