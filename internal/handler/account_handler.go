package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hitoshi/buzzgate/internal/model"
)

// AccountHandler はアカウント管理のHTTPハンドラー。
type AccountHandler struct {
	clients ClientFactory
	logger  *slog.Logger
}

// NewAccountHandler はAccountHandlerを生成する。loggerがnilの場合はslog.Default()を使う。
func NewAccountHandler(clients ClientFactory, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountHandler{clients: clients, logger: logger}
}

// createAccountRequest はアカウント作成リクエストのボディ。
// 必須フィールドの欠落を検出するため全フィールドをポインタにする。
type createAccountRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// updateAccountRequest はアカウント更新リクエストのボディ。
type updateAccountRequest struct {
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// ルートごとの宣言済み条件→ステータスの対応表
var (
	createAccountConditions = conditionTable{
		model.ConditionInvalidAttributes:     http.StatusBadRequest,
		model.ConditionUsernameAlreadyExists: http.StatusBadRequest,
	}
	retrieveAccountConditions = conditionTable{
		model.ConditionNotFound: http.StatusNotFound,
	}
	updateAccountConditions = conditionTable{
		model.ConditionInvalidAttributes: http.StatusBadRequest,
		model.ConditionNotAuthorized:     http.StatusForbidden,
		model.ConditionNotFound:          http.StatusNotFound,
	}
	deleteAccountConditions = conditionTable{
		model.ConditionNotAuthorized: http.StatusForbidden,
		model.ConditionNotFound:      http.StatusNotFound,
	}
)

// Create はアカウント作成を処理する。認証不要の唯一のルート。
// POST /account
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}
	// 必須フィールドの欠落はバックエンドへ到達する前に拒否する
	if req.Username == nil || req.Password == nil || req.FirstName == nil || req.LastName == nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Account()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createAccountConditions)
		return
	}
	defer client.Close()

	account, err := client.CreateAccount(ctx, *req.Username, *req.Password, *req.FirstName, *req.LastName)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, createAccountConditions)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountStandard(account))
}

// Retrieve はアカウントのexpanded表現を返す。
// GET /account/{id}
func (h *AccountHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Account()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrieveAccountConditions)
		return
	}
	defer client.Close()

	account, err := client.RetrieveExpandedAccount(ctx, accountID)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, retrieveAccountConditions)
		return
	}

	writeJSON(w, http.StatusOK, toAccountExpanded(account))
}

// Update はアカウント属性の更新を処理する。
// PUT /account/{id}
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}
	if req.Password == nil || req.FirstName == nil || req.LastName == nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Account()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, updateAccountConditions)
		return
	}
	defer client.Close()

	account, err := client.UpdateAccount(ctx, accountID, *req.Password, *req.FirstName, *req.LastName)
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, updateAccountConditions)
		return
	}

	writeJSON(w, http.StatusOK, toAccountStandard(account))
}

// Delete はアカウント削除を処理する。
// DELETE /account/{id}
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, err := buildCallContext(r)
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	accountID, err := parseIDParam(r, "id")
	if err != nil {
		writeEmptyBody(w, http.StatusBadRequest)
		return
	}

	client, err := h.clients.Account()
	if err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deleteAccountConditions)
		return
	}
	defer client.Close()

	if err := client.DeleteAccount(ctx, accountID); err != nil {
		writeBackendError(w, h.logger, ctx.RequestID, err, deleteAccountConditions)
		return
	}

	writeEmptyBody(w, http.StatusOK)
}
