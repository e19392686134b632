// Package handler はREST APIのHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/buzzgate/internal/middleware"
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// conditionTable はルートごとの宣言済み条件→HTTPステータスの対応表。
// 表にない条件はインフラ障害と同じく500として扱う。
type conditionTable map[model.Condition]int

// buildCallContext はHTTPリクエストからバックエンド呼び出し用の相関コンテキストを組み立てる。
// 認証済みリクエスタがいる場合はrequester_idを設定する。
func buildCallContext(r *http.Request) (rpc.Context, error) {
	requestID, err := middleware.RequestIDFromContext(r.Context())
	if err != nil {
		return rpc.Context{}, err
	}

	ctx := rpc.NewContext(requestID)
	if requester, err := middleware.RequesterFromContext(r.Context()); err == nil {
		ctx = ctx.WithRequester(requester.ID)
	}
	return ctx, nil
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeEmptyBody は空のJSONオブジェクトボディでステータスコードを書き込む。
// 全エラーレスポンスと削除成功レスポンスの統一フォーマット。
func writeEmptyBody(w http.ResponseWriter, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte("{}\n"))
}

// writeBackendError はバックエンド呼び出しのエラーをHTTPレスポンスへ変換する。
// 対応表にある宣言済み条件はそのステータス、それ以外（接続障害・タイムアウト・
// 未知の条件）はエラーログを出して500を返す。ボディは常に{}。
func writeBackendError(w http.ResponseWriter, logger *slog.Logger, requestID string, err error, table conditionTable) {
	if cond, ok := model.ConditionOf(err); ok {
		if statusCode, mapped := table[cond]; mapped {
			writeEmptyBody(w, statusCode)
			return
		}
	}

	logger.Error("backend call failed",
		slog.String("request_id", requestID),
		slog.String("error", err.Error()),
	)
	writeEmptyBody(w, http.StatusInternalServerError)
}

// parseIDParam はURLパスパラメータを整数IDとして解析する。
func parseIDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// parsePagination は一覧取得の必須クエリパラメータlimit/offsetを解析する。
// 欠落・非整数・limit<1・offset<0はエラーになる。
func parsePagination(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()

	rawLimit := q.Get("limit")
	if rawLimit == "" {
		return 0, 0, fmt.Errorf("limit is required")
	}
	limit, err = strconv.Atoi(rawLimit)
	if err != nil || limit < 1 {
		return 0, 0, fmt.Errorf("invalid limit: %q", rawLimit)
	}

	rawOffset := q.Get("offset")
	if rawOffset == "" {
		return 0, 0, fmt.Errorf("offset is required")
	}
	offset, err = strconv.Atoi(rawOffset)
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset: %q", rawOffset)
	}

	return limit, offset, nil
}

// parseOptionalInt64Query は任意の整数クエリパラメータを解析する。
// 未指定の場合はnilを返す。指定があり整数でない場合はエラーになる。
func parseOptionalInt64Query(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return &v, nil
}
