// Package rpc はバックエンドサービスへのワイヤ呼び出しを提供する。
// エンベロープはJSONの行区切りで、各呼び出しの第1要素として相関コンテキストを運ぶ。
package rpc

// Context はリクエスト単位の相関コンテキスト。
// RequestIDはHTTPリクエスト受信時に必須で、RequesterIDは認証成功後にのみ設定される。
// 1リクエストの間イミュータブルに扱い、すべての下流呼び出しへそのまま渡す。
type Context struct {
	RequestID   string `json:"request_id"`
	RequesterID *int64 `json:"requester_id,omitempty"`
}

// NewContext はリクエストIDのみを持つContextを生成する。
// 認証前の呼び出し（authenticate_user等）はこの形で行う。
func NewContext(requestID string) Context {
	return Context{RequestID: requestID}
}

// WithRequester は認証済みアカウントIDを設定した新しいContextを返す。
// 元のContextは変更しない。
func (c Context) WithRequester(accountID int64) Context {
	c.RequesterID = &accountID
	return c
}
