// Package auth はHTTP Basic資格情報をアカウントサービスへ委譲して検証する。
package auth

import (
	"fmt"

	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// AccountClient は認証委譲に必要なアカウントサービス呼び出しのインターフェース。
// backend.AccountClientの部分集合として定義する。
type AccountClient interface {
	AuthenticateUser(ctx rpc.Context, username, password string) (*model.Account, error)
	Close() error
}

// ClientSource は呼び出しスコープ単位のアカウントクライアント取得元。
// backend.Factoryをアダプタ経由で渡す。
type ClientSource interface {
	Account() (AccountClient, error)
}

// Delegate は資格情報の検証をアカウントサービスへ委譲する。
type Delegate struct {
	clients ClientSource
}

// NewDelegate はDelegateを生成する。
func NewDelegate(clients ClientSource) *Delegate {
	return &Delegate{clients: clients}
}

// Authenticate は資格情報を検証し、認証されたアカウントを返す。
// 資格情報不正（invalid_credentials条件）は(nil, nil)を返す。これは認証プロトコル上の
// 期待される結果であり、エラーではない。接続障害や未知の条件はそのままエラーとして
// 伝播させる。インフラ障害を「パスワード誤り」に見せてはならない。
func (d *Delegate) Authenticate(requestID, username, password string) (*model.Account, error) {
	// 認証前なのでリクエストIDのみのコンテキストで呼び出す
	ctx := rpc.NewContext(requestID)

	c, err := d.clients.Account()
	if err != nil {
		return nil, fmt.Errorf("auth: acquire account client: %w", err)
	}
	defer c.Close()

	account, err := c.AuthenticateUser(ctx, username, password)
	if err != nil {
		if model.IsCondition(err, model.ConditionInvalidCredentials) {
			return nil, nil
		}
		return nil, fmt.Errorf("auth: authenticate_user: %w", err)
	}
	return account, nil
}
