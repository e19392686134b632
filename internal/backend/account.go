package backend

import (
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// AccountClient はアカウントサービスの計測付きクライアント。
// 宣言済み条件: invalid_credentials（authenticate_user）、invalid_attributes、
// username_already_exists、not_found、not_authorized。
type AccountClient struct {
	client
}

// AuthenticateUser は資格情報を検証し、認証されたアカウントを返す。
func (c *AccountClient) AuthenticateUser(ctx rpc.Context, username, password string) (*model.Account, error) {
	params := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var account model.Account
	if err := c.call(ctx, "authenticate_user", params, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount は新規アカウントを作成する。
func (c *AccountClient) CreateAccount(ctx rpc.Context, username, password, firstName, lastName string) (*model.Account, error) {
	params := struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}{username, password, firstName, lastName}

	var account model.Account
	if err := c.call(ctx, "create_account", params, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// RetrieveStandardAccount はアカウントのstandard表現を取得する。
func (c *AccountClient) RetrieveStandardAccount(ctx rpc.Context, accountID int64) (*model.Account, error) {
	var account model.Account
	if err := c.call(ctx, "retrieve_standard_account", accountIDParams{accountID}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// RetrieveExpandedAccount はアカウントのexpanded表現（関連カウント入り）を取得する。
func (c *AccountClient) RetrieveExpandedAccount(ctx rpc.Context, accountID int64) (*model.Account, error) {
	var account model.Account
	if err := c.call(ctx, "retrieve_expanded_account", accountIDParams{accountID}, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount はアカウントの属性を更新し、更新後のstandard表現を返す。
func (c *AccountClient) UpdateAccount(ctx rpc.Context, accountID int64, password, firstName, lastName string) (*model.Account, error) {
	params := struct {
		AccountID int64  `json:"account_id"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}{accountID, password, firstName, lastName}

	var account model.Account
	if err := c.call(ctx, "update_account", params, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount はアカウントを削除する。
func (c *AccountClient) DeleteAccount(ctx rpc.Context, accountID int64) error {
	return c.call(ctx, "delete_account", accountIDParams{accountID}, nil)
}

// accountIDParams はaccount_idのみを渡す操作の共通パラメータ。
type accountIDParams struct {
	AccountID int64 `json:"account_id"`
}
