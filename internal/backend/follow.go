package backend

import (
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// FollowClient はフォローサービスの計測付きクライアント。
// 宣言済み条件: already_exists、not_found、not_authorized、account_not_found（list）。
type FollowClient struct {
	client
}

// FollowAccount は認証済みリクエスタからaccount_idへのフォローを作成する。
func (c *FollowClient) FollowAccount(ctx rpc.Context, accountID int64) (*model.Follow, error) {
	params := struct {
		AccountID int64 `json:"account_id"`
	}{accountID}

	var follow model.Follow
	if err := c.call(ctx, "follow_account", params, &follow); err != nil {
		return nil, err
	}
	return &follow, nil
}

// RetrieveStandardFollow はフォローのstandard表現を取得する。
func (c *FollowClient) RetrieveStandardFollow(ctx rpc.Context, followID int64) (*model.Follow, error) {
	var follow model.Follow
	if err := c.call(ctx, "retrieve_standard_follow", followIDParams{followID}, &follow); err != nil {
		return nil, err
	}
	return &follow, nil
}

// RetrieveExpandedFollow はフォローのexpanded表現（両アカウント結合済み）を取得する。
func (c *FollowClient) RetrieveExpandedFollow(ctx rpc.Context, followID int64) (*model.Follow, error) {
	var follow model.Follow
	if err := c.call(ctx, "retrieve_expanded_follow", followIDParams{followID}, &follow); err != nil {
		return nil, err
	}
	return &follow, nil
}

// DeleteFollow はフォローを削除する。
func (c *FollowClient) DeleteFollow(ctx rpc.Context, followID int64) error {
	return c.call(ctx, "delete_follow", followIDParams{followID}, nil)
}

// ListFollows はフォロー一覧をexpanded表現で取得する。
// queryの存在しないアカウント参照はaccount_not_found条件になる（空一覧とは区別される）。
func (c *FollowClient) ListFollows(ctx rpc.Context, query model.FollowQuery, limit, offset int) ([]*model.Follow, error) {
	params := struct {
		Query  model.FollowQuery `json:"query"`
		Limit  int               `json:"limit"`
		Offset int               `json:"offset"`
	}{query, limit, offset}

	var follows []*model.Follow
	if err := c.call(ctx, "list_follows", params, &follows); err != nil {
		return nil, err
	}
	return follows, nil
}

// followIDParams はfollow_idのみを渡す操作の共通パラメータ。
type followIDParams struct {
	FollowID int64 `json:"follow_id"`
}
