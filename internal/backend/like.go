package backend

import (
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// LikeClient はいいねサービスの計測付きクライアント。
// 宣言済み条件: already_exists、not_found、not_authorized、
// account_not_found・post_not_found（list）。
type LikeClient struct {
	client
}

// LikePost は認証済みリクエスタによるpost_idへのいいねを作成する。
func (c *LikeClient) LikePost(ctx rpc.Context, postID int64) (*model.Like, error) {
	params := struct {
		PostID int64 `json:"post_id"`
	}{postID}

	var like model.Like
	if err := c.call(ctx, "like_post", params, &like); err != nil {
		return nil, err
	}
	return &like, nil
}

// RetrieveStandardLike はいいねのstandard表現を取得する。
func (c *LikeClient) RetrieveStandardLike(ctx rpc.Context, likeID int64) (*model.Like, error) {
	var like model.Like
	if err := c.call(ctx, "retrieve_standard_like", likeIDParams{likeID}, &like); err != nil {
		return nil, err
	}
	return &like, nil
}

// RetrieveExpandedLike はいいねのexpanded表現を取得する。
// アカウントはstandard、投稿はexpanded表現でバックエンドが結合済みで返す。
func (c *LikeClient) RetrieveExpandedLike(ctx rpc.Context, likeID int64) (*model.Like, error) {
	var like model.Like
	if err := c.call(ctx, "retrieve_expanded_like", likeIDParams{likeID}, &like); err != nil {
		return nil, err
	}
	return &like, nil
}

// DeleteLike はいいねを削除する。
func (c *LikeClient) DeleteLike(ctx rpc.Context, likeID int64) error {
	return c.call(ctx, "delete_like", likeIDParams{likeID}, nil)
}

// ListLikes はいいね一覧をexpanded表現で取得する。
func (c *LikeClient) ListLikes(ctx rpc.Context, query model.LikeQuery, limit, offset int) ([]*model.Like, error) {
	params := struct {
		Query  model.LikeQuery `json:"query"`
		Limit  int             `json:"limit"`
		Offset int             `json:"offset"`
	}{query, limit, offset}

	var likes []*model.Like
	if err := c.call(ctx, "list_likes", params, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

// likeIDParams はlike_idのみを渡す操作の共通パラメータ。
type likeIDParams struct {
	LikeID int64 `json:"like_id"`
}
