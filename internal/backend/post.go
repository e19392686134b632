package backend

import (
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// PostClient は投稿サービスの計測付きクライアント。
// 宣言済み条件: invalid_attributes、not_found、not_authorized、account_not_found（list）。
type PostClient struct {
	client
}

// CreatePost は認証済みリクエスタ名義の投稿を作成する。
func (c *PostClient) CreatePost(ctx rpc.Context, text string) (*model.Post, error) {
	params := struct {
		Text string `json:"text"`
	}{text}

	var post model.Post
	if err := c.call(ctx, "create_post", params, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// RetrieveStandardPost は投稿のstandard表現を取得する。
func (c *PostClient) RetrieveStandardPost(ctx rpc.Context, postID int64) (*model.Post, error) {
	var post model.Post
	if err := c.call(ctx, "retrieve_standard_post", postIDParams{postID}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// RetrieveExpandedPost は投稿のexpanded表現（著者結合・いいね数入り）を取得する。
func (c *PostClient) RetrieveExpandedPost(ctx rpc.Context, postID int64) (*model.Post, error) {
	var post model.Post
	if err := c.call(ctx, "retrieve_expanded_post", postIDParams{postID}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost は投稿を削除する。
func (c *PostClient) DeletePost(ctx rpc.Context, postID int64) error {
	return c.call(ctx, "delete_post", postIDParams{postID}, nil)
}

// ListPosts は投稿一覧をexpanded表現で取得する。
func (c *PostClient) ListPosts(ctx rpc.Context, query model.PostQuery, limit, offset int) ([]*model.Post, error) {
	params := struct {
		Query  model.PostQuery `json:"query"`
		Limit  int             `json:"limit"`
		Offset int             `json:"offset"`
	}{query, limit, offset}

	var posts []*model.Post
	if err := c.call(ctx, "list_posts", params, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// postIDParams はpost_idのみを渡す操作の共通パラメータ。
type postIDParams struct {
	PostID int64 `json:"post_id"`
}
