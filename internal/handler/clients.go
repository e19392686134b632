package handler

import (
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// AccountClientInterface はアカウントハンドラーが必要とするクライアントインターフェース。
type AccountClientInterface interface {
	CreateAccount(ctx rpc.Context, username, password, firstName, lastName string) (*model.Account, error)
	RetrieveExpandedAccount(ctx rpc.Context, accountID int64) (*model.Account, error)
	UpdateAccount(ctx rpc.Context, accountID int64, password, firstName, lastName string) (*model.Account, error)
	DeleteAccount(ctx rpc.Context, accountID int64) error
	Close() error
}

// FollowClientInterface はフォローハンドラーが必要とするクライアントインターフェース。
type FollowClientInterface interface {
	FollowAccount(ctx rpc.Context, accountID int64) (*model.Follow, error)
	RetrieveExpandedFollow(ctx rpc.Context, followID int64) (*model.Follow, error)
	DeleteFollow(ctx rpc.Context, followID int64) error
	ListFollows(ctx rpc.Context, query model.FollowQuery, limit, offset int) ([]*model.Follow, error)
	Close() error
}

// PostClientInterface は投稿ハンドラーが必要とするクライアントインターフェース。
type PostClientInterface interface {
	CreatePost(ctx rpc.Context, text string) (*model.Post, error)
	RetrieveExpandedPost(ctx rpc.Context, postID int64) (*model.Post, error)
	DeletePost(ctx rpc.Context, postID int64) error
	ListPosts(ctx rpc.Context, query model.PostQuery, limit, offset int) ([]*model.Post, error)
	Close() error
}

// LikeClientInterface はいいねハンドラーが必要とするクライアントインターフェース。
type LikeClientInterface interface {
	LikePost(ctx rpc.Context, postID int64) (*model.Like, error)
	RetrieveExpandedLike(ctx rpc.Context, likeID int64) (*model.Like, error)
	DeleteLike(ctx rpc.Context, likeID int64) error
	ListLikes(ctx rpc.Context, query model.LikeQuery, limit, offset int) ([]*model.Like, error)
	Close() error
}

// ClientFactory はリクエスト処理中にバックエンドクライアントを取得するためのインターフェース。
// 取得のたびにレプリカ選択と接続が行われ、取得側がCloseの責任を持つ。
type ClientFactory interface {
	Account() (AccountClientInterface, error)
	Follow() (FollowClientInterface, error)
	Post() (PostClientInterface, error)
	Like() (LikeClientInterface, error)
}
