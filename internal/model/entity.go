// Package model はバックエンドが返すドメインエンティティと宣言済みエラー条件を定義する。
package model

// Account はアカウントサービスが返すアカウントのスナップショット。
// expanded取得時のみFollowsYou以降のフィールドが設定される。
type Account struct {
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	Active    bool   `json:"active"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// 以下はexpanded表現でのみバックエンドが埋める派生フィールド。
	FollowsYou    bool  `json:"follows_you"`
	FollowedByYou bool  `json:"followed_by_you"`
	NFollowers    int64 `json:"n_followers"`
	NFollowing    int64 `json:"n_following"`
	NPosts        int64 `json:"n_posts"`
	NLikes        int64 `json:"n_likes"`
}

// Follow はフォロー関係のスナップショット。
// FollowerとFolloweeはexpanded表現でのみバックエンドが結合済みで返す。
type Follow struct {
	ID         int64 `json:"id"`
	CreatedAt  int64 `json:"created_at"`
	FollowerID int64 `json:"follower_id"`
	FolloweeID int64 `json:"followee_id"`

	Follower *Account `json:"follower,omitempty"`
	Followee *Account `json:"followee,omitempty"`
}

// Post は投稿のスナップショット。
// AuthorとNLikesはexpanded表現でのみバックエンドが埋める。
type Post struct {
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	Active    bool   `json:"active"`
	Text      string `json:"text"`
	AuthorID  int64  `json:"author_id"`

	Author *Account `json:"author,omitempty"`
	NLikes int64    `json:"n_likes"`
}

// Like はいいねのスナップショット。
// AccountとPostはexpanded表現でのみバックエンドが結合済みで返す。
// Postはexpanded表現のPost（Author・NLikes入り）になる。
type Like struct {
	ID        int64 `json:"id"`
	CreatedAt int64 `json:"created_at"`
	AccountID int64 `json:"account_id"`
	PostID    int64 `json:"post_id"`

	Account *Account `json:"account,omitempty"`
	Post    *Post    `json:"post,omitempty"`
}

// FollowQuery はフォロー一覧の絞り込み条件。nilのフィールドは条件に含めない。
type FollowQuery struct {
	FollowerID *int64 `json:"follower_id,omitempty"`
	FolloweeID *int64 `json:"followee_id,omitempty"`
}

// PostQuery は投稿一覧の絞り込み条件。
type PostQuery struct {
	AuthorID *int64 `json:"author_id,omitempty"`
}

// LikeQuery はいいね一覧の絞り込み条件。
type LikeQuery struct {
	AccountID *int64 `json:"account_id,omitempty"`
	PostID    *int64 `json:"post_id,omitempty"`
}
