package handler

import (
	"github.com/hitoshi/buzzgate/internal/model"
)

// 各エンティティのAPIレスポンスはobject（エンティティ種別）とmode（standard/expanded）の
// タグを持つ。standardはフラットなフィールドのみ、expandedは関連エンティティの
// ネスト表現と派生カウントを加える。ネストと集計はバックエンドが結合済みで返す。

// accountStandardResponse はアカウントのstandard表現。
type accountStandardResponse struct {
	Object    string `json:"object"`
	Mode      string `json:"mode"`
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	Active    bool   `json:"active"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// accountExpandedResponse はアカウントのexpanded表現。
type accountExpandedResponse struct {
	Object    string `json:"object"`
	Mode      string `json:"mode"`
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	Active    bool   `json:"active"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	FollowsYou    bool  `json:"follows_you"`
	FollowedByYou bool  `json:"followed_by_you"`
	NFollowers    int64 `json:"n_followers"`
	NFollowing    int64 `json:"n_following"`
	NPosts        int64 `json:"n_posts"`
	NLikes        int64 `json:"n_likes"`
}

// followStandardResponse はフォローのstandard表現。
type followStandardResponse struct {
	Object     string `json:"object"`
	Mode       string `json:"mode"`
	ID         int64  `json:"id"`
	CreatedAt  int64  `json:"created_at"`
	FollowerID int64  `json:"follower_id"`
	FolloweeID int64  `json:"followee_id"`
}

// followExpandedResponse はフォローのexpanded表現。
// 両アカウントはstandard表現でネストする。
type followExpandedResponse struct {
	Object     string `json:"object"`
	Mode       string `json:"mode"`
	ID         int64  `json:"id"`
	CreatedAt  int64  `json:"created_at"`
	FollowerID int64  `json:"follower_id"`
	FolloweeID int64  `json:"followee_id"`

	Follower *accountStandardResponse `json:"follower,omitempty"`
	Followee *accountStandardResponse `json:"followee,omitempty"`
}

// postStandardResponse は投稿のstandard表現。
type postStandardResponse struct {
	Object    string `json:"object"`
	Mode      string `json:"mode"`
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	Active    bool   `json:"active"`
	Text      string `json:"text"`
	AuthorID  int64  `json:"author_id"`
}

// postExpandedResponse は投稿のexpanded表現。
// 著者はstandard表現でネストし、いいね数を加える。
type postExpandedResponse struct {
	Object    string `json:"object"`
	Mode      string `json:"mode"`
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	Active    bool   `json:"active"`
	Text      string `json:"text"`
	AuthorID  int64  `json:"author_id"`

	Author *accountStandardResponse `json:"author,omitempty"`
	NLikes int64                    `json:"n_likes"`
}

// likeStandardResponse はいいねのstandard表現。
type likeStandardResponse struct {
	Object    string `json:"object"`
	Mode      string `json:"mode"`
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	AccountID int64  `json:"account_id"`
	PostID    int64  `json:"post_id"`
}

// likeExpandedResponse はいいねのexpanded表現。
// アカウントはstandard、投稿はexpanded表現でネストする。
type likeExpandedResponse struct {
	Object    string `json:"object"`
	Mode      string `json:"mode"`
	ID        int64  `json:"id"`
	CreatedAt int64  `json:"created_at"`
	AccountID int64  `json:"account_id"`
	PostID    int64  `json:"post_id"`

	Account *accountStandardResponse `json:"account,omitempty"`
	Post    *postExpandedResponse    `json:"post,omitempty"`
}

// toAccountStandard はアカウントをstandard表現へ変換する。
func toAccountStandard(a *model.Account) *accountStandardResponse {
	if a == nil {
		return nil
	}
	return &accountStandardResponse{
		Object:    "account",
		Mode:      "standard",
		ID:        a.ID,
		CreatedAt: a.CreatedAt,
		Active:    a.Active,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
	}
}

// toAccountExpanded はアカウントをexpanded表現へ変換する。
func toAccountExpanded(a *model.Account) *accountExpandedResponse {
	return &accountExpandedResponse{
		Object:        "account",
		Mode:          "expanded",
		ID:            a.ID,
		CreatedAt:     a.CreatedAt,
		Active:        a.Active,
		Username:      a.Username,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		FollowsYou:    a.FollowsYou,
		FollowedByYou: a.FollowedByYou,
		NFollowers:    a.NFollowers,
		NFollowing:    a.NFollowing,
		NPosts:        a.NPosts,
		NLikes:        a.NLikes,
	}
}

// toFollowStandard はフォローをstandard表現へ変換する。
func toFollowStandard(f *model.Follow) *followStandardResponse {
	return &followStandardResponse{
		Object:     "follow",
		Mode:       "standard",
		ID:         f.ID,
		CreatedAt:  f.CreatedAt,
		FollowerID: f.FollowerID,
		FolloweeID: f.FolloweeID,
	}
}

// toFollowExpanded はフォローをexpanded表現へ変換する。
func toFollowExpanded(f *model.Follow) *followExpandedResponse {
	return &followExpandedResponse{
		Object:     "follow",
		Mode:       "expanded",
		ID:         f.ID,
		CreatedAt:  f.CreatedAt,
		FollowerID: f.FollowerID,
		FolloweeID: f.FolloweeID,
		Follower:   toAccountStandard(f.Follower),
		Followee:   toAccountStandard(f.Followee),
	}
}

// toPostStandard は投稿をstandard表現へ変換する。
func toPostStandard(p *model.Post) *postStandardResponse {
	return &postStandardResponse{
		Object:    "post",
		Mode:      "standard",
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Active:    p.Active,
		Text:      p.Text,
		AuthorID:  p.AuthorID,
	}
}

// toPostExpanded は投稿をexpanded表現へ変換する。
func toPostExpanded(p *model.Post) *postExpandedResponse {
	if p == nil {
		return nil
	}
	return &postExpandedResponse{
		Object:    "post",
		Mode:      "expanded",
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Active:    p.Active,
		Text:      p.Text,
		AuthorID:  p.AuthorID,
		Author:    toAccountStandard(p.Author),
		NLikes:    p.NLikes,
	}
}

// toLikeStandard はいいねをstandard表現へ変換する。
func toLikeStandard(l *model.Like) *likeStandardResponse {
	return &likeStandardResponse{
		Object:    "like",
		Mode:      "standard",
		ID:        l.ID,
		CreatedAt: l.CreatedAt,
		AccountID: l.AccountID,
		PostID:    l.PostID,
	}
}

// toLikeExpanded はいいねをexpanded表現へ変換する。
func toLikeExpanded(l *model.Like) *likeExpandedResponse {
	return &likeExpandedResponse{
		Object:    "like",
		Mode:      "expanded",
		ID:        l.ID,
		CreatedAt: l.CreatedAt,
		AccountID: l.AccountID,
		PostID:    l.PostID,
		Account:   toAccountStandard(l.Account),
		Post:      toPostExpanded(l.Post),
	}
}
