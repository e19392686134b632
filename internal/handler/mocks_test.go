package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/buzzgate/internal/middleware"
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// mockAccountClient はテスト用のAccountClientInterface実装。
type mockAccountClient struct {
	createAccountFn    func(ctx rpc.Context, username, password, firstName, lastName string) (*model.Account, error)
	retrieveExpandedFn func(ctx rpc.Context, accountID int64) (*model.Account, error)
	updateAccountFn    func(ctx rpc.Context, accountID int64, password, firstName, lastName string) (*model.Account, error)
	deleteAccountFn    func(ctx rpc.Context, accountID int64) error
	closed             bool
}

func (m *mockAccountClient) CreateAccount(ctx rpc.Context, username, password, firstName, lastName string) (*model.Account, error) {
	return m.createAccountFn(ctx, username, password, firstName, lastName)
}

func (m *mockAccountClient) RetrieveExpandedAccount(ctx rpc.Context, accountID int64) (*model.Account, error) {
	return m.retrieveExpandedFn(ctx, accountID)
}

func (m *mockAccountClient) UpdateAccount(ctx rpc.Context, accountID int64, password, firstName, lastName string) (*model.Account, error) {
	return m.updateAccountFn(ctx, accountID, password, firstName, lastName)
}

func (m *mockAccountClient) DeleteAccount(ctx rpc.Context, accountID int64) error {
	return m.deleteAccountFn(ctx, accountID)
}

func (m *mockAccountClient) Close() error {
	m.closed = true
	return nil
}

// mockFollowClient はテスト用のFollowClientInterface実装。
type mockFollowClient struct {
	followAccountFn    func(ctx rpc.Context, accountID int64) (*model.Follow, error)
	retrieveExpandedFn func(ctx rpc.Context, followID int64) (*model.Follow, error)
	deleteFollowFn     func(ctx rpc.Context, followID int64) error
	listFollowsFn      func(ctx rpc.Context, query model.FollowQuery, limit, offset int) ([]*model.Follow, error)
	closed             bool
}

func (m *mockFollowClient) FollowAccount(ctx rpc.Context, accountID int64) (*model.Follow, error) {
	return m.followAccountFn(ctx, accountID)
}

func (m *mockFollowClient) RetrieveExpandedFollow(ctx rpc.Context, followID int64) (*model.Follow, error) {
	return m.retrieveExpandedFn(ctx, followID)
}

func (m *mockFollowClient) DeleteFollow(ctx rpc.Context, followID int64) error {
	return m.deleteFollowFn(ctx, followID)
}

func (m *mockFollowClient) ListFollows(ctx rpc.Context, query model.FollowQuery, limit, offset int) ([]*model.Follow, error) {
	return m.listFollowsFn(ctx, query, limit, offset)
}

func (m *mockFollowClient) Close() error {
	m.closed = true
	return nil
}

// mockPostClient はテスト用のPostClientInterface実装。
type mockPostClient struct {
	createPostFn       func(ctx rpc.Context, text string) (*model.Post, error)
	retrieveExpandedFn func(ctx rpc.Context, postID int64) (*model.Post, error)
	deletePostFn       func(ctx rpc.Context, postID int64) error
	listPostsFn        func(ctx rpc.Context, query model.PostQuery, limit, offset int) ([]*model.Post, error)
	closed             bool
}

func (m *mockPostClient) CreatePost(ctx rpc.Context, text string) (*model.Post, error) {
	return m.createPostFn(ctx, text)
}

func (m *mockPostClient) RetrieveExpandedPost(ctx rpc.Context, postID int64) (*model.Post, error) {
	return m.retrieveExpandedFn(ctx, postID)
}

func (m *mockPostClient) DeletePost(ctx rpc.Context, postID int64) error {
	return m.deletePostFn(ctx, postID)
}

func (m *mockPostClient) ListPosts(ctx rpc.Context, query model.PostQuery, limit, offset int) ([]*model.Post, error) {
	return m.listPostsFn(ctx, query, limit, offset)
}

func (m *mockPostClient) Close() error {
	m.closed = true
	return nil
}

// mockLikeClient はテスト用のLikeClientInterface実装。
type mockLikeClient struct {
	likePostFn         func(ctx rpc.Context, postID int64) (*model.Like, error)
	retrieveExpandedFn func(ctx rpc.Context, likeID int64) (*model.Like, error)
	deleteLikeFn       func(ctx rpc.Context, likeID int64) error
	listLikesFn        func(ctx rpc.Context, query model.LikeQuery, limit, offset int) ([]*model.Like, error)
	closed             bool
}

func (m *mockLikeClient) LikePost(ctx rpc.Context, postID int64) (*model.Like, error) {
	return m.likePostFn(ctx, postID)
}

func (m *mockLikeClient) RetrieveExpandedLike(ctx rpc.Context, likeID int64) (*model.Like, error) {
	return m.retrieveExpandedFn(ctx, likeID)
}

func (m *mockLikeClient) DeleteLike(ctx rpc.Context, likeID int64) error {
	return m.deleteLikeFn(ctx, likeID)
}

func (m *mockLikeClient) ListLikes(ctx rpc.Context, query model.LikeQuery, limit, offset int) ([]*model.Like, error) {
	return m.listLikesFn(ctx, query, limit, offset)
}

func (m *mockLikeClient) Close() error {
	m.closed = true
	return nil
}

// mockClientFactory はテスト用のClientFactory実装。
// nilのクライアントを要求された場合はテストを失敗させる。
type mockClientFactory struct {
	t       *testing.T
	account *mockAccountClient
	follow  *mockFollowClient
	post    *mockPostClient
	like    *mockLikeClient

	accountErr error
	followErr  error
	postErr    error
	likeErr    error
}

func (f *mockClientFactory) Account() (AccountClientInterface, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	if f.account == nil {
		f.t.Fatal("unexpected Account client acquisition")
	}
	return f.account, nil
}

func (f *mockClientFactory) Follow() (FollowClientInterface, error) {
	if f.followErr != nil {
		return nil, f.followErr
	}
	if f.follow == nil {
		f.t.Fatal("unexpected Follow client acquisition")
	}
	return f.follow, nil
}

func (f *mockClientFactory) Post() (PostClientInterface, error) {
	if f.postErr != nil {
		return nil, f.postErr
	}
	if f.post == nil {
		f.t.Fatal("unexpected Post client acquisition")
	}
	return f.post, nil
}

func (f *mockClientFactory) Like() (LikeClientInterface, error) {
	if f.likeErr != nil {
		return nil, f.likeErr
	}
	if f.like == nil {
		f.t.Fatal("unexpected Like client acquisition")
	}
	return f.like, nil
}

// testLogger はテスト出力を汚さない破棄ロガーを返す。
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withRequestID はリクエストIDをコンテキストに注入したリクエストを返す。
func withRequestID(r *http.Request, requestID string) *http.Request {
	return r.WithContext(middleware.ContextWithRequestID(r.Context(), requestID))
}

// withRequester は認証済みアカウントをコンテキストに注入したリクエストを返す。
func withRequester(r *http.Request, account *model.Account) *http.Request {
	return r.WithContext(middleware.ContextWithRequester(r.Context(), account))
}

// withChiURLParam はchiのURLパスパラメータをコンテキストに注入したリクエストを返す。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newAuthenticatedRequest はリクエストID・リクエスタ付きのリクエストを組み立てる。
func newAuthenticatedRequest(method, target string, body io.Reader, requesterID int64) *http.Request {
	r := httptest.NewRequest(method, target, body)
	r = withRequestID(r, "req-"+strconv.FormatInt(requesterID, 10))
	r = withRequester(r, &model.Account{ID: requesterID, Username: "user" + strconv.FormatInt(requesterID, 10)})
	return r
}
