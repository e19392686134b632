package handler

import (
	"github.com/hitoshi/buzzgate/internal/backend"
)

// BackendClientFactory は backend.Factory を ClientFactory に適合させるアダプタ。
type BackendClientFactory struct {
	factory *backend.Factory
}

// NewBackendClientFactory はBackendClientFactoryを生成する。
func NewBackendClientFactory(factory *backend.Factory) *BackendClientFactory {
	return &BackendClientFactory{factory: factory}
}

// Account はアカウントサービスへの接続済みクライアントを返す。
func (f *BackendClientFactory) Account() (AccountClientInterface, error) {
	return f.factory.Account()
}

// Follow はフォローサービスへの接続済みクライアントを返す。
func (f *BackendClientFactory) Follow() (FollowClientInterface, error) {
	return f.factory.Follow()
}

// Post は投稿サービスへの接続済みクライアントを返す。
func (f *BackendClientFactory) Post() (PostClientInterface, error) {
	return f.factory.Post()
}

// Like はいいねサービスへの接続済みクライアントを返す。
func (f *BackendClientFactory) Like() (LikeClientInterface, error) {
	return f.factory.Like()
}
