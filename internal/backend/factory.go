package backend

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/buzzgate/internal/rpc"
)

// defaultDialTimeout は接続・読み取り・書き込みのデフォルトタイムアウト。
const defaultDialTimeout = 10 * time.Second

// FactoryConfig はFactoryの生成オプション。ゼロ値のフィールドにはデフォルトが適用される。
type FactoryConfig struct {
	Selector EndpointSelector // 省略時は一様ランダム選択
	Timeout  time.Duration    // 省略時は10秒
	Logger   *slog.Logger     // 省略時はslog.Default()
	Recorder CallRecorder     // 省略時はメトリクス記録なし
}

// Factory は呼び出しごとにレプリカを選択し、接続済みクライアントを生成する。
// Registryは起動時に検証済みの読み取り専用マッピングであることが前提。
// 選択は呼び出しごとに独立で、同一HTTPリクエスト内の複数回の取得が
// 異なるレプリカに向かうことを許容する。
type Factory struct {
	registry Registry
	selector EndpointSelector
	timeout  time.Duration
	logger   *slog.Logger
	recorder CallRecorder
}

// NewFactory はFactoryを生成する。
func NewFactory(registry Registry, cfg FactoryConfig) *Factory {
	if cfg.Selector == nil {
		cfg.Selector = NewRandomSelector()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultDialTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Factory{
		registry: registry,
		selector: cfg.Selector,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
	}
}

// Account はアカウントサービスへの接続済みクライアントを返す。
func (f *Factory) Account() (*AccountClient, error) {
	c, err := f.dial(ServiceAccount)
	if err != nil {
		return nil, err
	}
	return &AccountClient{client: *c}, nil
}

// Follow はフォローサービスへの接続済みクライアントを返す。
func (f *Factory) Follow() (*FollowClient, error) {
	c, err := f.dial(ServiceFollow)
	if err != nil {
		return nil, err
	}
	return &FollowClient{client: *c}, nil
}

// Post は投稿サービスへの接続済みクライアントを返す。
func (f *Factory) Post() (*PostClient, error) {
	c, err := f.dial(ServicePost)
	if err != nil {
		return nil, err
	}
	return &PostClient{client: *c}, nil
}

// Like はいいねサービスへの接続済みクライアントを返す。
func (f *Factory) Like() (*LikeClient, error) {
	c, err := f.dial(ServiceLike)
	if err != nil {
		return nil, err
	}
	return &LikeClient{client: *c}, nil
}

// dial はserviceのレプリカを1つ選択して新しい接続を開く。
// レジストリに接続先がないのはプログラミングエラー（検証漏れ）なのでpanicする。
// 接続失敗は接続性エラーとして呼び出し側へ返す。
func (f *Factory) dial(service Service) (*client, error) {
	endpoints := f.registry[service]
	if len(endpoints) == 0 {
		panic(fmt.Sprintf("backend: no endpoints registered for service %q", service))
	}

	ep := f.selector.Pick(endpoints)
	conn, err := rpc.Dial(ep.Addr(), f.timeout)
	if err != nil {
		return nil, fmt.Errorf("backend: connect to %s service at %s: %w", service, ep.Addr(), err)
	}

	return &client{
		service:  service,
		conn:     conn,
		logger:   f.logger,
		recorder: f.recorder,
	}, nil
}
