package backend

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/buzzgate/internal/model"
	"github.com/hitoshi/buzzgate/internal/rpc"
)

// CallRecorder は呼び出しメトリクスの記録先インターフェース。
// metrics.Collectorが実装する。nilの場合は記録しない。
type CallRecorder interface {
	RecordRPCCall(service, function, outcome string, elapsed time.Duration)
}

// client は全サービスクライアント共通の接続・計測部分。
// 1インスタンスが1レプリカへの接続を1本所有し、利用スコープの終端でCloseする。
type client struct {
	service  Service
	conn     *rpc.Conn
	logger   *slog.Logger
	recorder CallRecorder
}

// call はリモート操作を1回実行し、成否にかかわらず呼び出しログを1行出力する。
// latencyは秒単位・小数9桁で記録する。
func (c *client) call(ctx rpc.Context, function string, params, result any) error {
	callID := uuid.NewString()
	start := time.Now()
	err := c.conn.Call(ctx, function, params, result)
	elapsed := time.Since(start)

	c.logger.Info("rpc_call",
		slog.String("request_id", ctx.RequestID),
		slog.String("server", c.conn.Addr()),
		slog.String("function", string(c.service)+":"+function),
		slog.String("latency", strconv.FormatFloat(elapsed.Seconds(), 'f', 9, 64)),
		slog.String("call_id", callID),
	)

	if c.recorder != nil {
		c.recorder.RecordRPCCall(string(c.service), function, callOutcome(err), elapsed)
	}
	return err
}

// Close はクライアントが所有する接続を閉じる。
func (c *client) Close() error {
	return c.conn.Close()
}

// Addr は接続先レプリカのhost:portを返す。
func (c *client) Addr() string {
	return c.conn.Addr()
}

// callOutcome はメトリクスのoutcomeラベル値を決める。
// 宣言済み条件は条件名、トランスポート障害は"transport_error"になる。
func callOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	if c, ok := model.ConditionOf(err); ok {
		return string(c)
	}
	return "transport_error"
}
