// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はゲートウェイのPrometheusメトリクスを収集する。
type Collector struct {
	rpcCalls    *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	httpStatus  *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		rpcCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "buzzgate_rpc_calls_total",
			Help: "バックエンドRPC呼び出しの合計数（結果別）",
		}, []string{"service", "function", "outcome"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "buzzgate_rpc_call_duration_seconds",
			Help:    "バックエンドRPC呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "function"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "buzzgate_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.rpcCalls,
		c.rpcDuration,
		c.httpStatus,
	)

	return c
}

// RecordRPCCall はバックエンドRPC呼び出し1回の結果とレイテンシを記録する。
// backend.CallRecorderを実装する。
func (c *Collector) RecordRPCCall(service, function, outcome string, elapsed time.Duration) {
	c.rpcCalls.WithLabelValues(service, function, outcome).Inc()
	c.rpcDuration.WithLabelValues(service, function).Observe(elapsed.Seconds())
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
