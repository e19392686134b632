package backend

import (
	"encoding/json"
	"net"
	"sync/atomic"
	"testing"
)

// wireRequest はテスト用バックエンドが受信するエンベロープ。
type wireRequest struct {
	Context struct {
		RequestID   string `json:"request_id"`
		RequesterID *int64 `json:"requester_id"`
	} `json:"context"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// wireResponse はテスト用バックエンドが返すエンベロープ。
type wireResponse struct {
	Status string `json:"status"`
	Result any    `json:"result,omitempty"`
}

// testBackend はワイヤプロトコルを話すインプロセスのフェイクバックエンド。
type testBackend struct {
	addr      string
	calls     atomic.Int64
	handlerFn func(req wireRequest) wireResponse
}

// startTestBackend はメソッドディスパッチ付きのフェイクバックエンドを起動する。
func startTestBackend(t *testing.T, handler func(req wireRequest) wireResponse) *testBackend {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	b := &testBackend{addr: ln.Addr().String(), handlerFn: handler}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(c net.Conn) {
				defer c.Close()
				dec := json.NewDecoder(c)
				enc := json.NewEncoder(c)
				for {
					var req wireRequest
					if err := dec.Decode(&req); err != nil {
						return
					}
					b.calls.Add(1)
					if err := enc.Encode(b.handlerFn(req)); err != nil {
						return
					}
				}
			}(conn)
		}
	}()

	return b
}

// Endpoint はこのバックエンドの接続先を返す。
func (b *testBackend) Endpoint(t *testing.T) Endpoint {
	t.Helper()
	ep, err := ParseEndpoint(b.addr)
	if err != nil {
		t.Fatalf("failed to parse test backend addr: %v", err)
	}
	return ep
}

// Calls は受信した呼び出し数を返す。
func (b *testBackend) Calls() int64 {
	return b.calls.Load()
}

// okBackend は常に成功応答でresultを返すフェイクバックエンドを起動する。
func okBackend(t *testing.T, result any) *testBackend {
	t.Helper()
	return startTestBackend(t, func(req wireRequest) wireResponse {
		return wireResponse{Status: "ok", Result: result}
	})
}

// singleRegistry は1サービスだけ登録したRegistryを作るテストヘルパー。
func singleRegistry(svc Service, eps ...Endpoint) Registry {
	return Registry{svc: eps}
}
