package rpc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/hitoshi/buzzgate/internal/model"
)

// statusOK は成功応答のステータス値。それ以外のステータスは宣言済み条件名。
const statusOK = "ok"

// request はワイヤ上のリクエストエンベロープ。
type request struct {
	Context Context `json:"context"`
	Method  string  `json:"method"`
	Params  any     `json:"params,omitempty"`
}

// response はワイヤ上のレスポンスエンベロープ。
type response struct {
	Status string          `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Conn はバックエンドの1レプリカへのワイヤ接続。
// 接続は呼び出しスコープ単位で開閉し、複数リクエスト間で共有しない。
type Conn struct {
	conn    net.Conn
	enc     *json.Encoder
	dec     *json.Decoder
	addr    string
	timeout time.Duration
}

// Dial はaddr（host:port）へTCP接続を開く。
// timeoutは接続・読み取り・書き込みすべてに適用される。
func Dial(addr string, timeout time.Duration) (*Conn, error) {
	c, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("rpc: dial %s: %w", addr, err)
	}
	return &Conn{
		conn:    c,
		enc:     json.NewEncoder(c),
		dec:     json.NewDecoder(c),
		addr:    addr,
		timeout: timeout,
	}, nil
}

// Addr は接続先のhost:portを返す。
func (c *Conn) Addr() string {
	return c.addr
}

// Close は接続を閉じる。多重クローズは下層のnet.Connの挙動に従う。
func (c *Conn) Close() error {
	return c.conn.Close()
}

// Call は1回のリモート操作を実行する。
// バックエンドが宣言済み条件を返した場合は*model.BackendErrorを返し、
// トランスポート障害・タイムアウトは通常のerrorとして返す。
// resultがnilでなく成功応答に結果が含まれる場合、resultへデコードする。
func (c *Conn) Call(ctx Context, method string, params, result any) error {
	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return fmt.Errorf("rpc: set deadline for %s: %w", c.addr, err)
	}

	if err := c.enc.Encode(request{Context: ctx, Method: method, Params: params}); err != nil {
		return fmt.Errorf("rpc: write %s to %s: %w", method, c.addr, err)
	}

	var resp response
	if err := c.dec.Decode(&resp); err != nil {
		return fmt.Errorf("rpc: read %s from %s: %w", method, c.addr, err)
	}

	if resp.Status != statusOK {
		return &model.BackendError{Function: method, Condition: model.Condition(resp.Status)}
	}

	if result != nil && len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("rpc: decode %s result from %s: %w", method, c.addr, err)
		}
	}
	return nil
}
