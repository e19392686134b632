// Package backend はバックエンドサービスへの計測付きクライアントと、
// レプリカ選択を行うクライアントファクトリを提供する。
package backend

import (
	"fmt"
	"net"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Service はバックエンドサービスの名前。
type Service string

// ゲートウェイが認識する4つのサービス
const (
	ServiceAccount Service = "account"
	ServiceFollow  Service = "follow"
	ServiceLike    Service = "like"
	ServicePost    Service = "post"
)

// KnownServices は既知のサービス名一覧を返す。
func KnownServices() []Service {
	return []Service{ServiceAccount, ServiceFollow, ServiceLike, ServicePost}
}

// Endpoint はサービスの1レプリカの接続先。
type Endpoint struct {
	Host string
	Port int
}

// Addr はhost:port形式の接続先文字列を返す。
func (e Endpoint) Addr() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// ParseEndpoint は"host:port"形式の文字列をEndpointに変換する。
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Endpoint{}, fmt.Errorf("backend: invalid endpoint %q: %w", s, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return Endpoint{}, fmt.Errorf("backend: invalid port in endpoint %q", s)
	}
	return Endpoint{Host: host, Port: port}, nil
}

// Registry はサービス名からレプリカ接続先一覧へのマッピング。
// プロセス起動時に1回読み込み、以後は読み取り専用として扱う。
type Registry map[Service][]Endpoint

// Validate は既知の全サービスに1つ以上の接続先が登録されていることを検証する。
func (r Registry) Validate() error {
	var missing []string
	for _, svc := range KnownServices() {
		if len(r[svc]) == 0 {
			missing = append(missing, string(svc))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("backend: no endpoints registered for services: %v", missing)
	}
	return nil
}

// registryFile はバックエンド設定YAMLのスキーマ。
// 各サービス名の下のserviceキーに"host:port"のリストを置く。
type registryFile map[string]struct {
	Service []string `yaml:"service"`
}

// LoadRegistry はYAMLファイルからRegistryを読み込んで検証する。
// 未知のサービス名のエントリは設定ミスとしてエラーにする。
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("backend: read registry file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("backend: parse registry file %s: %w", path, err)
	}

	known := make(map[Service]bool)
	for _, svc := range KnownServices() {
		known[svc] = true
	}

	registry := make(Registry)
	for name, entry := range file {
		svc := Service(name)
		if !known[svc] {
			return nil, fmt.Errorf("backend: unknown service %q in registry file %s", name, path)
		}
		for _, raw := range entry.Service {
			ep, err := ParseEndpoint(raw)
			if err != nil {
				return nil, err
			}
			registry[svc] = append(registry[svc], ep)
		}
	}

	if err := registry.Validate(); err != nil {
		return nil, err
	}
	return registry, nil
}
