package backend

import (
	"math/rand"
	"sync"
)

// EndpointSelector はレプリカ群から呼び出し先を1つ選択する戦略。
// 選択は呼び出しごとに独立で、リクエストをまたぐ固定化（セッションアフィニティ）はしない。
// ラウンドロビンやヘルス考慮型への差し替えは呼び出し側を変えずに行える。
type EndpointSelector interface {
	Pick(endpoints []Endpoint) Endpoint
}

// randomSelector は一様ランダム選択を行うデフォルトの戦略。
type randomSelector struct{}

// NewRandomSelector は一様ランダム選択のEndpointSelectorを返す。
func NewRandomSelector() EndpointSelector {
	return randomSelector{}
}

// Pick はendpointsから一様ランダムに1つ選ぶ。endpointsが空の場合はpanicする
// （レジストリ検証済みであることが呼び出し側の前提）。
func (randomSelector) Pick(endpoints []Endpoint) Endpoint {
	return endpoints[rand.Intn(len(endpoints))]
}

// RoundRobinSelector は呼び出しごとに順繰りに選択する戦略。
// ベンチマークや決定的なテストでランダム選択の代わりに使う。
type RoundRobinSelector struct {
	mu   sync.Mutex
	next int
}

// NewRoundRobinSelector はラウンドロビン選択のEndpointSelectorを返す。
func NewRoundRobinSelector() *RoundRobinSelector {
	return &RoundRobinSelector{}
}

// Pick はendpointsを順繰りに返す。
func (s *RoundRobinSelector) Pick(endpoints []Endpoint) Endpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	ep := endpoints[s.next%len(endpoints)]
	s.next++
	return ep
}
