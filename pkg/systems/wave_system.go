package systems

import (
	"fmt"
	"log"
	"sort"

	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/types"
)

// SpawnRequest 一条到期的出生请求
type SpawnRequest struct {
	Class types.EnemyClass
	Edge  types.EntryEdge
	Lane  types.Lane
	Tick  uint64
}

// WaveSystem 按出生表发放出生请求
//
// 出生表按 SpawnTick 排序（同一帧保持配置中的先后顺序），
// 每帧把 SpawnTick <= tick 的记录依次取出
type WaveSystem struct {
	pending []SpawnRequest
	next    int
}

// NewWaveSystem 解析出生表并创建波次系统
//
// 返回:
//   - error: 出生表中有无法解析的记录
func NewWaveSystem(waves []config.WaveEntry) (*WaveSystem, error) {
	pending := make([]SpawnRequest, 0, len(waves))
	for i, w := range waves {
		class, edge, lane, err := w.Resolve()
		if err != nil {
			return nil, fmt.Errorf("waves[%d]: %w", i, err)
		}
		pending = append(pending, SpawnRequest{Class: class, Edge: edge, Lane: lane, Tick: w.SpawnTick})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Tick < pending[j].Tick
	})

	log.Printf("[WaveSystem] Loaded %d spawn entries", len(pending))
	return &WaveSystem{pending: pending}, nil
}

// Update 返回本帧到期的出生请求
func (s *WaveSystem) Update(tick uint64) []SpawnRequest {
	start := s.next
	for s.next < len(s.pending) && s.pending[s.next].Tick <= tick {
		s.next++
	}
	if start == s.next {
		return nil
	}
	return s.pending[start:s.next]
}

// Remaining 返回尚未发放的出生请求数量
func (s *WaveSystem) Remaining() int {
	return len(s.pending) - s.next
}
