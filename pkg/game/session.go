package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/entities"
	"github.com/decker502/galaga/pkg/systems"
	"github.com/decker502/galaga/pkg/types"
)

// EnemySnapshot 单架敌机在本帧结束时的只读快照（供渲染前端使用）
type EnemySnapshot struct {
	ID        int
	Class     types.EnemyClass
	State     types.EnemyState
	X, Y      float64
	SlotIndex int // 未分配时为 -1
}

// Session 一局模拟
//
// 持有实体管理器、编队网格和所有系统，由宿主循环每个逻辑帧调用一次 Tick。
// 单线程：一帧内先刷新网格几何，再按编号顺序推进所有敌机，最后推进特效
type Session struct {
	config        *config.FormationConfig
	entityManager *ecs.EntityManager

	gridSystem      *systems.FormationGridSystem
	enemySystem     *systems.EnemySystem
	waveSystem      *systems.WaveSystem
	explosionSystem *systems.ExplosionSystem

	tick uint64
}

// NewSession 按配置创建一局模拟
//
// 参数:
//   - cfg: 编队配置（会先校验）
//
// 返回:
//   - *Session: 新的模拟，tick 从 0 开始
//   - error: 配置无效
func NewSession(cfg *config.FormationConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid formation config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("[Session] Random seed: %d", seed)

	em := ecs.NewEntityManager()
	gridSystem := systems.NewFormationGridSystem(em, cfg.Grid)
	entranceSystem := systems.NewEntranceSystem(cfg.Entrance)
	allocator := systems.NewSlotAllocator(rng, cfg.Allocator.MaxAttempts)
	glideSystem := systems.NewGlideSystem(gridSystem, cfg.Glide.Step)

	waveSystem, err := systems.NewWaveSystem(cfg.Waves)
	if err != nil {
		return nil, err
	}

	s := &Session{
		config:          cfg,
		entityManager:   em,
		gridSystem:      gridSystem,
		enemySystem:     systems.NewEnemySystem(em, gridSystem, entranceSystem, allocator, glideSystem),
		waveSystem:      waveSystem,
		explosionSystem: systems.NewExplosionSystem(em, rng),
	}

	if cfg.Explosion.Enabled {
		s.explosionSystem.Spawn(cfg.Explosion)
	}

	return s, nil
}

// Tick 推进一个逻辑帧
func (s *Session) Tick() error {
	s.gridSystem.UpdateGeometry(s.tick)

	for _, req := range s.waveSystem.Update(s.tick) {
		if _, err := s.SpawnEnemy(req.Class, req.Edge, req.Lane); err != nil {
			return fmt.Errorf("tick %d: %w", s.tick, err)
		}
	}

	if err := s.enemySystem.Update(s.tick); err != nil {
		return fmt.Errorf("tick %d: %w", s.tick, err)
	}

	s.explosionSystem.Update()
	s.entityManager.RemoveMarkedEntities()

	s.tick++
	return nil
}

// CurrentTick 返回下一次 Tick 将要处理的逻辑帧
func (s *Session) CurrentTick() uint64 {
	return s.tick
}

// Config 返回本局配置
func (s *Session) Config() *config.FormationConfig {
	return s.config
}

// EntityManager 返回实体管理器（渲染系统只读使用）
func (s *Session) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Grid 返回编队网格系统
func (s *Session) Grid() *systems.FormationGridSystem {
	return s.gridSystem
}

// SpawnEnemy 立即生成一架敌机，编号取当前未被使用的最小值
//
// 返回:
//   - 敌机编号
//   - error: 入场组合不受支持或种类未知
func (s *Session) SpawnEnemy(class types.EnemyClass, edge types.EntryEdge, lane types.Lane) (int, error) {
	id := s.nextEnemyID()
	if _, err := entities.NewEnemyEntity(s.entityManager, id, class, edge, lane); err != nil {
		return -1, err
	}
	return id, nil
}

// RemoveEnemy 移除敌机并释放其编队格子
func (s *Session) RemoveEnemy(id int) error {
	entity, enemy, ok := s.findEnemy(id)
	if !ok {
		return fmt.Errorf("enemy %d not found", id)
	}

	if enemy.HasSlot() {
		if err := s.gridSystem.Release(enemy.SlotIndex); err != nil {
			return fmt.Errorf("release slot of enemy %d: %w", id, err)
		}
	}

	s.enemySystem.Forget(entity)
	s.entityManager.DestroyEntity(entity)
	s.entityManager.RemoveMarkedEntities()
	log.Printf("[Session] Removed enemy %d (slot %d)", id, enemy.SlotIndex)
	return nil
}

// Enemies 返回所有敌机的快照，按编号升序
func (s *Session) Enemies() []EnemySnapshot {
	ordered := s.enemySystem.OrderedEnemies()
	result := make([]EnemySnapshot, 0, len(ordered))
	for _, entity := range ordered {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, entity)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entity)
		result = append(result, EnemySnapshot{
			ID:        enemy.ID,
			Class:     enemy.Class,
			State:     enemy.State,
			X:         pos.X,
			Y:         pos.Y,
			SlotIndex: enemy.SlotIndex,
		})
	}
	return result
}

// StateCounts 统计各状态的敌机数量
func (s *Session) StateCounts() map[types.EnemyState]int {
	return systems.CountEnemyStates(s.entityManager)
}

// Explosions 返回仍在播放的爆炸
func (s *Session) Explosions() []*components.ExplosionComponent {
	list := ecs.GetEntitiesWith1[*components.ExplosionComponent](s.entityManager)
	result := make([]*components.ExplosionComponent, 0, len(list))
	for _, entity := range list {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, entity)
		if !explosion.Finished {
			result = append(result, explosion)
		}
	}
	return result
}

// nextEnemyID 返回当前未被使用的最小敌机编号
func (s *Session) nextEnemyID() int {
	used := make(map[int]bool)
	for _, entity := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, entity)
		used[enemy.ID] = true
	}
	id := 0
	for used[id] {
		id++
	}
	return id
}

// findEnemy 按编号查找敌机
func (s *Session) findEnemy(id int) (ecs.EntityID, *components.EnemyComponent, bool) {
	for _, entity := range ecs.GetEntitiesWith1[*components.EnemyComponent](s.entityManager) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.entityManager, entity)
		if enemy.ID == id {
			return entity, enemy, true
		}
	}
	return 0, nil, false
}
