package systems

import (
	"log"
	"math"
	"math/rand"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
)

// ExplosionSystem 粒子式爆炸特效
//
// 每帧对半径以内的每一圈（半径 0, 1, 2, ...）按随机角度撒噪点，
// 然后半径增长；颜色随半径在白/红之间闪烁。达到最大半径后销毁实体
type ExplosionSystem struct {
	entityManager *ecs.EntityManager
	rng           *rand.Rand
}

// NewExplosionSystem 创建爆炸特效系统
func NewExplosionSystem(em *ecs.EntityManager, rng *rand.Rand) *ExplosionSystem {
	return &ExplosionSystem{
		entityManager: em,
		rng:           rng,
	}
}

// Spawn 按配置创建一个爆炸实体
func (s *ExplosionSystem) Spawn(cfg config.ExplosionConfig) ecs.EntityID {
	entity := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, entity, &components.ExplosionComponent{
		CenterX:       cfg.CenterX,
		CenterY:       cfg.CenterY,
		MaxRadius:     cfg.MaxRadius,
		GrowthPerTick: cfg.GrowthPerTick,
		PointsPerRing: cfg.PointsPerRing,
		PointSize:     cfg.PointSize,
	})
	log.Printf("[ExplosionSystem] Spawned explosion %d at (%.0f, %.0f)", entity, cfg.CenterX, cfg.CenterY)
	return entity
}

// Update 推进所有爆炸一帧
func (s *ExplosionSystem) Update() {
	for _, entity := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.entityManager) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, entity)
		if explosion.Finished {
			continue
		}

		if explosion.Radius >= explosion.MaxRadius {
			explosion.Finished = true
			explosion.Points = explosion.Points[:0]
			s.entityManager.DestroyEntity(entity)
			continue
		}

		explosion.Flash = int(explosion.Radius)%4 == 0
		explosion.Points = explosion.Points[:0]
		for ring := 0; float64(ring) < explosion.Radius; ring++ {
			for p := 0; p < explosion.PointsPerRing; p++ {
				angle := s.rng.Float64() * 2 * math.Pi
				explosion.Points = append(explosion.Points, components.ExplosionPoint{
					X: math.Sin(angle)*float64(ring) + explosion.CenterX,
					Y: math.Cos(angle)*float64(ring) + explosion.CenterY,
				})
			}
		}

		explosion.Radius += explosion.GrowthPerTick
	}
}
