package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/galaga/pkg/types"
)

// FormationConfig 编队模拟的可调参数
//
// 各轮原型之间不同的常量（呼吸周期、入场步进间隔、滑行步长等）统一收敛到这里，
// 默认值见 DefaultFormationConfig
type FormationConfig struct {
	Grid      GridConfig      `yaml:"grid"`      // 编队网格呼吸动画
	Entrance  EntranceConfig  `yaml:"entrance"`  // 入场曲线
	Glide     GlideConfig     `yaml:"glide"`     // 滑入编队
	Allocator AllocatorConfig `yaml:"allocator"` // 编队位置分配
	Timing    TimingConfig    `yaml:"timing"`    // 逻辑帧/渲染帧速率
	Explosion ExplosionConfig `yaml:"explosion"` // 爆炸特效
	Waves     []WaveEntry     `yaml:"waves"`     // 出生表
	Seed      int64           `yaml:"seed"`      // 随机种子，0 表示按启动时间取种
}

// GridConfig 编队网格间距随时间正弦振荡
//
// spacing = BaseSpacing + Amplitude * sin(2π * (tick mod Period) / Period)
type GridConfig struct {
	BaseSpacing float64 `yaml:"baseSpacing"` // 基础格距（像素）
	Amplitude   float64 `yaml:"amplitude"`   // 振幅（像素）
	Period      uint64  `yaml:"period"`      // 周期（逻辑帧）
}

// EntranceConfig 入场曲线参数
type EntranceConfig struct {
	// StepInterval 每隔多少逻辑帧推进一次入场曲线（1 表示每帧推进）
	StepInterval uint64 `yaml:"stepInterval"`
	// BottomSlowRate 下方入场前四分之一圈的转向速率（弧度/步）
	BottomSlowRate float64 `yaml:"bottomSlowRate"`
	// TopSlowRate 上方入场前八分之一圈的转向速率（弧度/步）
	TopSlowRate float64 `yaml:"topSlowRate"`
	// FastRate 绕圈阶段的转向速率（弧度/步）
	FastRate float64 `yaml:"fastRate"`
}

// GlideConfig 滑入编队参数
type GlideConfig struct {
	Step float64 `yaml:"step"` // 每帧纵向移动距离（像素）
}

// AllocatorConfig 编队位置分配参数
type AllocatorConfig struct {
	// MaxAttempts 随机重试上限，超过后改为顺序扫描空位
	MaxAttempts int `yaml:"maxAttempts"`
}

// TimingConfig 逻辑帧与渲染帧速率
type TimingConfig struct {
	TicksPerSecond  int `yaml:"ticksPerSecond"`  // 每秒逻辑帧数
	FramesPerSecond int `yaml:"framesPerSecond"` // 每秒渲染帧数（终端前端使用）
}

// ExplosionConfig 爆炸特效参数
type ExplosionConfig struct {
	Enabled       bool    `yaml:"enabled"`       // 启动时是否播放一次爆炸
	CenterX       float64 `yaml:"centerX"`       // 爆炸中心 X
	CenterY       float64 `yaml:"centerY"`       // 爆炸中心 Y
	MaxRadius     float64 `yaml:"maxRadius"`     // 最大半径
	GrowthPerTick float64 `yaml:"growthPerTick"` // 每帧半径增长
	PointsPerRing int     `yaml:"pointsPerRing"` // 每圈噪点数量
	PointSize     float64 `yaml:"pointSize"`     // 噪点边长
}

// WaveEntry 出生表中的一条记录
type WaveEntry struct {
	Class     string `yaml:"class"`     // bee / butterfly / boss
	Edge      string `yaml:"edge"`      // top / bottom
	Lane      string `yaml:"lane"`      // left / right / center_left / center_right
	SpawnTick uint64 `yaml:"spawnTick"` // 出生的逻辑帧
}

// Resolve 将配置字符串解析为类型值
func (w WaveEntry) Resolve() (types.EnemyClass, types.EntryEdge, types.Lane, error) {
	class := types.EnemyClassFromString(w.Class)
	if class == types.EnemyUnknown {
		return class, 0, 0, fmt.Errorf("unknown enemy class %q", w.Class)
	}
	edge, ok := types.EntryEdgeFromString(w.Edge)
	if !ok {
		return class, edge, 0, fmt.Errorf("unknown entry edge %q", w.Edge)
	}
	lane, ok := types.LaneFromString(w.Lane)
	if !ok {
		return class, edge, lane, fmt.Errorf("unknown lane %q", w.Lane)
	}
	if !types.IsSupportedEntry(edge, lane) {
		return class, edge, lane, fmt.Errorf("unsupported entry %s/%s", w.Edge, w.Lane)
	}
	return class, edge, lane, nil
}

// DefaultFormationConfig 返回默认配置
//
// 出生表与最后一版原型一致：两只蜜蜂分别从右下、左下同时入场
func DefaultFormationConfig() *FormationConfig {
	return &FormationConfig{
		Grid: GridConfig{
			BaseSpacing: 50,
			Amplitude:   4,
			Period:      30000,
		},
		Entrance: EntranceConfig{
			StepInterval:   1,
			BottomSlowRate: 0.003,
			TopSlowRate:    0.002,
			FastRate:       0.016,
		},
		Glide: GlideConfig{
			Step: 1,
		},
		Allocator: AllocatorConfig{
			MaxAttempts: 256,
		},
		Timing: TimingConfig{
			TicksPerSecond:  60,
			FramesPerSecond: 60,
		},
		Explosion: ExplosionConfig{
			Enabled:       true,
			CenterX:       400,
			CenterY:       400,
			MaxRadius:     55,
			GrowthPerTick: 0.9,
			PointsPerRing: 2,
			PointSize:     3,
		},
		Waves: []WaveEntry{
			{Class: "bee", Edge: "bottom", Lane: "right", SpawnTick: 0},
			{Class: "bee", Edge: "bottom", Lane: "left", SpawnTick: 0},
		},
	}
}

// LoadFormationConfig 从 YAML 文件加载编队配置
// 文件中缺省的字段沿用默认值
func LoadFormationConfig(filePath string) (*FormationConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read formation config file: %w", err)
	}
	return ParseFormationConfig(data)
}

// ParseFormationConfig 从 YAML 数据解析编队配置（用于嵌入资源）
func ParseFormationConfig(data []byte) (*FormationConfig, error) {
	config := DefaultFormationConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse formation config YAML: %w", err)
	}

	if err := validateFormationConfig(config); err != nil {
		return nil, fmt.Errorf("invalid formation config: %w", err)
	}

	return config, nil
}

// Validate 校验配置（供代码构造的配置使用）
func (c *FormationConfig) Validate() error {
	return validateFormationConfig(c)
}

// validateFormationConfig 验证配置的有效性
func validateFormationConfig(config *FormationConfig) error {
	// 验证网格参数
	if config.Grid.BaseSpacing <= EnemySize {
		return fmt.Errorf("grid.baseSpacing must be > %d, got %.2f", EnemySize, config.Grid.BaseSpacing)
	}
	if config.Grid.Amplitude < 0 || config.Grid.Amplitude >= config.Grid.BaseSpacing-EnemySize {
		return fmt.Errorf("grid.amplitude must be in [0, %.2f), got %.2f",
			config.Grid.BaseSpacing-EnemySize, config.Grid.Amplitude)
	}
	if config.Grid.Period == 0 {
		return fmt.Errorf("grid.period must be > 0")
	}

	// 验证入场参数
	if config.Entrance.StepInterval == 0 {
		return fmt.Errorf("entrance.stepInterval must be >= 1")
	}
	if config.Entrance.BottomSlowRate <= 0 || config.Entrance.TopSlowRate <= 0 || config.Entrance.FastRate <= 0 {
		return fmt.Errorf("entrance turn rates must be > 0, got bottom=%.4f top=%.4f fast=%.4f",
			config.Entrance.BottomSlowRate, config.Entrance.TopSlowRate, config.Entrance.FastRate)
	}

	// 验证滑行与分配参数
	if config.Glide.Step <= 0 {
		return fmt.Errorf("glide.step must be > 0, got %.4f", config.Glide.Step)
	}
	if config.Allocator.MaxAttempts < 1 {
		return fmt.Errorf("allocator.maxAttempts must be >= 1, got %d", config.Allocator.MaxAttempts)
	}

	// 验证速率
	if config.Timing.TicksPerSecond < 1 {
		return fmt.Errorf("timing.ticksPerSecond must be >= 1, got %d", config.Timing.TicksPerSecond)
	}
	if config.Timing.FramesPerSecond < 1 || config.Timing.FramesPerSecond > config.Timing.TicksPerSecond {
		return fmt.Errorf("timing.framesPerSecond must be in [1, %d], got %d",
			config.Timing.TicksPerSecond, config.Timing.FramesPerSecond)
	}

	// 验证爆炸参数（仅在启用时）
	if config.Explosion.Enabled {
		if config.Explosion.MaxRadius <= 0 || config.Explosion.GrowthPerTick <= 0 {
			return fmt.Errorf("explosion.maxRadius and explosion.growthPerTick must be > 0")
		}
		if config.Explosion.PointsPerRing < 1 {
			return fmt.Errorf("explosion.pointsPerRing must be >= 1, got %d", config.Explosion.PointsPerRing)
		}
	}

	// 验证出生表
	for i, w := range config.Waves {
		if _, _, _, err := w.Resolve(); err != nil {
			return fmt.Errorf("waves[%d]: %w", i, err)
		}
	}

	return nil
}
