package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/game"
	"github.com/decker502/galaga/pkg/systems"
)

// sceneCommand 键盘触发的场景操作
type sceneCommand int

const (
	cmdToggleGrid sceneCommand = iota
	cmdToggleCenterLine
	cmdToggleHUD
	cmdTogglePause
	cmdStepOnce
	cmdRestart
)

// keyBindings 按键到场景操作的映射
var keyBindings = []struct {
	key ebiten.Key
	cmd sceneCommand
}{
	{ebiten.KeyG, cmdToggleGrid},
	{ebiten.KeyC, cmdToggleCenterLine},
	{ebiten.KeyH, cmdToggleHUD},
	{ebiten.KeyP, cmdTogglePause},
	{ebiten.KeySpace, cmdTogglePause},
	{ebiten.KeyN, cmdStepOnce},
	{ebiten.KeyR, cmdRestart},
}

// GameScene 编队演示场景
//
// 每个 ebiten Update 推进一次模拟，Draw 交给 RenderSystem。
// 按键：
//   - G / C / H: 切换网格轮廓 / 中线 / 状态文字
//   - P 或空格: 暂停；暂停时 N 单步推进
//   - R: 用同一份配置重新开始
type GameScene struct {
	formationConfig *config.FormationConfig
	settings        *game.SettingsManager

	session      *game.Session
	renderSystem *systems.RenderSystem

	paused   bool
	stepOnce bool
}

// NewGameScene 创建编队演示场景
//
// 参数:
//   - cfg: 编队配置
//   - settings: 显示设置（读取叠加层开关，切换后在退出时保存）
//
// 返回:
//   - error: 配置无效
func NewGameScene(cfg *config.FormationConfig, settings *game.SettingsManager) (*GameScene, error) {
	s := &GameScene{
		formationConfig: cfg,
		settings:        settings,
	}
	if err := s.restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// restart 丢弃当前模拟并重新开始
func (s *GameScene) restart() error {
	session, err := game.NewSession(s.formationConfig)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	s.session = session
	s.renderSystem = systems.NewRenderSystem(session.EntityManager(), session.Grid())
	log.Printf("[GameScene] Session started with %d scheduled spawns", len(s.formationConfig.Waves))
	return nil
}

// Session 返回当前模拟
func (s *GameScene) Session() *game.Session {
	return s.session
}

// Update 处理按键并推进一个逻辑帧
func (s *GameScene) Update(deltaTime float64) error {
	for _, binding := range keyBindings {
		if inpututil.IsKeyJustPressed(binding.key) {
			if err := s.apply(binding.cmd); err != nil {
				return err
			}
		}
	}
	return s.advance()
}

// apply 执行一条场景操作
func (s *GameScene) apply(cmd sceneCommand) error {
	switch cmd {
	case cmdToggleGrid:
		log.Printf("[GameScene] Grid overlay: %v", s.settings.ToggleGrid())
	case cmdToggleCenterLine:
		log.Printf("[GameScene] Center line: %v", s.settings.ToggleCenterLine())
	case cmdToggleHUD:
		log.Printf("[GameScene] HUD: %v", s.settings.ToggleHUD())
	case cmdTogglePause:
		s.paused = !s.paused
		log.Printf("[GameScene] Paused: %v (tick %d)", s.paused, s.session.CurrentTick())
	case cmdStepOnce:
		if s.paused {
			s.stepOnce = true
		}
	case cmdRestart:
		return s.restart()
	}
	return nil
}

// advance 未暂停（或请求单步）时推进模拟
func (s *GameScene) advance() error {
	if s.paused && !s.stepOnce {
		return nil
	}
	s.stepOnce = false
	if err := s.session.Tick(); err != nil {
		return fmt.Errorf("simulation stopped: %w", err)
	}
	return nil
}

// Draw 绘制当前模拟状态
func (s *GameScene) Draw(screen *ebiten.Image) {
	settings := s.settings.GetSettings()
	s.renderSystem.Draw(screen, systems.RenderOptions{
		ShowGrid:       settings.ShowGrid,
		ShowCenterLine: settings.ShowCenterLine,
		ShowHUD:        settings.ShowHUD,
	})
}

// SaveOnExit 保存显示设置
func (s *GameScene) SaveOnExit() bool {
	if err := s.settings.Save(); err != nil {
		log.Printf("[GameScene] Failed to save settings: %v", err)
		return false
	}
	return true
}
