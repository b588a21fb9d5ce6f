// Package app 提供编队演示程序的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：加载编队配置、打开设置存储、创建场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/embedded"
	"github.com/decker502/galaga/pkg/game"
	"github.com/decker502/galaga/pkg/scenes"
)

// DefaultFormationPath 嵌入的默认编队配置
const DefaultFormationPath = "data/formation.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 编队配置文件路径，为空则使用嵌入的默认配置
	ConfigPath string
	// Seed 非 0 时覆盖配置中的随机种子
	Seed int64
}

// App 是应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	formationConfig *config.FormationConfig
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用嵌入配置前，必须先调用 embedded.Init()
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	formationConfig, err := LoadFormationConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.Seed != 0 {
		formationConfig.Seed = cfg.Seed
	}

	// 设置存储打不开时退化为仅内存设置
	gdataManager, err := gdata.Open(gdata.Config{AppName: "galaga_formation"})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		gdataManager = nil
	}
	settingsManager := game.NewSettingsManager(gdataManager)

	gameScene, err := scenes.NewGameScene(formationConfig, settingsManager)
	if err != nil {
		return nil, err
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(gameScene)

	ebiten.SetTPS(formationConfig.Timing.TicksPerSecond)
	ebiten.SetFullscreen(settingsManager.GetSettings().Fullscreen)
	log.Printf("[App] Running at %d ticks per second", formationConfig.Timing.TicksPerSecond)

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		formationConfig: formationConfig,
		verbose:         cfg.Verbose,
	}, nil
}

// LoadFormationConfig 加载编队配置
// path 为空时读取嵌入的 data/formation.yaml
func LoadFormationConfig(path string) (*config.FormationConfig, error) {
	if path != "" {
		cfg, err := config.LoadFormationConfig(path)
		if err != nil {
			return nil, fmt.Errorf("编队配置加载失败: %w", err)
		}
		log.Printf("[Config] Loaded formation config from %s", path)
		return cfg, nil
	}

	data, err := embedded.ReadFile(DefaultFormationPath)
	if err != nil {
		return nil, fmt.Errorf("嵌入配置读取失败: %w", err)
	}
	cfg, err := config.ParseFormationConfig(data)
	if err != nil {
		return nil, fmt.Errorf("嵌入配置解析失败: %w", err)
	}
	log.Printf("[Config] Loaded embedded formation config (%d waves)", len(cfg.Waves))
	return cfg, nil
}

// Update 更新逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 窗口关闭前保存设置（需要 ebiten.SetWindowClosingHandled(true)）
	if ebiten.IsWindowBeingClosed() {
		if !a.sceneManager.SaveOnExit() {
			log.Printf("[App] Settings were not saved on exit")
		}
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏，并记录到设置中
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			a.settingsManager.SetFullscreen(false)
		} else {
			ebiten.SetFullscreen(true)
			a.settingsManager.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / float64(a.formationConfig.Timing.TicksPerSecond)
	return a.sceneManager.Update(deltaTime)
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧留黑
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// GetSceneManager 返回场景管理器
// 用于在窗口关闭时保存设置
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
