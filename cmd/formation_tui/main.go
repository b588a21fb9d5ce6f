// formation_tui 在终端中运行编队演示
//
// 模拟按 timing.ticksPerSecond 推进，每 ticksPerSecond/framesPerSecond 帧重绘一次；
// 600x800 的逻辑画面按终端尺寸缩放到字符格。Esc、q 或 Ctrl-C 退出，g 切换网格。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/game"
	"github.com/decker502/galaga/pkg/systems"
	"github.com/decker502/galaga/pkg/types"
)

var (
	configPath = flag.String("config", "", "编队配置文件路径（默认使用内置默认值）")
	seed       = flag.Int64("seed", 0, "随机种子（0 表示使用配置中的种子）")
	logPath    = flag.String("log", "", "日志输出文件（终端被占用，默认丢弃日志）")
)

// 字符样式
var (
	styleDefault   = tcell.StyleDefault
	styleGrid      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOccupied  = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleEnemy     = tcell.StyleDefault.Foreground(tcell.ColorLightSteelBlue)
	styleFighter   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFlash     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSpark     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleCenterBar = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
)

// TUI 终端前端
type TUI struct {
	screen  tcell.Screen
	session *game.Session
	cfg     *config.FormationConfig

	width, height int
	showGrid      bool
}

// NewTUI 初始化终端并创建模拟
func NewTUI(cfg *config.FormationConfig) (*TUI, error) {
	session, err := game.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(styleDefault)
	screen.HideCursor()

	t := &TUI{
		screen:   screen,
		session:  session,
		cfg:      cfg,
		showGrid: true,
	}
	t.width, t.height = screen.Size()
	return t, nil
}

// run 主循环：逻辑帧由 ticker 驱动，按键由独立 goroutine 读取
func (t *TUI) run() error {
	ticker := time.NewTicker(time.Second / time.Duration(t.cfg.Timing.TicksPerSecond))
	defer ticker.Stop()

	framesPerDraw := uint64(max(t.cfg.Timing.TicksPerSecond/t.cfg.Timing.FramesPerSecond, 1))

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return nil
			}

		case <-ticker.C:
			if err := t.session.Tick(); err != nil {
				return err
			}
			if t.session.CurrentTick()%framesPerDraw == 0 {
				t.draw()
			}
		}
	}
}

// handleInput 处理按键，返回 false 表示退出
func (t *TUI) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'g':
				t.showGrid = !t.showGrid
			}
		}
	case *tcell.EventResize:
		t.width, t.height = t.screen.Size()
		t.screen.Sync()
	}
	return true
}

// toCell 逻辑坐标换算到字符格，最后一行留给状态文字
func (t *TUI) toCell(x, y float64) (int, int, bool) {
	rows := t.height - 1
	if t.width <= 0 || rows <= 0 {
		return 0, 0, false
	}
	cx := int(x * float64(t.width) / config.ScreenWidth)
	cy := int(y * float64(rows) / config.ScreenHeight)
	if cx < 0 || cx >= t.width || cy < 0 || cy >= rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// put 在逻辑坐标处写入一个字符（方块中心）
func (t *TUI) put(x, y float64, r rune, style tcell.Style) {
	if cx, cy, ok := t.toCell(x, y); ok {
		t.screen.SetContent(cx, cy, r, nil, style)
	}
}

// draw 重绘整个画面
func (t *TUI) draw() {
	t.screen.Clear()
	half := config.EnemySize / 2.0

	for row := 0; row < t.height-1; row++ {
		if cx, _, ok := t.toCell(config.ScreenWidth/2, 0); ok {
			t.screen.SetContent(cx, row, '│', nil, styleCenterBar)
		}
	}

	if t.showGrid {
		grid := t.session.Grid().Grid()
		for index := 0; index < config.FormationSize; index++ {
			col, row := config.SlotCoords(index)
			x, y := systems.SlotPosition(grid, col, row)
			style := styleGrid
			if grid.Slots[index] == components.SlotOccupied {
				style = styleOccupied
			}
			t.put(x+half, y+half, '·', style)
		}
	}

	for _, explosion := range t.session.Explosions() {
		style := styleSpark
		if explosion.Flash {
			style = styleFlash
		}
		for _, p := range explosion.Points {
			t.put(p.X, p.Y, '.', style)
		}
	}

	t.put(config.FighterMargin+config.FighterWidth/2.0, config.ScreenHeight-config.FighterMargin-config.FighterHeight/2.0, 'A', styleFighter)

	for _, enemy := range t.session.Enemies() {
		t.put(enemy.X+half, enemy.Y+half, enemyGlyph(enemy), styleEnemy)
	}

	counts := t.session.StateCounts()
	hud := fmt.Sprintf("tick %d  entering %d  pending %d  gliding %d  formed %d  [g]rid [q]uit",
		t.session.CurrentTick(),
		counts[types.StateEntering], counts[types.StateSlotPending],
		counts[types.StateGliding], counts[types.StateInFormation])
	for i, r := range hud {
		if i >= t.width {
			break
		}
		t.screen.SetContent(i, t.height-1, r, nil, styleHUD)
	}

	t.screen.Show()
}

// enemyGlyph 敌机字符：编队中按种类，其余按状态
func enemyGlyph(enemy game.EnemySnapshot) rune {
	switch enemy.State {
	case types.StateEntering:
		return '@'
	case types.StateSlotPending:
		return '?'
	case types.StateGliding:
		return '*'
	}
	switch enemy.Class {
	case types.EnemyBoss:
		return 'W'
	case types.EnemyButterfly:
		return 'M'
	default:
		return 'V'
	}
}

func (t *TUI) cleanup() {
	t.screen.Fini()
}

func main() {
	flag.Parse()

	// 终端被 tcell 占用，日志默认丢弃
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法创建日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.DefaultFormationConfig()
	if *configPath != "" {
		loaded, err := config.LoadFormationConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	tui, err := NewTUI(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.run()
	tui.cleanup()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "模拟中止: %v\n", runErr)
		os.Exit(1)
	}
}
