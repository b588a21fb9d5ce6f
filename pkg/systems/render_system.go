package systems

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/galaga/pkg/components"
	"github.com/decker502/galaga/pkg/config"
	"github.com/decker502/galaga/pkg/ecs"
	"github.com/decker502/galaga/pkg/types"
)

// 调色板
var (
	ColorRed        = color.NRGBA{R: 217, G: 100, B: 89, A: 255}
	ColorWhite      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	ColorGreen      = color.NRGBA{R: 88, G: 140, B: 126, A: 255}
	ColorBlue       = color.NRGBA{R: 146, G: 161, B: 185, A: 255}
	ColorOrange     = color.NRGBA{R: 242, G: 174, B: 114, A: 255}
	ColorGrey       = color.NRGBA{R: 89, G: 89, B: 89, A: 255}
	ColorBackground = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

// RenderOptions 可切换的绘制项
type RenderOptions struct {
	ShowGrid       bool // 绘制编队网格轮廓
	ShowCenterLine bool // 绘制屏幕中线
	ShowHUD        bool // 绘制左下角状态文字
}

// RenderSystem 把模拟结果画到 ebiten 画面上
//
// 只读取组件，不修改任何模拟状态：
//   - 爆炸噪点（ExplosionComponent）
//   - 玩家战机（固定位置的方块）
//   - 敌机（PositionComponent 处的方块）
//   - 编队网格轮廓、屏幕中线、状态文字
type RenderSystem struct {
	entityManager *ecs.EntityManager
	grid          *FormationGridSystem
	hudFace       text.Face
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, grid *FormationGridSystem) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		grid:          grid,
		hudFace:       text.NewGoXFace(basicfont.Face7x13),
	}
}

// Draw 绘制一帧
func (s *RenderSystem) Draw(screen *ebiten.Image, opts RenderOptions) {
	screen.Fill(ColorBackground)

	s.drawExplosions(screen)
	s.drawFighter(screen)
	s.drawEnemies(screen)

	if opts.ShowCenterLine {
		vector.StrokeLine(screen, config.ScreenWidth/2, 0, config.ScreenWidth/2, config.ScreenHeight, 1, ColorGrey, false)
	}
	if opts.ShowGrid {
		s.drawFormationGrid(screen)
	}
	if opts.ShowHUD {
		s.drawHUD(screen)
	}
}

// drawExplosions 绘制爆炸噪点
func (s *RenderSystem) drawExplosions(screen *ebiten.Image) {
	for _, entity := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.entityManager) {
		explosion, _ := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, entity)
		if explosion.Finished {
			continue
		}
		clr := ColorWhite
		if explosion.Flash {
			clr = ColorRed
		}
		size := float32(explosion.PointSize)
		for _, p := range explosion.Points {
			vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), size, size, clr, false)
		}
	}
}

// drawFighter 绘制玩家战机（左下角固定位置）
func (s *RenderSystem) drawFighter(screen *ebiten.Image) {
	x := float32(config.FighterMargin)
	y := float32(config.ScreenHeight - config.FighterHeight - config.FighterMargin)
	vector.DrawFilledRect(screen, x, y, config.FighterWidth, config.FighterHeight, ColorGreen, false)
}

// drawEnemies 绘制所有敌机
func (s *RenderSystem) drawEnemies(screen *ebiten.Image) {
	for _, entity := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entity)
		vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), config.EnemySize, config.EnemySize, ColorBlue, false)
	}
}

// drawFormationGrid 绘制编队网格轮廓，已到达的格子用橙色
func (s *RenderSystem) drawFormationGrid(screen *ebiten.Image) {
	grid := s.grid.Grid()
	for row := 0; row < config.FormationRows; row++ {
		for col := 0; col < config.FormationColumns; col++ {
			x, y := SlotPosition(grid, col, row)
			clr := ColorGrey
			if grid.Slots[config.SlotIndex(col, row)] == components.SlotOccupied {
				clr = ColorOrange
			}
			vector.StrokeRect(screen, float32(x), float32(y), config.EnemySize, config.EnemySize, 1, clr, false)
		}
	}
}

// drawHUD 绘制状态文字：逻辑帧、格距、各状态敌机数量
func (s *RenderSystem) drawHUD(screen *ebiten.Image) {
	grid := s.grid.Grid()
	counts := CountEnemyStates(s.entityManager)

	lines := []string{
		fmt.Sprintf("tick %d  spacing %.2f", grid.Tick, grid.Spacing),
		fmt.Sprintf("entering %d  pending %d  gliding %d  formed %d",
			counts[types.StateEntering], counts[types.StateSlotPending],
			counts[types.StateGliding], counts[types.StateInFormation]),
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(config.FighterMargin+config.FighterWidth+12, config.ScreenHeight-40)
	op.ColorScale.ScaleWithColor(ColorWhite)
	op.LineSpacing = 16
	text.Draw(screen, strings.Join(lines, "\n"), s.hudFace, op)
}

// CountEnemyStates 统计各生命周期状态的敌机数量
func CountEnemyStates(em *ecs.EntityManager) map[types.EnemyState]int {
	counts := make(map[types.EnemyState]int, 4)
	for _, entity := range ecs.GetEntitiesWith1[*components.EnemyComponent](em) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, entity)
		counts[enemy.State]++
	}
	return counts
}
