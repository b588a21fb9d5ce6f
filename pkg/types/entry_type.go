package types

// EntryEdge 敌机入场的屏幕边缘
type EntryEdge int

const (
	// EdgeTop 从屏幕上方入场
	EdgeTop EntryEdge = iota
	// EdgeBottom 从屏幕下方入场
	EdgeBottom
)

// String 返回入场边缘的配置字符串表示
func (e EntryEdge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// EntryEdgeFromString 将配置字符串转换为 EntryEdge
func EntryEdgeFromString(s string) (EntryEdge, bool) {
	switch s {
	case "top":
		return EdgeTop, true
	case "bottom":
		return EdgeBottom, true
	default:
		return EdgeTop, false
	}
}

// Lane 敌机入场的航道，决定出生点偏移和水平镜像
type Lane int

const (
	// LaneLeft 左侧航道
	LaneLeft Lane = iota
	// LaneRight 右侧航道
	LaneRight
	// LaneCenterLeft 中线偏左
	LaneCenterLeft
	// LaneCenterRight 中线偏右
	LaneCenterRight
)

// laneStringMap 航道到配置字符串的映射
var laneStringMap = map[Lane]string{
	LaneLeft:        "left",
	LaneRight:       "right",
	LaneCenterLeft:  "center_left",
	LaneCenterRight: "center_right",
}

// String 返回航道的配置字符串表示
func (l Lane) String() string {
	if s, ok := laneStringMap[l]; ok {
		return s
	}
	return "unknown"
}

// LaneFromString 将配置字符串转换为 Lane
func LaneFromString(s string) (Lane, bool) {
	for l, name := range laneStringMap {
		if name == s {
			return l, true
		}
	}
	return LaneLeft, false
}

// EnemyState 敌机生命周期状态
//
// 状态流转：Entering → SlotPending → Gliding → InFormation
// InFormation 是稳定状态（持续跟随编队呼吸），不是移除
type EnemyState int

const (
	// StateEntering 沿入场曲线飞行
	StateEntering EnemyState = iota
	// StateSlotPending 入场结束，等待分配编队位置
	StateSlotPending
	// StateGliding 正在滑向分配到的编队位置
	StateGliding
	// StateInFormation 已到达编队位置
	StateInFormation
)

// String 返回状态名称（用于日志和 HUD）
func (s EnemyState) String() string {
	switch s {
	case StateEntering:
		return "Entering"
	case StateSlotPending:
		return "SlotPending"
	case StateGliding:
		return "Gliding"
	case StateInFormation:
		return "InFormation"
	default:
		return "Unknown"
	}
}

// IsSupportedEntry 判断入场边缘与航道的组合是否有对应的入场曲线
//
// 下方入场只走左右两侧，上方入场只走中线两侧
func IsSupportedEntry(edge EntryEdge, lane Lane) bool {
	switch edge {
	case EdgeBottom:
		return lane == LaneLeft || lane == LaneRight
	case EdgeTop:
		return lane == LaneCenterLeft || lane == LaneCenterRight
	default:
		return false
	}
}
