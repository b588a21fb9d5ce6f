// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// EnemyClass 定义敌机的种类
//
// 每个种类在编队网格中占据固定的行：
//   - Boss: 第 0 行（索引 0-9）
//   - Butterfly: 第 1-2 行（索引 10-29）
//   - Bee: 第 3-4 行（索引 30-49）
type EnemyClass int

const (
	// EnemyUnknown 未知敌机类型
	EnemyUnknown EnemyClass = iota
	// EnemyBee 蜜蜂（最下两行）
	EnemyBee
	// EnemyButterfly 蝴蝶（中间两行）
	EnemyButterfly
	// EnemyBoss 首领（最上一行）
	EnemyBoss
)

// enemyClassStringMap 敌机类型到配置字符串的映射
var enemyClassStringMap = map[EnemyClass]string{
	EnemyBee:       "bee",
	EnemyButterfly: "butterfly",
	EnemyBoss:      "boss",
}

// stringToEnemyClassMap 配置字符串到敌机类型的反向映射
var stringToEnemyClassMap map[string]EnemyClass

func init() {
	stringToEnemyClassMap = make(map[string]EnemyClass, len(enemyClassStringMap))
	for c, s := range enemyClassStringMap {
		stringToEnemyClassMap[s] = c
	}
}

// String 返回敌机类型的配置字符串表示（用于配置文件匹配）
func (c EnemyClass) String() string {
	if s, ok := enemyClassStringMap[c]; ok {
		return s
	}
	return "unknown"
}

// EnemyClassFromString 将配置字符串转换为 EnemyClass
func EnemyClassFromString(s string) EnemyClass {
	if c, ok := stringToEnemyClassMap[s]; ok {
		return c
	}
	return EnemyUnknown
}

// FormationRows 返回该类型在编队网格中占据的起始行和行数
// 未知类型返回 (0, 0)
func (c EnemyClass) FormationRows() (firstRow, rowCount int) {
	switch c {
	case EnemyBoss:
		return 0, 1
	case EnemyButterfly:
		return 1, 2
	case EnemyBee:
		return 3, 2
	default:
		return 0, 0
	}
}
