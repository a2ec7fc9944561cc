package model

import "fmt"

/*

	基础枚举：阵营 / 前后排 / 卡牌类型

*/

// Camp 阵营。A 阵营在所有有序遍历中先于 B 阵营结算。
type Camp int32

const (
	CampA Camp = 0
	CampB Camp = 1
)

// Opposite 返回对方阵营
func (c Camp) Opposite() Camp {
	if c == CampA {
		return CampB
	}
	return CampA
}

func (c Camp) String() string {
	switch c {
	case CampA:
		return "A"
	case CampB:
		return "B"
	default:
		return fmt.Sprintf("Camp(%d)", int32(c))
	}
}

// Fightline 前后排位置
type Fightline int32

const (
	Front Fightline = 0
	Back  Fightline = 1
)

// Flip 返回交换后的位置
func (f Fightline) Flip() Fightline {
	if f == Front {
		return Back
	}
	return Front
}

func (f Fightline) String() string {
	switch f {
	case Front:
		return "Front"
	case Back:
		return "Back"
	default:
		return fmt.Sprintf("Fightline(%d)", int32(f))
	}
}

// CardType 卡牌类型
type CardType int32

const (
	CardMinion CardType = 1 // 随从牌
	CardSpell  CardType = 2 // 法术牌
)

func (t CardType) String() string {
	switch t {
	case CardMinion:
		return "Minion"
	case CardSpell:
		return "Spell"
	default:
		return fmt.Sprintf("CardType(%d)", int32(t))
	}
}

// SummonSide 召唤位置（左/右）。位置语义未定义，当前按追加处理。
type SummonSide int32

const (
	SummonLeft  SummonSide = 0
	SummonRight SummonSide = 1
)
