package model

import "fmt"

/*

	卡牌静态数据模型。启动时从外部存储加载一次，运行期只读共享。

*/

// EffectOp 叶子效果操作
type EffectOp int32

const (
	OpDealDamage          EffectOp = 1 // 造成伤害
	OpDrawCard            EffectOp = 2 // 抽牌
	OpBuff                EffectOp = 3 // 加成
	OpSummonMinion        EffectOp = 4 // 召唤随从
	OpSwapFrontBack       EffectOp = 5 // 交换前后排
	OpRecoverHealth       EffectOp = 6 // 回复生命
	OpPreventNormalEffect EffectOp = 7 // 阻止 Normal 效果
)

var opNames = map[EffectOp]string{
	OpDealDamage:          "DealDamage",
	OpDrawCard:            "DrawCard",
	OpBuff:                "Buff",
	OpSummonMinion:        "SummonMinion",
	OpSwapFrontBack:       "SwapFrontBack",
	OpRecoverHealth:       "RecoverHealth",
	OpPreventNormalEffect: "PreventNormalEffect",
}

func (op EffectOp) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("EffectOp(%d)", int32(op))
}

// CardEffect 单条叶子效果。Op 决定哪些字段有效。
type CardEffect struct {
	Op     EffectOp `json:"op"`
	Target Target   `json:"target,omitempty"`

	Damage int32 `json:"damage,omitempty"` // DealDamage
	Count  int32 `json:"count,omitempty"`  // DrawCard / SummonMinion

	BuffType int32 `json:"buffType,omitempty"` // Buff
	AtkBoost int32 `json:"atkBoost,omitempty"` // Buff
	HpBoost  int32 `json:"hpBoost,omitempty"`  // Buff

	MinionCode string     `json:"minionCode,omitempty"` // SummonMinion
	SummonSide SummonSide `json:"summonSide,omitempty"` // SummonMinion 位置语义未定义，按追加处理

	SwapTeam     bool `json:"swapTeam,omitempty"`     // SwapFrontBack
	SwapOpposite bool `json:"swapOpposite,omitempty"` // SwapFrontBack

	Hp int32 `json:"hp,omitempty"` // RecoverHealth
}

// MinionEventType 随从效果触发类型
type MinionEventType int32

const (
	MinionBattlecry         MinionEventType = 1 // 战吼
	MinionDeathrattle       MinionEventType = 2 // 亡语
	MinionSwapFrontBackHook MinionEventType = 3 // 换排钩子
	MinionBerserk           MinionEventType = 4 // 识别但不生效
	MinionSpellDamage       MinionEventType = 5 // 识别但不生效
)

// MinionEffect 随从效果项
type MinionEffect struct {
	Type MinionEventType `json:"type"`

	// SwapFrontBackHook 触发条件
	ApplyWhenTeamSwap     bool `json:"applyWhenTeamSwap,omitempty"`
	ApplyWhenOppositeSwap bool `json:"applyWhenOppositeSwap,omitempty"`

	// SpellDamage 预留字段，当前不消费
	Amplify int32 `json:"amplify,omitempty"`

	Effects []CardEffect `json:"effects,omitempty"`
}

// SpellEffectType 法术效果触发类型
type SpellEffectType int32

const (
	SpellNormal   SpellEffectType = 1 // 通常效果
	SpellFrontUse SpellEffectType = 2 // 前排施放
	SpellBackUse  SpellEffectType = 3 // 后排施放
)

// SpellEffect 法术效果项
type SpellEffect struct {
	Type    SpellEffectType `json:"type"`
	Effects []CardEffect    `json:"effects,omitempty"`
}

// MinionInfo 随从专有数据
type MinionInfo struct {
	Attack  int32          `json:"attack"`
	Health  int32          `json:"health"`
	Effects []MinionEffect `json:"effects,omitempty"`
}

// SpellInfo 法术专有数据
type SpellInfo struct {
	Effects []SpellEffect `json:"effects,omitempty"`
}

// Card 卡牌模型（不可变，按引用共享）
type Card struct {
	ID               int64    `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Type             CardType `json:"type"`
	Cost             int32    `json:"cost"`
	Derive           bool     `json:"derive"`           // 衍生牌，不进入初始牌库
	NeedSelectTarget bool     `json:"needSelectTarget"` // 打出时需要指定目标

	Minion *MinionInfo `json:"minion,omitempty"`
	Spell  *SpellInfo  `json:"spell,omitempty"`
}

func (c *Card) IsMinion() bool {
	return c.Type == CardMinion
}

func (c *Card) IsSpell() bool {
	return c.Type == CardSpell
}

// MinionEffects 返回指定触发类型的全部随从效果项
func (c *Card) MinionEffects(ty MinionEventType) []MinionEffect {
	if c.Minion == nil {
		return nil
	}
	var out []MinionEffect
	for _, ef := range c.Minion.Effects {
		if ef.Type == ty {
			out = append(out, ef)
		}
	}
	return out
}

// SpellEffects 返回指定触发类型的效果列表（无匹配返回 nil）
func (c *Card) SpellEffects(ty SpellEffectType) []CardEffect {
	if c.Spell == nil {
		return nil
	}
	for _, ef := range c.Spell.Effects {
		if ef.Type == ty {
			return ef.Effects
		}
	}
	return nil
}

func (c *Card) Desc() string {
	return fmt.Sprintf("(%d %s %s cost:%d %v)", c.ID, c.Code, c.Name, c.Cost, c.Type)
}
