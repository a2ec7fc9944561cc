package model

import "fmt"

// Target 效果目标选择器，在解释时解析为具体实体集合。
type Target int32

const (
	TargetNone Target = iota

	SelfMinion // 触发效果的随从自身
	SelfHero   // 触发效果的英雄自身（随从牌打出时为出牌者英雄）

	SelectTargetMinion // 玩家指定随从
	SelectTargetHero   // 玩家指定英雄
	SelectTargetEntity // 玩家指定任意实体

	OppositeAllMinion // 对方全部随从
	OppositeFrontHero // 对方前排英雄
	OppositeBackHero  // 对方后排英雄
	OppositeAllHero   // 对方全部英雄
	OppositeAllEntity // 对方全部实体

	TeamAllMinion // 己方全部随从
	TeamFrontHero // 己方前排英雄
	TeamBackHero  // 己方后排英雄
	TeamAllHero   // 己方全部英雄
	TeamAllEntity // 己方全部实体

	AllMinion    // 场上全部随从
	AllFrontHero // 全部前排英雄
	AllBackHero  // 全部后排英雄
	AllHero      // 全部英雄
	AllEntity    // 全部实体

	JustSummon // 本次解释过程中刚召唤出的随从
)

var targetNames = map[Target]string{
	TargetNone:         "None",
	SelfMinion:         "SelfMinion",
	SelfHero:           "SelfHero",
	SelectTargetMinion: "SelectTargetMinion",
	SelectTargetHero:   "SelectTargetHero",
	SelectTargetEntity: "SelectTargetEntity",
	OppositeAllMinion:  "OppositeAllMinion",
	OppositeFrontHero:  "OppositeFrontHero",
	OppositeBackHero:   "OppositeBackHero",
	OppositeAllHero:    "OppositeAllHero",
	OppositeAllEntity:  "OppositeAllEntity",
	TeamAllMinion:      "TeamAllMinion",
	TeamFrontHero:      "TeamFrontHero",
	TeamBackHero:       "TeamBackHero",
	TeamAllHero:        "TeamAllHero",
	TeamAllEntity:      "TeamAllEntity",
	AllMinion:          "AllMinion",
	AllFrontHero:       "AllFrontHero",
	AllBackHero:        "AllBackHero",
	AllHero:            "AllHero",
	AllEntity:          "AllEntity",
	JustSummon:         "JustSummon",
}

func (t Target) String() string {
	if name, ok := targetNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Target(%d)", int32(t))
}
