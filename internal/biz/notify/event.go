package notify

import "github.com/yola1107/duel/internal/model"

/*

	对局事件定义。引擎通过 Notifier 逐条产生事件，
	实现方缓冲后在 Flush 时按观战视角批量下发。

*/

// GameCommand 推送命令字
const (
	CmdGameStart     int32 = 2001
	CmdNewTurn       int32 = 2002
	CmdManaChange    int32 = 2003
	CmdDrawCard      int32 = 2004
	CmdUseCard       int32 = 2005
	CmdCardEffectEnd int32 = 2006
	CmdSwapFightline int32 = 2007
	CmdMinionSummon  int32 = 2008
	CmdBattlecry     int32 = 2009
	CmdMinionAttack  int32 = 2010
	CmdMinionDeath   int32 = 2011
	CmdDeathrattle   int32 = 2012
	CmdDealDamage    int32 = 2013
	CmdBuff          int32 = 2014
	CmdGameResult    int32 = 2015
	CmdSyncStatus    int32 = 2016
	CmdMyTurnStart   int32 = 2017
)

// DrawKind 抽牌结果分类
type DrawKind int32

const (
	DrawOK    DrawKind = 0 // 正常入手
	DrawFire  DrawKind = 1 // 手牌满，烧牌
	DrawTired DrawKind = 2 // 牌库空，疲劳
)

// PlayerBrief 开局阶段的座位信息
type PlayerBrief struct {
	PlayerID  string          `json:"playerId"`
	Camp      model.Camp      `json:"camp"`
	Fightline model.Fightline `json:"fightline"`
	HeroUUID  int64           `json:"heroUuid"`
	MaxHp     int32           `json:"maxHp"`
}

type GameStartEvent struct {
	Players []PlayerBrief `json:"players"`
}

type NewTurnEvent struct {
	Turn     int32  `json:"turn"`
	PlayerID string `json:"playerId,omitempty"` // SwapFightline 回合为空
	Swap     bool   `json:"swap,omitempty"`
}

type ManaChangeEvent struct {
	PlayerID string `json:"playerId"`
	Mana     int32  `json:"mana"`
	MaxMana  int32  `json:"maxMana"`
}

// DrawCardEvent CardID 只对本人可见，其余视角置 0
type DrawCardEvent struct {
	PlayerID string   `json:"playerId"`
	Kind     DrawKind `json:"kind"`
	CardID   int64    `json:"cardId,omitempty"`
	Tired    int32    `json:"tired,omitempty"` // Kind==DrawTired 时的疲劳计数
}

type UseCardEvent struct {
	PlayerID string `json:"playerId"`
	CardID   int64  `json:"cardId"`
	Cost     int32  `json:"cost"`
}

type CardEffectEndEvent struct {
	PlayerID string `json:"playerId"`
	CardID   int64  `json:"cardId"`
}

type SwapFightlineEvent struct {
	PlayerID  string          `json:"playerId"`
	HeroUUID  int64           `json:"heroUuid"`
	Fightline model.Fightline `json:"fightline"` // 交换后的位置
}

type MinionSummonEvent struct {
	UUID   int64      `json:"uuid"`
	Camp   model.Camp `json:"camp"`
	CardID int64      `json:"cardId"`
	Atk    int32      `json:"atk"`
	Hp     int32      `json:"hp"`
	MaxHp  int32      `json:"maxHp"`
}

// MinionEffectEvent 战吼/亡语触发
type MinionEffectEvent struct {
	UUID   int64 `json:"uuid"`
	CardID int64 `json:"cardId"`
}

type MinionAttackEvent struct {
	Attacker   int64 `json:"attacker"`
	TargetUUID int64 `json:"targetUuid"`
	TargetHero bool  `json:"targetHero,omitempty"`
}

type MinionDeathEvent struct {
	UUID   int64      `json:"uuid"`
	Camp   model.Camp `json:"camp"`
	CardID int64      `json:"cardId"`
}

// DealDamageEvent 伤害（Damage 为负表示治疗）
type DealDamageEvent struct {
	UUID   int64 `json:"uuid"` // 命中实体（随从或英雄）
	Hero   bool  `json:"hero,omitempty"`
	Damage int32 `json:"damage"`
	Hp     int32 `json:"hp"` // 结算后的 hp
}

type BuffEvent struct {
	UUID     int64 `json:"uuid"`
	BuffType int32 `json:"buffType"`
	AtkBoost int32 `json:"atkBoost"`
	HpBoost  int32 `json:"hpBoost"`
}

type GameResultEvent struct {
	Winner model.Camp `json:"winner"` // -1 表示平局
	Turns  int32      `json:"turns"`
}

type MyTurnStartEvent struct {
	PlayerID   string `json:"playerId"`
	ExpectName string `json:"expectName"` // 客户端应提交的消息类型
	TimeoutSec int64  `json:"timeoutSec"`
}

/*

	视角快照。Flush 时附加在事件批之后，
	隐藏对手手牌内容，只暴露数量。

*/

type HandCardView struct {
	CardID int64  `json:"cardId"`
	Code   string `json:"code"`
	Cost   int32  `json:"cost"`
}

type PlayerStatus struct {
	PlayerID  string          `json:"playerId"`
	Camp      model.Camp      `json:"camp"`
	Fightline model.Fightline `json:"fightline"`
	HeroUUID  int64           `json:"heroUuid"`
	Hp        int32           `json:"hp"`
	MaxHp     int32           `json:"maxHp"`
	Mana      int32           `json:"mana"`
	MaxMana   int32           `json:"maxMana"`
	Tired     int32           `json:"tired"`
	HandCount int32           `json:"handCount"`
	DeckCount int32           `json:"deckCount"`

	// 仅本人视角填充
	HandCards []HandCardView `json:"handCards,omitempty"`
}

type MinionStatus struct {
	UUID   int64      `json:"uuid"`
	Camp   model.Camp `json:"camp"`
	CardID int64      `json:"cardId"`
	Atk    int32      `json:"atk"`
	Hp     int32      `json:"hp"`
	MaxHp  int32      `json:"maxHp"`
}

type SyncGameStatus struct {
	Turn    int32          `json:"turn"`
	Players []PlayerStatus `json:"players"`
	Minions []MinionStatus `json:"minions"`
}

// GameViewer 由引擎实现，Flush 时为每个观战者生成脱敏快照。
type GameViewer interface {
	ViewerIDs() []string
	Snapshot(viewerID string) *SyncGameStatus
}
