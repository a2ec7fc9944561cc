package engine

import "context"

// ActionType 玩家回合操作类型
type ActionType int32

const (
	ActionEndTurn      ActionType = 0
	ActionPlayCard     ActionType = 1
	ActionMinionAttack ActionType = 2
)

// RefKind 实体引用类型
type RefKind int32

const (
	RefMinion RefKind = 1
	RefHero   RefKind = 2
)

// EntityRef 玩家指定的目标引用
type EntityRef struct {
	Kind RefKind `json:"kind"`
	UUID int64   `json:"uuid"`
}

// PlayerTurnAction 一次玩家操作
type PlayerTurnAction struct {
	Type ActionType `json:"type"`

	// PlayCard
	HandIndex int        `json:"handIndex,omitempty"`
	Target    *EntityRef `json:"target,omitempty"`

	// MinionAttack
	Attacker int64 `json:"attacker,omitempty"`
}

// EndTurnAction 结束回合
func EndTurnAction() PlayerTurnAction {
	return PlayerTurnAction{Type: ActionEndTurn}
}

/*

	Behavior 玩家行为适配器。引擎通过它拉取玩家决策；
	套接字实现在 biz 层等待输入管理器，超时返回 EndTurn。

*/

type Behavior interface {
	// NextStartingAction 开局阶段决策（当前版本无换牌，空实现即可）
	NextStartingAction(ctx context.Context, g *Game, p *Player)
	// FinishStartingAction 开局阶段收尾
	FinishStartingAction(ctx context.Context, g *Game, p *Player)
	// NextAction 拉取下一次回合内操作
	NextAction(ctx context.Context, g *Game, p *Player) PlayerTurnAction
}

// AIBehavior 机器人行为：直接结束回合
type AIBehavior struct{}

var _ Behavior = (*AIBehavior)(nil)

func (AIBehavior) NextStartingAction(context.Context, *Game, *Player)   {}
func (AIBehavior) FinishStartingAction(context.Context, *Game, *Player) {}

func (AIBehavior) NextAction(context.Context, *Game, *Player) PlayerTurnAction {
	return EndTurnAction()
}
