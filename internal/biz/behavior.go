package biz

import (
	"context"
	"time"

	"github.com/yola1107/duel/internal/biz/engine"
	"github.com/yola1107/duel/internal/biz/inbox"
	"github.com/yola1107/duel/internal/biz/notify"
)

// InputTurnAction 回合操作的输入类型名
const InputTurnAction = "turn_action"

// socketBehavior 真人玩家行为：等待客户端提交操作，超时按结束回合处理。
type socketBehavior struct {
	uc     *Usecase
	userID string
}

var _ engine.Behavior = (*socketBehavior)(nil)

func newSocketBehavior(uc *Usecase, userID string) *socketBehavior {
	return &socketBehavior{uc: uc, userID: userID}
}

func (b *socketBehavior) NextStartingAction(context.Context, *engine.Game, *engine.Player)   {}
func (b *socketBehavior) FinishStartingAction(context.Context, *engine.Game, *engine.Player) {}

func (b *socketBehavior) NextAction(ctx context.Context, g *engine.Game, p *engine.Player) engine.PlayerTurnAction {
	timeout := time.Duration(b.uc.rc.TurnTimeout) * time.Second
	return inbox.WaitForInput(ctx, b.uc.inbox, b.userID, InputTurnAction, timeout,
		engine.EndTurnAction,
		func() {
			g.Notifier().MyTurnStart(notify.MyTurnStartEvent{
				PlayerID:   b.userID,
				ExpectName: InputTurnAction,
				TimeoutSec: int64(b.uc.rc.TurnTimeout),
			})
		})
}
