package notify

import (
	"github.com/yola1107/kratos/v2/log"
)

// Packet 单条下发消息
type Packet struct {
	Cmd     int32 `json:"cmd"`
	Payload any   `json:"payload"`
}

// Sender 消息下发能力（会话层实现）。下发失败只记录日志，不影响对局。
type Sender interface {
	Send(playerID string, packets []Packet) error
}

// Buffered 缓冲型 Notifier：运行期事件入缓冲，
// Flush 时按视角复制事件批（抽牌事件对他人脱敏）并附加 SyncGameStatus。
type Buffered struct {
	sender Sender
	buf    []Packet
}

var _ Notifier = (*Buffered)(nil)

func NewBuffered(sender Sender) *Buffered {
	return &Buffered{sender: sender}
}

func (b *Buffered) push(cmd int32, payload any) {
	b.buf = append(b.buf, Packet{Cmd: cmd, Payload: payload})
}

// 开局阶段事件直接下发，不进缓冲

func (b *Buffered) GameStart(e GameStartEvent) {
	for _, p := range e.Players {
		b.send(p.PlayerID, []Packet{{Cmd: CmdGameStart, Payload: e}})
	}
}

func (b *Buffered) MyTurnStart(e MyTurnStartEvent) {
	b.send(e.PlayerID, []Packet{{Cmd: CmdMyTurnStart, Payload: e}})
}

// 运行阶段事件

func (b *Buffered) NewTurn(e NewTurnEvent)                   { b.push(CmdNewTurn, e) }
func (b *Buffered) PlayerManaChange(e ManaChangeEvent)       { b.push(CmdManaChange, e) }
func (b *Buffered) PlayerDrawCard(e DrawCardEvent)           { b.push(CmdDrawCard, e) }
func (b *Buffered) PlayerUseCard(e UseCardEvent)             { b.push(CmdUseCard, e) }
func (b *Buffered) PlayerCardEffectEnd(e CardEffectEndEvent) { b.push(CmdCardEffectEnd, e) }
func (b *Buffered) PlayerSwapFightline(e SwapFightlineEvent) { b.push(CmdSwapFightline, e) }
func (b *Buffered) MinionSummon(e MinionSummonEvent)         { b.push(CmdMinionSummon, e) }
func (b *Buffered) MinionBattlecry(e MinionEffectEvent)      { b.push(CmdBattlecry, e) }
func (b *Buffered) MinionAttack(e MinionAttackEvent)         { b.push(CmdMinionAttack, e) }
func (b *Buffered) MinionDeath(e MinionDeathEvent)           { b.push(CmdMinionDeath, e) }
func (b *Buffered) MinionDeathrattle(e MinionEffectEvent)    { b.push(CmdDeathrattle, e) }
func (b *Buffered) DealDamage(e DealDamageEvent)             { b.push(CmdDealDamage, e) }
func (b *Buffered) Buff(e BuffEvent)                         { b.push(CmdBuff, e) }
func (b *Buffered) GameResult(e GameResultEvent)             { b.push(CmdGameResult, e) }

// Flush 下发缓冲事件。事件间顺序对每个观战者与产生顺序一致。
func (b *Buffered) Flush(v GameViewer) {
	if len(b.buf) == 0 {
		return
	}
	buf := b.buf
	b.buf = nil

	for _, viewerID := range v.ViewerIDs() {
		packets := make([]Packet, 0, len(buf)+1)
		for _, pk := range buf {
			packets = append(packets, redact(pk, viewerID))
		}
		if snap := v.Snapshot(viewerID); snap != nil {
			packets = append(packets, Packet{Cmd: CmdSyncStatus, Payload: snap})
		}
		b.send(viewerID, packets)
	}
}

// redact 对非本人视角隐藏抽到的牌
func redact(pk Packet, viewerID string) Packet {
	if pk.Cmd != CmdDrawCard {
		return pk
	}
	e, ok := pk.Payload.(DrawCardEvent)
	if !ok || e.PlayerID == viewerID {
		return pk
	}
	e.CardID = 0
	pk.Payload = e
	return pk
}

func (b *Buffered) send(playerID string, packets []Packet) {
	if b.sender == nil {
		return
	}
	if err := b.sender.Send(playerID, packets); err != nil {
		log.Warnf("notify send failed. player=%s packets=%d err=%v", playerID, len(packets), err)
	}
}
