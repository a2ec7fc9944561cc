package notify

/*

	Notifier 引擎事件出口。运行期的细粒度方法由实现方缓冲，
	引擎在自然同步点（回合开始、每次操作后、回合结束）调用 Flush。

*/

type Notifier interface {
	// 开局阶段
	GameStart(e GameStartEvent)
	MyTurnStart(e MyTurnStartEvent)

	// 运行阶段（缓冲）
	NewTurn(e NewTurnEvent)
	PlayerManaChange(e ManaChangeEvent)
	PlayerDrawCard(e DrawCardEvent)
	PlayerUseCard(e UseCardEvent)
	PlayerCardEffectEnd(e CardEffectEndEvent)
	PlayerSwapFightline(e SwapFightlineEvent)
	MinionSummon(e MinionSummonEvent)
	MinionBattlecry(e MinionEffectEvent)
	MinionAttack(e MinionAttackEvent)
	MinionDeath(e MinionDeathEvent)
	MinionDeathrattle(e MinionEffectEvent)
	DealDamage(e DealDamageEvent)
	Buff(e BuffEvent)
	GameResult(e GameResultEvent)

	// Flush 将缓冲事件按视角下发并附加快照
	Flush(v GameViewer)
}

// Nop 空实现（压测/基准用）
type Nop struct{}

var _ Notifier = (*Nop)(nil)

func (Nop) GameStart(GameStartEvent)               {}
func (Nop) MyTurnStart(MyTurnStartEvent)           {}
func (Nop) NewTurn(NewTurnEvent)                   {}
func (Nop) PlayerManaChange(ManaChangeEvent)       {}
func (Nop) PlayerDrawCard(DrawCardEvent)           {}
func (Nop) PlayerUseCard(UseCardEvent)             {}
func (Nop) PlayerCardEffectEnd(CardEffectEndEvent) {}
func (Nop) PlayerSwapFightline(SwapFightlineEvent) {}
func (Nop) MinionSummon(MinionSummonEvent)         {}
func (Nop) MinionBattlecry(MinionEffectEvent)      {}
func (Nop) MinionAttack(MinionAttackEvent)         {}
func (Nop) MinionDeath(MinionDeathEvent)           {}
func (Nop) MinionDeathrattle(MinionEffectEvent)    {}
func (Nop) DealDamage(DealDamageEvent)             {}
func (Nop) Buff(BuffEvent)                         {}
func (Nop) GameResult(GameResultEvent)             {}
func (Nop) Flush(GameViewer)                       {}
