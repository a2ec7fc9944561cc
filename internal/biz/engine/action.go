package engine

import (
	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/model"
)

// dispatch 执行一次玩家回合内操作
func (g *Game) dispatch(p *Player, act PlayerTurnAction) {
	switch act.Type {
	case ActionPlayCard:
		g.playCard(p, act)
	case ActionMinionAttack:
		g.minionAttack(p, act)
	default:
		log.Warnf("unknown action type %d from %s, drop", act.Type, p.ID)
	}
}

// playCard 打出手牌。索引越界按空操作处理；法力允许透支为负。
func (g *Game) playCard(p *Player, act PlayerTurnAction) {
	card := p.Hand.Remove(act.HandIndex)
	if card == nil {
		log.Warnf("playCard: index %d out of range. p=%s", act.HandIndex, p.Desc())
		return
	}

	p.Mana -= card.Cost
	g.notifier.PlayerUseCard(notify.UseCardEvent{PlayerID: p.ID, CardID: card.ID, Cost: card.Cost})

	switch {
	case card.IsMinion():
		g.minionSummonWithBattlecry(card, p, act.Target)
	case card.IsSpell():
		g.castSpell(p, card, act.Target)
	default:
		log.Errorf("playCard: card %d has unknown type %v", card.ID, card.Type)
	}

	g.notifier.PlayerCardEffectEnd(notify.CardEffectEndEvent{PlayerID: p.ID, CardID: card.ID})
}

// castSpell 依施放者当前前后排触发 FrontUse/BackUse；
// 未被 PreventNormalEffect 阻止时再触发 Normal 效果。
func (g *Game) castSpell(p *Player, card *model.Card, pointer *EntityRef) {
	kind := EvBackUse
	if p.Fightline() == model.Front {
		kind = EvFrontUse
	}

	trig := Trigger{Hero: p.Hero, Camp: p.Camp}
	res := g.interpret(Event{Kind: kind}, trig, pointer, card)
	need := res.NeedDeathCheck

	if !res.PreventNormalEffect {
		res2 := g.interpret(Event{Kind: EvNormalSpell}, trig, pointer, card)
		need = need || res2.NeedDeathCheck
	}
	if need {
		g.deathCheck()
	}
}

// minionAttack 随从攻击。攻击随从：双方互受对方攻击力的伤害；
// 攻击英雄：英雄单向受伤，无反击。
func (g *Game) minionAttack(p *Player, act PlayerTurnAction) {
	attacker, _ := g.findMinion(act.Attacker)
	if attacker == nil || act.Target == nil {
		log.Warnf("minionAttack: invalid attack. p=%s attacker=%d", p.ID, act.Attacker)
		return
	}

	g.notifier.MinionAttack(notify.MinionAttackEvent{
		Attacker:   attacker.UUID,
		TargetUUID: act.Target.UUID,
		TargetHero: act.Target.Kind == RefHero,
	})

	switch act.Target.Kind {
	case RefMinion:
		defender, _ := g.findMinion(act.Target.UUID)
		if defender == nil {
			return
		}
		g.damageMinion(defender, attacker.Atk)
		g.damageMinion(attacker, defender.Atk)
		g.deathCheck()
	case RefHero:
		target := g.playerOfHero(act.Target.UUID)
		if target == nil {
			return
		}
		g.damageHero(target, attacker.Atk)
	}
}

// damageMinion 对随从结算伤害并发事件（负值治疗）
func (g *Game) damageMinion(m *Minion, v int32) {
	m.TakeDamage(v)
	g.notifier.DealDamage(notify.DealDamageEvent{UUID: m.UUID, Damage: v, Hp: m.Hp})
}

// damageHero 对英雄结算伤害并发事件（负值治疗）
func (g *Game) damageHero(p *Player, v int32) {
	p.Hero.TakeDamage(v)
	g.notifier.DealDamage(notify.DealDamageEvent{UUID: p.Hero.UUID, Hero: true, Damage: v, Hp: p.Hero.Hp})
}
