package engine

import (
	"fmt"

	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/model"
)

/*

	效果解释器。按触发事件取出卡牌元数据上的效果列表，
	逐条解析目标选择器并应用原语。空目标集是空操作而非错误。

*/

// EventKind 触发事件类型
type EventKind int32

const (
	EvBattlecry EventKind = iota + 1
	EvDeathrattle
	EvSwapFrontBack
	EvNormalSpell
	EvFrontUse
	EvBackUse
)

// Event 触发事件。SwapFrontBack 携带两侧是否换排。
type Event struct {
	Kind         EventKind
	TeamSwap     bool
	OppositeSwap bool
}

// Trigger 触发实体。随从牌打出时同时带随从与英雄，
// 使 SelfHero 解析到出牌者。Camp 在构造处确定（亡语触发时随从已离场）。
type Trigger struct {
	Minion *Minion
	Hero   *Hero
	Camp   model.Camp
}

// PerformResult 解释结果
type PerformResult struct {
	EffectExist         bool
	NeedDeathCheck      bool
	PreventNormalEffect bool
}

// effectsFor 取出 card 上匹配事件的效果列表。无匹配返回 nil。
func effectsFor(card *model.Card, ev Event) []model.CardEffect {
	switch ev.Kind {
	case EvBattlecry:
		return concatMinionEffects(card, model.MinionBattlecry)
	case EvDeathrattle:
		return concatMinionEffects(card, model.MinionDeathrattle)
	case EvSwapFrontBack:
		var out []model.CardEffect
		for _, ef := range card.MinionEffects(model.MinionSwapFrontBackHook) {
			if (ef.ApplyWhenTeamSwap && ev.TeamSwap) || (ef.ApplyWhenOppositeSwap && ev.OppositeSwap) {
				out = append(out, ef.Effects...)
			}
		}
		return out
	case EvNormalSpell:
		return card.SpellEffects(model.SpellNormal)
	case EvFrontUse:
		return card.SpellEffects(model.SpellFrontUse)
	case EvBackUse:
		return card.SpellEffects(model.SpellBackUse)
	default:
		return nil
	}
}

func concatMinionEffects(card *model.Card, ty model.MinionEventType) []model.CardEffect {
	var out []model.CardEffect
	for _, ef := range card.MinionEffects(ty) {
		out = append(out, ef.Effects...)
	}
	return out
}

// interpret 解释一次触发。递归深度超限视为程序性故障。
func (g *Game) interpret(ev Event, trig Trigger, pointer *EntityRef, card *model.Card) PerformResult {
	effects := effectsFor(card, ev)
	if len(effects) == 0 {
		return PerformResult{}
	}

	g.depth++
	if g.depth > MaxInterpretDepth {
		panic(fmt.Sprintf("interpret depth exceeded %d. card=%d kind=%d", MaxInterpretDepth, card.ID, ev.Kind))
	}
	defer func() { g.depth-- }()

	res := PerformResult{EffectExist: true}
	var just []*Minion // 本次解释过程中召唤的随从，JustSummon 选择器的指代

	for _, ef := range effects {
		switch ef.Op {
		case model.OpDealDamage:
			for _, t := range g.resolve(ef.Target, trig, pointer, just) {
				g.damageTarget(t, ef.Damage)
			}
			res.NeedDeathCheck = true

		case model.OpDrawCard:
			n := ef.Count
			if n <= 0 {
				n = 1
			}
			for _, p := range g.resolvePlayers(ef.Target, trig, pointer, just) {
				for i := int32(0); i < n; i++ {
					g.drawCard(p)
				}
			}

		case model.OpBuff:
			for _, m := range g.resolveMinions(ef.Target, trig, pointer, just) {
				m.AddBuff(Buff{Type: ef.BuffType, AtkBoost: ef.AtkBoost, HpBoost: ef.HpBoost})
				g.notifier.Buff(notify.BuffEvent{
					UUID: m.UUID, BuffType: ef.BuffType, AtkBoost: ef.AtkBoost, HpBoost: ef.HpBoost,
				})
			}
			if ef.HpBoost < 0 {
				res.NeedDeathCheck = true
			}

		case model.OpSummonMinion:
			camp := trig.Camp
			if ps := g.resolvePlayers(ef.Target, trig, pointer, just); len(ps) > 0 {
				camp = ps[0].Camp
			}
			card := g.catalog.GetByCode(ef.MinionCode)
			if card == nil {
				panic(fmt.Sprintf("summon unknown minion code %q", ef.MinionCode))
			}
			n := ef.Count
			if n <= 0 {
				n = 1
			}
			// summon_side 位置语义未定义，统一追加入场
			for i := int32(0); i < n; i++ {
				just = append(just, g.minionSummon(card, camp))
			}

		case model.OpSwapFrontBack:
			var ps []*Player
			if ef.SwapTeam {
				ps = append(ps, g.campPlayers(trig.Camp)...)
			}
			if ef.SwapOpposite {
				ps = append(ps, g.campPlayers(trig.Camp.Opposite())...)
			}
			if len(ps) > 0 {
				g.swapFightline(ps)
			}

		case model.OpRecoverHealth:
			for _, t := range g.resolve(ef.Target, trig, pointer, just) {
				g.damageTarget(t, -ef.Hp)
			}

		case model.OpPreventNormalEffect:
			res.PreventNormalEffect = true

		default:
			log.Warnf("unknown effect op %d on card %d, skip", ef.Op, card.ID)
		}
	}
	return res
}

// resolved 解析出的具体实体：随从或（以英雄为代表的）玩家
type resolved struct {
	minion *Minion
	player *Player
}

func (g *Game) damageTarget(t resolved, v int32) {
	if t.minion != nil {
		g.damageMinion(t.minion, v)
	}
	if t.player != nil {
		g.damageHero(t.player, v)
	}
}

// resolvePlayers 解析后只保留玩家（英雄类目标）
func (g *Game) resolvePlayers(sel model.Target, trig Trigger, pointer *EntityRef, just []*Minion) []*Player {
	var out []*Player
	for _, t := range g.resolve(sel, trig, pointer, just) {
		if t.player != nil {
			out = append(out, t.player)
		}
	}
	return out
}

// resolveMinions 解析后只保留随从
func (g *Game) resolveMinions(sel model.Target, trig Trigger, pointer *EntityRef, just []*Minion) []*Minion {
	var out []*Minion
	for _, t := range g.resolve(sel, trig, pointer, just) {
		if t.minion != nil {
			out = append(out, t.minion)
		}
	}
	return out
}

// resolve 目标选择器 -> 实体集合。可能为空（空目标是空操作）。
// 枚举顺序固定：A 阵营先于 B，战场按入场顺序，英雄按行动顺序。
func (g *Game) resolve(sel model.Target, trig Trigger, pointer *EntityRef, just []*Minion) []resolved {
	team, opp := trig.Camp, trig.Camp.Opposite()

	switch sel {
	case model.SelfMinion:
		if trig.Minion != nil {
			return []resolved{{minion: trig.Minion}}
		}
		return nil

	case model.SelfHero:
		if trig.Hero != nil {
			if p := g.playerOfHero(trig.Hero.UUID); p != nil {
				return []resolved{{player: p}}
			}
		}
		return nil

	case model.SelectTargetMinion:
		return g.resolvePointer(pointer, true, false)
	case model.SelectTargetHero:
		return g.resolvePointer(pointer, false, true)
	case model.SelectTargetEntity:
		return g.resolvePointer(pointer, true, true)

	case model.OppositeAllMinion:
		return minionSet(g.fields[opp].Minions())
	case model.OppositeFrontHero:
		return g.heroSet([]model.Camp{opp}, model.Front)
	case model.OppositeBackHero:
		return g.heroSet([]model.Camp{opp}, model.Back)
	case model.OppositeAllHero:
		return g.heroSet([]model.Camp{opp}, -1)
	case model.OppositeAllEntity:
		return append(minionSet(g.fields[opp].Minions()), g.heroSet([]model.Camp{opp}, -1)...)

	case model.TeamAllMinion:
		return minionSet(g.fields[team].Minions())
	case model.TeamFrontHero:
		return g.heroSet([]model.Camp{team}, model.Front)
	case model.TeamBackHero:
		return g.heroSet([]model.Camp{team}, model.Back)
	case model.TeamAllHero:
		return g.heroSet([]model.Camp{team}, -1)
	case model.TeamAllEntity:
		return append(minionSet(g.fields[team].Minions()), g.heroSet([]model.Camp{team}, -1)...)

	case model.AllMinion:
		return append(minionSet(g.fields[model.CampA].Minions()), minionSet(g.fields[model.CampB].Minions())...)
	case model.AllFrontHero:
		return g.heroSet(bothCamps, model.Front)
	case model.AllBackHero:
		return g.heroSet(bothCamps, model.Back)
	case model.AllHero:
		return g.heroSet(bothCamps, -1)
	case model.AllEntity:
		out := append(minionSet(g.fields[model.CampA].Minions()), minionSet(g.fields[model.CampB].Minions())...)
		return append(out, g.heroSet(bothCamps, -1)...)

	case model.JustSummon:
		return minionSet(just)

	case model.TargetNone:
		return nil

	default:
		log.Warnf("unknown target selector %d, resolve to empty", sel)
		return nil
	}
}

var bothCamps = []model.Camp{model.CampA, model.CampB}

// resolvePointer 玩家指定目标，按期望类型收窄
func (g *Game) resolvePointer(pointer *EntityRef, wantMinion, wantHero bool) []resolved {
	if pointer == nil {
		return nil
	}
	if wantMinion && pointer.Kind == RefMinion {
		if m, _ := g.findMinion(pointer.UUID); m != nil {
			return []resolved{{minion: m}}
		}
	}
	if wantHero && pointer.Kind == RefHero {
		if p := g.playerOfHero(pointer.UUID); p != nil {
			return []resolved{{player: p}}
		}
	}
	return nil
}

// heroSet 按阵营（与可选前后排）枚举英雄。line 为 -1 时不过滤。
func (g *Game) heroSet(camps []model.Camp, line model.Fightline) []resolved {
	var out []resolved
	for _, c := range camps {
		for _, p := range g.campPlayers(c) {
			if line >= 0 && p.Fightline() != line {
				continue
			}
			out = append(out, resolved{player: p})
		}
	}
	return out
}

func minionSet(ms []*Minion) []resolved {
	var out []resolved
	for _, m := range ms {
		out = append(out, resolved{minion: m})
	}
	return out
}
