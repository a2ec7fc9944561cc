package engine

import (
	"context"
	"fmt"

	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/model"
)

/*

	主循环与回合推进。回合环固定 5 项：
	A后排 -> B后排 -> A前排 -> B前排 -> 全员换排。

*/

// Run 驱动对局直至终局。座位行为阻塞在 ctx 上时可取消。
// 程序性故障（回合超限、解释深度超限、未知随从 code）以 panic 抛出，由上层 runner 兜底。
func (g *Game) Run(ctx context.Context) (*Result, error) {
	g.emitGameStart()

	for _, p := range g.players {
		p.Behavior.NextStartingAction(ctx, g, p)
	}
	for _, p := range g.players {
		p.Behavior.FinishStartingAction(ctx, g, p)
	}

	for !g.Ended() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if g.turn >= MaxTurn {
			panic(fmt.Sprintf("game exceeded %d turns. %s", MaxTurn, g.Desc()))
		}
		g.runTurn(ctx)
	}

	g.result = g.settle()
	g.notifier.GameResult(notify.GameResultEvent{Winner: g.result.Winner, Turns: g.result.Turns})
	g.notifier.Flush(g)
	log.Infof("game over. winner=%v turns=%d", g.result.Winner, g.result.Turns)
	return g.result, nil
}

func (g *Game) emitGameStart() {
	var briefs []notify.PlayerBrief
	for _, p := range g.players {
		briefs = append(briefs, notify.PlayerBrief{
			PlayerID:  p.ID,
			Camp:      p.Camp,
			Fightline: p.Fightline(),
			HeroUUID:  p.Hero.UUID,
			MaxHp:     p.Hero.MaxHp,
		})
	}
	g.notifier.GameStart(notify.GameStartEvent{Players: briefs})
}

// settle 生成结果：仅一方有英雄阵亡则另一方胜，双方都有则平局
func (g *Game) settle() *Result {
	deadA, deadB := g.campDefeated(model.CampA), g.campDefeated(model.CampB)
	winner := model.Camp(-1)
	switch {
	case deadA && !deadB:
		winner = model.CampB
	case deadB && !deadA:
		winner = model.CampA
	}
	return &Result{Winner: winner, Turns: g.turn}
}

func (g *Game) runTurn(ctx context.Context) {
	g.turn++
	entry := g.ring[g.ringPos]

	if entry.swap {
		g.notifier.NewTurn(notify.NewTurnEvent{Turn: g.turn, Swap: true})
		g.swapFightline(g.players)
		g.notifier.Flush(g)
	} else {
		g.runPlayerTurn(ctx, g.players[entry.player])
	}

	g.ringPos = (g.ringPos + 1) % len(g.ring)
}

func (g *Game) runPlayerTurn(ctx context.Context, p *Player) {
	g.notifier.NewTurn(notify.NewTurnEvent{Turn: g.turn, PlayerID: p.ID})

	p.ResetMana()
	g.notifier.PlayerManaChange(notify.ManaChangeEvent{PlayerID: p.ID, Mana: p.Mana, MaxMana: p.MaxMana})

	g.drawCard(p)
	g.notifier.Flush(g)

	for !g.Ended() {
		act := p.Behavior.NextAction(ctx, g, p)
		if act.Type == ActionEndTurn {
			break
		}
		g.dispatch(p, act)
		g.notifier.Flush(g)
	}
	g.notifier.Flush(g)
}

// drawCard 玩家抽一张牌。空牌库转疲劳伤害；手牌满则烧牌。
func (g *Game) drawCard(p *Player) {
	card := p.Deck.Pop()
	if card == nil {
		p.Tired++
		g.notifier.PlayerDrawCard(notify.DrawCardEvent{PlayerID: p.ID, Kind: notify.DrawTired, Tired: p.Tired})
		p.Hero.TakeDamage(p.Tired)
		return
	}
	if p.Hand.Push(card) {
		g.notifier.PlayerDrawCard(notify.DrawCardEvent{PlayerID: p.ID, Kind: notify.DrawOK, CardID: card.ID})
		return
	}
	// 烧牌
	g.notifier.PlayerDrawCard(notify.DrawCardEvent{PlayerID: p.ID, Kind: notify.DrawFire, CardID: card.ID})
}

// swapFightline 交换给定玩家的前后排，随后对两个战场的存活随从
// 依次触发换排钩子（A 先于 B）。
func (g *Game) swapFightline(players []*Player) {
	var swapped [2]bool
	for _, p := range players {
		p.Hero.Fightline = p.Hero.Fightline.Flip()
		swapped[p.Camp] = true
		g.notifier.PlayerSwapFightline(notify.SwapFightlineEvent{
			PlayerID:  p.ID,
			HeroUUID:  p.Hero.UUID,
			Fightline: p.Hero.Fightline,
		})
	}

	need := false
	for _, f := range g.fields {
		// 钩子可能继续召唤，这里固定本次触发的快照
		minions := append([]*Minion(nil), f.minions...)
		ev := Event{
			Kind:         EvSwapFrontBack,
			TeamSwap:     swapped[f.Camp],
			OppositeSwap: swapped[f.Camp.Opposite()],
		}
		for _, m := range minions {
			res := g.interpret(ev, Trigger{Minion: m, Camp: f.Camp}, nil, m.Card)
			need = need || res.NeedDeathCheck
		}
	}
	if need {
		g.deathCheck()
	}
}

// deathCheck 死亡检查：清扫两个战场（A 先于 B，场内按入场顺序），
// 触发亡语；仅当亡语再次要求检查时重复清扫。每轮严格移除随从，必然收敛。
func (g *Game) deathCheck() {
	for {
		var died []*Minion
		var camps []model.Camp
		for _, f := range g.fields {
			for _, m := range f.RemoveDead() {
				died = append(died, m)
				camps = append(camps, f.Camp)
				g.notifier.MinionDeath(notify.MinionDeathEvent{UUID: m.UUID, Camp: f.Camp, CardID: m.Card.ID})
			}
		}
		if len(died) == 0 {
			return
		}

		again := false
		for i, m := range died {
			if len(m.Card.MinionEffects(model.MinionDeathrattle)) == 0 {
				continue
			}
			g.notifier.MinionDeathrattle(notify.MinionEffectEvent{UUID: m.UUID, CardID: m.Card.ID})
			res := g.interpret(Event{Kind: EvDeathrattle}, Trigger{Minion: m, Camp: camps[i]}, nil, m.Card)
			again = again || res.NeedDeathCheck
		}
		if !again {
			return
		}
	}
}

// minionSummon 召唤随从（不触发战吼）。随从牌缺少随从数据视为程序性故障。
func (g *Game) minionSummon(card *model.Card, camp model.Camp) *Minion {
	if card.Minion == nil {
		panic(fmt.Sprintf("card %d %q has no minion info", card.ID, card.Code))
	}
	m := &Minion{
		UUID:  g.allocUUID(),
		Card:  card,
		Atk:   card.Minion.Attack,
		Hp:    card.Minion.Health,
		MaxHp: card.Minion.Health,
	}
	g.fields[camp].Add(m)
	g.notifier.MinionSummon(notify.MinionSummonEvent{
		UUID: m.UUID, Camp: camp, CardID: card.ID, Atk: m.Atk, Hp: m.Hp, MaxHp: m.MaxHp,
	})
	return m
}

// minionSummonWithBattlecry 打出随从牌：先入场，再触发战吼。
// 战吼以 MinionAndHero 触发，使 SelfHero 解析到出牌者。
func (g *Game) minionSummonWithBattlecry(card *model.Card, p *Player, pointer *EntityRef) {
	m := g.minionSummon(card, p.Camp)
	if len(card.MinionEffects(model.MinionBattlecry)) == 0 {
		return
	}
	g.notifier.MinionBattlecry(notify.MinionEffectEvent{UUID: m.UUID, CardID: card.ID})
	res := g.interpret(Event{Kind: EvBattlecry}, Trigger{Minion: m, Hero: p.Hero, Camp: p.Camp}, pointer, card)
	if res.NeedDeathCheck {
		g.deathCheck()
	}
}
