package engine

import (
	"testing"

	"github.com/yola1107/duel/internal/model"
)

func TestBattlecryDamage(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.Players()[2]       // A前
	target := g.Players()[3]  // B前
	card := g.catalog.Get(2)  // 战吼：指定目标 2 伤

	p.Hand.Push(card)
	g.dispatch(p, PlayerTurnAction{
		Type:      ActionPlayCard,
		HandIndex: 0,
		Target:    &EntityRef{Kind: RefHero, UUID: target.Hero.UUID},
	})

	if target.Hero.Hp != 28 {
		t.Errorf("target hp = %d, want 28", target.Hero.Hp)
	}
	if p.Mana != -card.Cost {
		t.Errorf("mana = %d, want %d (透支)", p.Mana, -card.Cost)
	}
	if len(g.Field(model.CampA).Minions()) != 1 {
		t.Errorf("field A minions = %d, want 1", len(g.Field(model.CampA).Minions()))
	}
	if p.Hand.Len() != 0 {
		t.Errorf("hand len = %d, want 0", p.Hand.Len())
	}
}

// 指定目标缺失时战吼落空，召唤本身不受影响
func TestBattlecryMissingTarget(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.Players()[2]
	p.Hand.Push(g.catalog.Get(2))

	g.dispatch(p, PlayerTurnAction{Type: ActionPlayCard, HandIndex: 0})

	if len(g.Field(model.CampA).Minions()) != 1 {
		t.Errorf("minion should still be summoned")
	}
	for _, q := range g.Players() {
		if q.Hero.Hp != 30 {
			t.Errorf("no hero should be hurt, %s", q.Desc())
		}
	}
}

// 效果省略数量时按 1 结算，抽牌与召唤一致
func TestBattlecryDefaultCount(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.Players()[2]
	p.Deck = &Deck{cards: []*model.Card{g.catalog.Get(1)}}
	p.Hand.Push(g.catalog.Get(10)) // 战吼：抽一张 + 召唤 grunt，数量均未填

	g.dispatch(p, PlayerTurnAction{Type: ActionPlayCard, HandIndex: 0})

	if n := len(g.Field(model.CampA).Minions()); n != 2 {
		t.Fatalf("field A minions = %d, want 2 (召唤者 + grunt)", n)
	}
	if p.Hand.Len() != 1 {
		t.Errorf("hand len = %d, want 1", p.Hand.Len())
	}
	if p.Deck.Len() != 0 {
		t.Errorf("deck len = %d, want 0", p.Deck.Len())
	}
}

// 后排施放触发 BackUse 并阻止 Normal；前排施放只走 Normal
func TestSpellFrontBackGating(t *testing.T) {
	g := newTestGame(t, nil)
	back, front := g.Players()[0], g.Players()[2] // 同属 A
	bFront := g.Players()[3]
	card := g.catalog.Get(7) // ambush

	g.castSpell(back, card, nil)
	if bFront.Hero.Hp != 28 {
		t.Fatalf("back cast: hp = %d, want 28 (BackUse 2 伤且 Normal 被阻止)", bFront.Hero.Hp)
	}

	g.castSpell(front, card, nil)
	if bFront.Hero.Hp != 23 {
		t.Fatalf("front cast: hp = %d, want 23 (仅 Normal 5 伤)", bFront.Hero.Hp)
	}
}

func TestHealClampedByCast(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.Players()[0]
	mend := g.catalog.Get(8)
	ref := &EntityRef{Kind: RefHero, UUID: p.Hero.UUID}

	g.damageHero(p, 6) // 24
	g.castSpell(p, mend, ref)
	if p.Hero.Hp != 28 {
		t.Fatalf("hp = %d, want 28", p.Hero.Hp)
	}
	g.castSpell(p, mend, ref) // 28+4 收敛到 30
	if p.Hero.Hp != 30 {
		t.Fatalf("hp = %d, want 30 (不超过上限)", p.Hero.Hp)
	}
}

func TestDeathrattleSummons(t *testing.T) {
	g := newTestGame(t, nil)
	mother := g.minionSummon(g.catalog.Get(3), model.CampA)

	g.damageMinion(mother, 4)
	g.deathCheck()

	ms := g.Field(model.CampA).Minions()
	if len(ms) != 2 {
		t.Fatalf("field A minions = %d, want 2 幼蛛", len(ms))
	}
	for _, m := range ms {
		if m.Card.Code != "spider" {
			t.Errorf("unexpected minion %s", m.Desc())
		}
	}
}

// 己方换排触发 TeamSwap 钩子，对方战场同时收到 OppositeSwap
func TestSwapFightlineHooks(t *testing.T) {
	g := newTestGame(t, nil)
	drill := g.minionSummon(g.catalog.Get(5), model.CampA)  // TeamSwap: 自身 +1/+1
	spiker := g.minionSummon(g.catalog.Get(6), model.CampB) // OppositeSwap: 对面全体随从 1 伤

	g.swapFightline(g.campPlayers(model.CampA))

	// A 先触发（+1/+1 = 3/5），随后 B 的钩子打 1 伤
	if drill.Atk != 3 || drill.Hp != 4 {
		t.Errorf("drill = %s, want atk 3 hp 4", drill.Desc())
	}
	if spiker.Hp != 3 {
		t.Errorf("spiker should be untouched, %s", spiker.Desc())
	}
	// 只有 A 的英雄换排
	if g.Players()[0].Fightline() != model.Front {
		t.Errorf("players[0] should be front after swap")
	}
	if g.Players()[1].Fightline() != model.Back {
		t.Errorf("players[1] should stay back")
	}
}

// 连换两次恢复原位
func TestDoubleSwapRestores(t *testing.T) {
	g := newTestGame(t, nil)
	before := make([]model.Fightline, PlayerCnt)
	for i, p := range g.Players() {
		before[i] = p.Fightline()
	}

	g.swapFightline(g.Players())
	g.swapFightline(g.Players())

	for i, p := range g.Players() {
		if p.Fightline() != before[i] {
			t.Errorf("players[%d] fightline changed after double swap", i)
		}
	}
}

// 换排钩子再触发换排，递归到深度上限必须 panic
func TestInterpretDepthPanics(t *testing.T) {
	g := newTestGame(t, nil)
	g.minionSummon(g.catalog.Get(9), model.CampA) // 钩子：TeamSwap -> 再次 SwapTeam

	defer func() {
		if recover() == nil {
			t.Fatal("want panic on interpret depth")
		}
	}()
	g.swapFightline(g.campPlayers(model.CampA))
}

// 死亡检查对同一批尸体只触发一次亡语
func TestDeathCheckConverges(t *testing.T) {
	g := newTestGame(t, nil)
	mother := g.minionSummon(g.catalog.Get(3), model.CampA)
	grunt := g.minionSummon(g.catalog.Get(1), model.CampB)

	g.damageMinion(mother, 9)
	g.damageMinion(grunt, 9)
	g.deathCheck()

	if n := len(g.Field(model.CampA).Minions()); n != 2 {
		t.Errorf("field A = %d, want 2", n)
	}
	if n := len(g.Field(model.CampB).Minions()); n != 0 {
		t.Errorf("field B = %d, want 0", n)
	}
	// 幼蛛满血存活，亡语没有被重复解释
	for _, m := range g.Field(model.CampA).Minions() {
		if m.Hp != 1 {
			t.Errorf("spider hp = %d, want 1", m.Hp)
		}
	}
}

func TestMinionAttackTrade(t *testing.T) {
	g := newTestGame(t, nil)
	a := g.minionSummon(g.catalog.Get(1), model.CampA) // 2/3
	b := g.minionSummon(g.catalog.Get(3), model.CampB) // 3/4

	g.minionAttack(g.Players()[0], PlayerTurnAction{
		Type:     ActionMinionAttack,
		Attacker: a.UUID,
		Target:   &EntityRef{Kind: RefMinion, UUID: b.UUID},
	})

	if a.Hp != 0 {
		t.Errorf("attacker hp = %d, want 0 (吃 3 反伤)", a.Hp)
	}
	if b.Hp != 2 {
		t.Errorf("defender hp = %d, want 2", b.Hp)
	}
	if len(g.Field(model.CampA).Minions()) != 0 {
		t.Errorf("dead attacker should be swept")
	}
}

func TestMinionAttackHeroNoRetaliation(t *testing.T) {
	g := newTestGame(t, nil)
	a := g.minionSummon(g.catalog.Get(1), model.CampA) // 2/3
	target := g.Players()[1]

	g.minionAttack(g.Players()[0], PlayerTurnAction{
		Type:     ActionMinionAttack,
		Attacker: a.UUID,
		Target:   &EntityRef{Kind: RefHero, UUID: target.Hero.UUID},
	})

	if target.Hero.Hp != 28 {
		t.Errorf("hero hp = %d, want 28", target.Hero.Hp)
	}
	if a.Hp != 3 {
		t.Errorf("attacker hp = %d, want 3 (攻击英雄无反击)", a.Hp)
	}
}

func TestPlayCardBadIndexIsNoop(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.Players()[0]

	g.dispatch(p, PlayerTurnAction{Type: ActionPlayCard, HandIndex: 3})

	if p.Mana != 0 {
		t.Errorf("mana = %d, want 0", p.Mana)
	}
}

func TestResolveSelectors(t *testing.T) {
	g := newTestGame(t, nil)
	ma := g.minionSummon(g.catalog.Get(1), model.CampA)
	g.minionSummon(g.catalog.Get(1), model.CampB)
	trigA := Trigger{Minion: ma, Camp: model.CampA}

	tests := []struct {
		name    string
		sel     model.Target
		minions int
		heroes  int
	}{
		{"none", model.TargetNone, 0, 0},
		{"self minion", model.SelfMinion, 1, 0},
		{"opposite minions", model.OppositeAllMinion, 1, 0},
		{"team minions", model.TeamAllMinion, 1, 0},
		{"all minions", model.AllMinion, 2, 0},
		{"opposite heroes", model.OppositeAllHero, 0, 2},
		{"team front hero", model.TeamFrontHero, 0, 1},
		{"all heroes", model.AllHero, 0, 4},
		{"all entities", model.AllEntity, 2, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.resolve(tt.sel, trigA, nil, nil)
			var m, h int
			for _, r := range got {
				if r.minion != nil {
					m++
				}
				if r.player != nil {
					h++
				}
			}
			if m != tt.minions || h != tt.heroes {
				t.Errorf("resolve(%v) = %d minions %d heroes, want %d/%d", tt.sel, m, h, tt.minions, tt.heroes)
			}
		})
	}
}
