package engine

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/model"
)

/*
	对局级测试。卡池和座位都在这里手工搭建，
	引擎内部函数直接调用（同包）。
*/

func testCatalog() *model.Catalog {
	return model.NewCatalogOf(
		&model.Card{
			ID: 1, Code: "grunt", Name: "小兵", Type: model.CardMinion, Cost: 1,
			Minion: &model.MinionInfo{Attack: 2, Health: 3},
		},
		&model.Card{
			ID: 2, Code: "bomber", Name: "爆破手", Type: model.CardMinion, Cost: 2,
			NeedSelectTarget: true,
			Minion: &model.MinionInfo{
				Attack: 2, Health: 2,
				Effects: []model.MinionEffect{
					{Type: model.MinionBattlecry, Effects: []model.CardEffect{
						{Op: model.OpDealDamage, Target: model.SelectTargetEntity, Damage: 2},
					}},
				},
			},
		},
		&model.Card{
			ID: 3, Code: "mother", Name: "蛛母", Type: model.CardMinion, Cost: 4,
			Minion: &model.MinionInfo{
				Attack: 3, Health: 4,
				Effects: []model.MinionEffect{
					{Type: model.MinionDeathrattle, Effects: []model.CardEffect{
						{Op: model.OpSummonMinion, MinionCode: "spider", Count: 2},
					}},
				},
			},
		},
		&model.Card{
			ID: 4, Code: "spider", Name: "幼蛛", Type: model.CardMinion, Cost: 1, Derive: true,
			Minion: &model.MinionInfo{Attack: 1, Health: 1},
		},
		&model.Card{
			ID: 5, Code: "drill", Name: "操练官", Type: model.CardMinion, Cost: 3,
			Minion: &model.MinionInfo{
				Attack: 2, Health: 4,
				Effects: []model.MinionEffect{
					{
						Type:              model.MinionSwapFrontBackHook,
						ApplyWhenTeamSwap: true,
						Effects: []model.CardEffect{
							{Op: model.OpBuff, Target: model.SelfMinion, AtkBoost: 1, HpBoost: 1},
						},
					},
				},
			},
		},
		&model.Card{
			ID: 6, Code: "spiker", Name: "倒刺手", Type: model.CardMinion, Cost: 4,
			Minion: &model.MinionInfo{
				Attack: 3, Health: 3,
				Effects: []model.MinionEffect{
					{
						Type:                  model.MinionSwapFrontBackHook,
						ApplyWhenOppositeSwap: true,
						Effects: []model.CardEffect{
							{Op: model.OpDealDamage, Target: model.OppositeAllMinion, Damage: 1},
						},
					},
				},
			},
		},
		&model.Card{
			ID: 7, Code: "ambush", Name: "伏击", Type: model.CardSpell, Cost: 2,
			Spell: &model.SpellInfo{
				Effects: []model.SpellEffect{
					{Type: model.SpellNormal, Effects: []model.CardEffect{
						{Op: model.OpDealDamage, Target: model.OppositeFrontHero, Damage: 5},
					}},
					{Type: model.SpellBackUse, Effects: []model.CardEffect{
						{Op: model.OpDealDamage, Target: model.OppositeFrontHero, Damage: 2},
						{Op: model.OpPreventNormalEffect},
					}},
				},
			},
		},
		&model.Card{
			ID: 8, Code: "mend", Name: "治疗术", Type: model.CardSpell, Cost: 1,
			NeedSelectTarget: true,
			Spell: &model.SpellInfo{
				Effects: []model.SpellEffect{
					{Type: model.SpellNormal, Effects: []model.CardEffect{
						{Op: model.OpRecoverHealth, Target: model.SelectTargetEntity, Hp: 4},
					}},
				},
			},
		},
		&model.Card{
			ID: 9, Code: "spinner", Name: "旋转者", Type: model.CardMinion, Cost: 1,
			Minion: &model.MinionInfo{
				Attack: 1, Health: 1,
				Effects: []model.MinionEffect{
					{
						Type:              model.MinionSwapFrontBackHook,
						ApplyWhenTeamSwap: true,
						Effects: []model.CardEffect{
							{Op: model.OpSwapFrontBack, SwapTeam: true},
						},
					},
				},
			},
		},
		&model.Card{
			ID: 10, Code: "recruiter", Name: "征募官", Type: model.CardMinion, Cost: 2,
			Minion: &model.MinionInfo{
				Attack: 1, Health: 2,
				Effects: []model.MinionEffect{
					{Type: model.MinionBattlecry, Effects: []model.CardEffect{
						{Op: model.OpDrawCard, Target: model.SelfHero},
						{Op: model.OpSummonMinion, MinionCode: "grunt"},
					}},
				},
			},
		},
	)
}

// fixedSeats 固定阵营偏好，行动顺序可预期：
// players[0]=a2(A后) players[1]=b2(B后) players[2]=a1(A前)? 前后排仍随种子，
// 只有阵营归属是确定的。
func fixedSeats(decks ...map[int64]int32) []PlayerConfig {
	campA, campB := model.CampA, model.CampB
	deck := func(i int) map[int64]int32 {
		if i < len(decks) {
			return decks[i]
		}
		return nil
	}
	return []PlayerConfig{
		{ID: "a1", Camp: &campA, Deck: deck(0)},
		{ID: "a2", Camp: &campA, Deck: deck(1)},
		{ID: "b1", Camp: &campB, Deck: deck(2)},
		{ID: "b2", Camp: &campB, Deck: deck(3)},
	}
}

func newTestGame(t *testing.T, n notify.Notifier, decks ...map[int64]int32) *Game {
	t.Helper()
	g, err := NewGame(Config{Catalog: testCatalog(), Seed: [32]byte{1}, Notifier: n}, fixedSeats(decks...))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func TestNewGameValidation(t *testing.T) {
	campA := model.CampA
	bad := model.Camp(7)
	cat := testCatalog()

	tests := []struct {
		name  string
		seats []PlayerConfig
	}{
		{"too few players", fixedSeats()[:3]},
		{"camp over-subscribed", []PlayerConfig{
			{ID: "p1", Camp: &campA}, {ID: "p2", Camp: &campA},
			{ID: "p3", Camp: &campA}, {ID: "p4"},
		}},
		{"invalid camp", []PlayerConfig{
			{ID: "p1", Camp: &bad}, {ID: "p2"}, {ID: "p3"}, {ID: "p4"},
		}},
		{"unknown card", fixedSeats(map[int64]int32{999: 1})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGame(Config{Catalog: cat, Seed: [32]byte{1}}, tt.seats); err == nil {
				t.Fatal("want error, got nil")
			}
		})
	}
}

func TestCampAssignment(t *testing.T) {
	g := newTestGame(t, nil)

	if len(g.Players()) != PlayerCnt {
		t.Fatalf("player count = %d", len(g.Players()))
	}
	// 行动顺序：A后 B后 A前 B前
	wantCamp := []model.Camp{model.CampA, model.CampB, model.CampA, model.CampB}
	wantLine := []model.Fightline{model.Back, model.Back, model.Front, model.Front}
	for i, p := range g.Players() {
		if p.Camp != wantCamp[i] {
			t.Errorf("players[%d] camp = %v, want %v", i, p.Camp, wantCamp[i])
		}
		if p.Fightline() != wantLine[i] {
			t.Errorf("players[%d] fightline = %v, want %v", i, p.Fightline(), wantLine[i])
		}
	}
}

func TestHeroUUIDUnique(t *testing.T) {
	g := newTestGame(t, nil)

	seen := map[int64]bool{}
	last := int64(0)
	for _, p := range g.Players() {
		if seen[p.Hero.UUID] {
			t.Fatalf("duplicate hero uuid %d", p.Hero.UUID)
		}
		seen[p.Hero.UUID] = true
		if p.Hero.UUID <= last {
			t.Fatalf("uuid not monotonic: %d after %d", p.Hero.UUID, last)
		}
		last = p.Hero.UUID
	}
	m := g.minionSummon(g.catalog.Get(1), model.CampA)
	if m.UUID <= last {
		t.Fatalf("minion uuid %d not after hero uuids", m.UUID)
	}
}

// 空牌库，全员只吃疲劳。第一个死的是行动最早的 players[0]，
// 第 8 次抽（累计 36 伤）致死，对应全局回合 36 = 7*5+1。
func TestRunFatigueOnly(t *testing.T) {
	g := newTestGame(t, nil)

	res, err := g.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Winner != model.CampB {
		t.Errorf("winner = %v, want %v", res.Winner, model.CampB)
	}
	if res.Turns != 36 {
		t.Errorf("turns = %d, want 36", res.Turns)
	}
	first := g.Players()[0]
	if !first.Hero.Dead() {
		t.Errorf("players[0] should be dead. %s", first.Desc())
	}
	if first.Tired != 8 {
		t.Errorf("tired = %d, want 8", first.Tired)
	}
	if first.Hero.Hp != 30-36 {
		t.Errorf("hp = %d, want %d", first.Hero.Hp, 30-36)
	}
}

func TestRunCancelled(t *testing.T) {
	g := newTestGame(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Run(ctx); err == nil {
		t.Fatal("want ctx error, got nil")
	}
}

// recorder 记录全部事件（顺序敏感），确定性测试用
type recorder struct {
	notify.Nop
	events []string
}

func (r *recorder) NewTurn(e notify.NewTurnEvent)             { r.log("turn", e) }
func (r *recorder) PlayerManaChange(e notify.ManaChangeEvent) { r.log("mana", e) }
func (r *recorder) PlayerDrawCard(e notify.DrawCardEvent)     { r.log("draw", e) }
func (r *recorder) PlayerUseCard(e notify.UseCardEvent)       { r.log("use", e) }
func (r *recorder) MinionSummon(e notify.MinionSummonEvent)   { r.log("summon", e) }
func (r *recorder) MinionDeath(e notify.MinionDeathEvent)     { r.log("death", e) }
func (r *recorder) DealDamage(e notify.DealDamageEvent)       { r.log("damage", e) }
func (r *recorder) GameResult(e notify.GameResultEvent)       { r.log("result", e) }

func (r *recorder) log(kind string, e any) {
	r.events = append(r.events, fmt.Sprintf("%s:%+v", kind, e))
}

// 固定种子 + 固定座位 => 整局事件序列逐条一致
func TestDeterministicReplay(t *testing.T) {
	deck := map[int64]int32{1: 2, 2: 2, 3: 1, 7: 2, 8: 1}

	replay := func() []string {
		rec := &recorder{}
		g, err := NewGame(Config{Catalog: testCatalog(), Seed: [32]byte{42}, Notifier: rec},
			fixedSeats(deck, deck, deck, deck))
		if err != nil {
			t.Fatalf("NewGame: %v", err)
		}
		if _, err := g.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return rec.events
	}

	first, second := replay(), replay()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("event sequences diverged: %d vs %d events", len(first), len(second))
	}
}

func TestTurnCapPanics(t *testing.T) {
	g := newTestGame(t, nil)
	g.turn = MaxTurn

	defer func() {
		if recover() == nil {
			t.Fatal("want panic on turn cap")
		}
	}()
	// 英雄全满血，第一次迭代即触发上限
	_, _ = g.Run(context.Background())
}
