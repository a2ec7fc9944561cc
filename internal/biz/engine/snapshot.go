package engine

import (
	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/model"
)

/*

	视角快照：Flush 时由 Notifier 回调。
	对手手牌只下发数量，本人手牌下发明细。

*/

var _ notify.GameViewer = (*Game)(nil)

// ViewerIDs 观战视角集合（当前为四个座位）
func (g *Game) ViewerIDs() []string {
	ids := make([]string, 0, len(g.players))
	for _, p := range g.players {
		ids = append(ids, p.ID)
	}
	return ids
}

// Snapshot 生成指定视角的对局快照
func (g *Game) Snapshot(viewerID string) *notify.SyncGameStatus {
	snap := &notify.SyncGameStatus{Turn: g.turn}

	for _, p := range g.players {
		st := notify.PlayerStatus{
			PlayerID:  p.ID,
			Camp:      p.Camp,
			Fightline: p.Fightline(),
			HeroUUID:  p.Hero.UUID,
			Hp:        p.Hero.Hp,
			MaxHp:     p.Hero.MaxHp,
			Mana:      p.Mana,
			MaxMana:   p.MaxMana,
			Tired:     p.Tired,
			HandCount: int32(p.Hand.Len()),
			DeckCount: int32(p.Deck.Len()),
		}
		if p.ID == viewerID {
			for _, c := range p.Hand.Cards() {
				st.HandCards = append(st.HandCards, notify.HandCardView{
					CardID: c.ID, Code: c.Code, Cost: c.Cost,
				})
			}
		}
		snap.Players = append(snap.Players, st)
	}

	for _, camp := range []model.Camp{model.CampA, model.CampB} {
		for _, m := range g.fields[camp].Minions() {
			snap.Minions = append(snap.Minions, notify.MinionStatus{
				UUID: m.UUID, Camp: camp, CardID: m.Card.ID, Atk: m.Atk, Hp: m.Hp, MaxHp: m.MaxHp,
			})
		}
	}
	return snap
}
