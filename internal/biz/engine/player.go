package engine

import (
	"fmt"

	"github.com/yola1107/duel/internal/model"
)

// ManaCap 法力上限
const ManaCap = 10

// Player 对局内玩家
type Player struct {
	ID   string // 用户ID或自定义ID
	Camp model.Camp

	Hero *Hero
	Hand *Hand
	Deck *Deck

	// Mana 回合内允许透支为负（规则设计如此，非缺陷）；
	// 每回合开始重置为 MaxMana。
	Mana    int32
	MaxMana int32

	Tired int32 // 疲劳计数

	Behavior Behavior
}

// Fightline 玩家当前前后排（随英雄）
func (p *Player) Fightline() model.Fightline {
	return p.Hero.Fightline
}

// ResetMana 回合开始重置：上限+1（封顶10），当前值回满
func (p *Player) ResetMana() {
	if p.MaxMana < ManaCap {
		p.MaxMana++
	}
	p.Mana = p.MaxMana
}

func (p *Player) Desc() string {
	return fmt.Sprintf("(%s %v %v hp:%d/%d mana:%d/%d hand:%d deck:%d tired:%d)",
		p.ID, p.Camp, p.Fightline(), p.Hero.Hp, p.Hero.MaxHp, p.Mana, p.MaxMana,
		p.Hand.Len(), p.Deck.Len(), p.Tired)
}
