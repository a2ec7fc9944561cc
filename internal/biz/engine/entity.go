package engine

import (
	"fmt"

	"github.com/yola1107/duel/internal/model"
)

// HandCap 手牌上限，超出的抽牌被烧掉
const HandCap = 10

/*

	运行期实体。所有实体由引擎单一持有，
	回合推进过程中不存在并发修改。

*/

// Buff 随从身上的加成记录
type Buff struct {
	Type     int32
	AtkBoost int32
	HpBoost  int32
}

// Hero 英雄。hp 允许为负（结算终止条件用），治疗不会超过上限。
type Hero struct {
	UUID      int64
	Hp        int32
	MaxHp     int32
	Fightline model.Fightline
}

// TakeDamage 造成伤害，负值为治疗。治疗超过上限时收敛到 MaxHp。
func (h *Hero) TakeDamage(v int32) {
	h.Hp -= v
	if h.Hp > h.MaxHp {
		h.Hp = h.MaxHp
	}
}

func (h *Hero) Dead() bool {
	return h.Hp <= 0
}

func (h *Hero) Desc() string {
	return fmt.Sprintf("(hero:%d hp:%d/%d %v)", h.UUID, h.Hp, h.MaxHp, h.Fightline)
}

// Minion 场上随从
type Minion struct {
	UUID  int64
	Card  *model.Card
	Atk   int32
	Hp    int32
	MaxHp int32
	Buffs []Buff
}

// TakeDamage 同 Hero：负值治疗，收敛到上限
func (m *Minion) TakeDamage(v int32) {
	m.Hp -= v
	if m.Hp > m.MaxHp {
		m.Hp = m.MaxHp
	}
}

func (m *Minion) Dead() bool {
	return m.Hp <= 0
}

// AddBuff 应用加成：正向 hp 同时提升当前与上限，
// 负向只降上限并把当前 hp 收敛到新上限。
func (m *Minion) AddBuff(b Buff) {
	m.Buffs = append(m.Buffs, b)
	m.Atk += b.AtkBoost
	if b.HpBoost >= 0 {
		m.Hp += b.HpBoost
		m.MaxHp += b.HpBoost
		return
	}
	m.MaxHp += b.HpBoost
	if m.Hp > m.MaxHp {
		m.Hp = m.MaxHp
	}
}

func (m *Minion) Desc() string {
	return fmt.Sprintf("(minion:%d card:%d atk:%d hp:%d/%d)", m.UUID, m.Card.ID, m.Atk, m.Hp, m.MaxHp)
}

// Hand 手牌：有界有序序列
type Hand struct {
	cards []*model.Card
}

// Push 入手。已满返回 false，调用方按烧牌处理。
func (h *Hand) Push(c *model.Card) bool {
	if len(h.cards) >= HandCap {
		return false
	}
	h.cards = append(h.cards, c)
	return true
}

// Remove 按位置移除并返回，越界返回 nil
func (h *Hand) Remove(idx int) *model.Card {
	if idx < 0 || idx >= len(h.cards) {
		return nil
	}
	c := h.cards[idx]
	h.cards = append(h.cards[:idx], h.cards[idx+1:]...)
	return c
}

func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards 返回手牌（只读约定）
func (h *Hand) Cards() []*model.Card {
	return h.cards
}

// Deck 牌库：构造时用对局 RNG 洗牌，抽牌从头部弹出
type Deck struct {
	cards []*model.Card
}

// Pop 抽一张，空牌库返回 nil
func (d *Deck) Pop() *model.Card {
	if len(d.cards) == 0 {
		return nil
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Battlefield 单个阵营的随从战场，保持入场顺序
type Battlefield struct {
	Camp    model.Camp
	minions []*Minion
}

func (f *Battlefield) Add(m *Minion) {
	f.minions = append(f.minions, m)
}

// Minions 返回场上随从（只读约定）
func (f *Battlefield) Minions() []*Minion {
	return f.minions
}

func (f *Battlefield) Find(uuid int64) *Minion {
	for _, m := range f.minions {
		if m.UUID == uuid {
			return m
		}
	}
	return nil
}

// RemoveDead 移除 hp<=0 的随从并按场上顺序返回
func (f *Battlefield) RemoveDead() []*Minion {
	var died []*Minion
	alive := f.minions[:0]
	for _, m := range f.minions {
		if m.Dead() {
			died = append(died, m)
		} else {
			alive = append(alive, m)
		}
	}
	f.minions = alive
	return died
}
