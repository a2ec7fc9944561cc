package model

import (
	"fmt"

	"github.com/yola1107/kratos/v2/log"
)

// Provider 卡牌数据提供方（由 data 层实现）
type Provider interface {
	LoadAll() ([]*Card, error)
}

// Catalog 卡牌目录：id -> 只读卡牌模型。加载一次后不再修改。
type Catalog struct {
	cards map[int64]*Card
}

// NewCatalog 从 Provider 构建目录
func NewCatalog(p Provider) (*Catalog, error) {
	cards, err := p.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	m := make(map[int64]*Card, len(cards))
	for _, c := range cards {
		if c == nil {
			continue
		}
		if _, ok := m[c.ID]; ok {
			log.Warnf("duplicate card id=%d code=%q, keep first", c.ID, c.Code)
			continue
		}
		m[c.ID] = c
	}

	log.Infof("card catalog loaded. size=%d", len(m))
	return &Catalog{cards: m}, nil
}

// NewCatalogOf 直接从卡牌列表构建目录（测试用）
func NewCatalogOf(cards ...*Card) *Catalog {
	m := make(map[int64]*Card, len(cards))
	for _, c := range cards {
		m[c.ID] = c
	}
	return &Catalog{cards: m}
}

// Get 按 id 查找，不存在返回 nil
func (c *Catalog) Get(id int64) *Card {
	return c.cards[id]
}

// GetByCode 按 code 遍历查找（SummonMinion 效果使用）
func (c *Catalog) GetByCode(code string) *Card {
	for _, card := range c.cards {
		if card.Code == code {
			return card
		}
	}
	return nil
}

func (c *Catalog) Size() int {
	return len(c.cards)
}

// StarterPool 返回可进入初始牌库的卡牌（排除衍生牌）
func (c *Catalog) StarterPool() []*Card {
	out := make([]*Card, 0, len(c.cards))
	for _, card := range c.cards {
		if !card.Derive {
			out = append(out, card)
		}
	}
	return out
}
