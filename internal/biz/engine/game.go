package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/model"
)

const (
	// MaxTurn 回合数硬上限，超过视为程序性故障
	MaxTurn = 1000
	// MaxInterpretDepth 效果解释递归深度上限
	MaxInterpretDepth = 20
	// CampSeatCnt 每阵营座位数
	CampSeatCnt = 2
	// PlayerCnt 对局固定 4 人（2v2）
	PlayerCnt = 4
)

// Config 对局配置
type Config struct {
	Catalog  *model.Catalog
	Seed     [32]byte // 对局 RNG 种子，固定种子可复现整局事件序列
	Notifier notify.Notifier
}

// PlayerConfig 单个座位配置
type PlayerConfig struct {
	ID       string
	MaxHp    int32
	Camp     *model.Camp     // 偏好阵营，可空
	Deck     map[int64]int32 // 卡牌ID -> 数量
	Behavior Behavior
}

// ringEntry 回合环条目：4 个玩家回合 + 1 个换排回合
type ringEntry struct {
	swap   bool
	player int // players 下标，swap 时无效
}

// Game 一局 2v2 对局。单一 runner 驱动，内部状态不做并发访问。
type Game struct {
	catalog  *model.Catalog
	rng      *rand.Rand
	notifier notify.Notifier

	nextUUID int64

	// players 按行动顺序存放：A后排, B后排, A前排, B前排
	players []*Player
	fields  [2]*Battlefield // 下标即 Camp

	turn    int32
	ring    []ringEntry
	ringPos int

	depth int32 // 解释器递归深度

	result *Result
}

// Result 对局结果
type Result struct {
	Winner model.Camp // -1 平局（双方英雄同时阵亡）
	Turns  int32
}

// NewGame 构建对局。座位数据非法（人数、阵营偏好超员、牌库引用不存在的卡）返回错误。
func NewGame(cfg Config, seats []PlayerConfig) (*Game, error) {
	if len(seats) != PlayerCnt {
		return nil, fmt.Errorf("player count must be %d, got %d", PlayerCnt, len(seats))
	}
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("nil catalog")
	}
	if cfg.Notifier == nil {
		cfg.Notifier = notify.Nop{}
	}

	g := &Game{
		catalog:  cfg.Catalog,
		rng:      rand.New(rand.NewChaCha8(cfg.Seed)),
		notifier: cfg.Notifier,
		fields: [2]*Battlefield{
			{Camp: model.CampA},
			{Camp: model.CampB},
		},
	}

	camps, err := g.assignCamps(seats)
	if err != nil {
		return nil, err
	}

	// 阵营内洗牌决定前后排
	for i := range camps {
		if g.rng.IntN(2) == 1 {
			camps[i][0], camps[i][1] = camps[i][1], camps[i][0]
		}
	}

	// 行动顺序：A后排, B后排, A前排, B前排
	order := []struct {
		camp model.Camp
		line model.Fightline
		cfg  PlayerConfig
	}{
		{model.CampA, model.Back, camps[0][1]},
		{model.CampB, model.Back, camps[1][1]},
		{model.CampA, model.Front, camps[0][0]},
		{model.CampB, model.Front, camps[1][0]},
	}

	for _, o := range order {
		p, err := g.newPlayer(o.cfg, o.camp, o.line)
		if err != nil {
			return nil, err
		}
		g.players = append(g.players, p)
	}

	// 回合环：4 个玩家回合 + 换排
	for i := range g.players {
		g.ring = append(g.ring, ringEntry{player: i})
	}
	g.ring = append(g.ring, ringEntry{swap: true})

	return g, nil
}

// assignCamps 按偏好分配阵营：camps[0]=A 两人, camps[1]=B 两人，
// 未指定偏好的洗牌后依次补位。
func (g *Game) assignCamps(seats []PlayerConfig) ([2][2]PlayerConfig, error) {
	var out [2][2]PlayerConfig
	var cnt [2]int
	var rest []PlayerConfig

	for _, s := range seats {
		if s.Camp == nil {
			rest = append(rest, s)
			continue
		}
		c := *s.Camp
		if c != model.CampA && c != model.CampB {
			return out, fmt.Errorf("invalid camp preference %d for %q", c, s.ID)
		}
		if cnt[c] >= CampSeatCnt {
			return out, fmt.Errorf("camp %v over-subscribed", c)
		}
		out[c][cnt[c]] = s
		cnt[c]++
	}

	g.rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	for _, s := range rest {
		switch {
		case cnt[model.CampA] < CampSeatCnt:
			out[model.CampA][cnt[model.CampA]] = s
			cnt[model.CampA]++
		default:
			out[model.CampB][cnt[model.CampB]] = s
			cnt[model.CampB]++
		}
	}
	return out, nil
}

func (g *Game) newPlayer(cfg PlayerConfig, camp model.Camp, line model.Fightline) (*Player, error) {
	deck, err := g.buildDeck(cfg.Deck)
	if err != nil {
		return nil, fmt.Errorf("player %q: %w", cfg.ID, err)
	}
	behavior := cfg.Behavior
	if behavior == nil {
		behavior = AIBehavior{}
	}
	maxHp := cfg.MaxHp
	if maxHp <= 0 {
		maxHp = 30
	}
	return &Player{
		ID:   cfg.ID,
		Camp: camp,
		Hero: &Hero{
			UUID:      g.allocUUID(),
			Hp:        maxHp,
			MaxHp:     maxHp,
			Fightline: line,
		},
		Hand:     &Hand{},
		Deck:     deck,
		Behavior: behavior,
	}, nil
}

// buildDeck 展开 (卡牌ID, 数量) 并用对局 RNG 洗牌
func (g *Game) buildDeck(comp map[int64]int32) (*Deck, error) {
	// map 遍历顺序不稳定，先按 id 排序保证可复现
	ids := make([]int64, 0, len(comp))
	for id := range comp {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var cards []*model.Card
	for _, id := range ids {
		card := g.catalog.Get(id)
		if card == nil {
			return nil, fmt.Errorf("unknown card id %d", id)
		}
		for i := int32(0); i < comp[id]; i++ {
			cards = append(cards, card)
		}
	}
	g.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return &Deck{cards: cards}, nil
}

// allocUUID 对局内实体 ID，单调递增
func (g *Game) allocUUID() int64 {
	g.nextUUID++
	return g.nextUUID
}

// Players 按行动顺序返回玩家
func (g *Game) Players() []*Player {
	return g.players
}

// Turn 当前回合计数
func (g *Game) Turn() int32 {
	return g.turn
}

// Field 指定阵营的战场
func (g *Game) Field(c model.Camp) *Battlefield {
	return g.fields[c]
}

// Result 对局结果，未结束返回 nil
func (g *Game) Result() *Result {
	return g.result
}

// Notifier 事件出口
func (g *Game) Notifier() notify.Notifier {
	return g.notifier
}

// PlayerByID 按用户 ID 查找
func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// playerOfHero 按英雄 uuid 查找玩家
func (g *Game) playerOfHero(uuid int64) *Player {
	for _, p := range g.players {
		if p.Hero.UUID == uuid {
			return p
		}
	}
	return nil
}

// findMinion 在两个战场上查找随从
func (g *Game) findMinion(uuid int64) (*Minion, model.Camp) {
	for _, f := range g.fields {
		if m := f.Find(uuid); m != nil {
			return m, f.Camp
		}
	}
	return nil, 0
}

// campPlayers 指定阵营的玩家（行动顺序）
func (g *Game) campPlayers(c model.Camp) []*Player {
	var out []*Player
	for _, p := range g.players {
		if p.Camp == c {
			out = append(out, p)
		}
	}
	return out
}

// Ended 任一英雄 hp<=0 即终局
func (g *Game) Ended() bool {
	for _, p := range g.players {
		if p.Hero.Dead() {
			return true
		}
	}
	return false
}

// campDefeated 阵营是否有英雄阵亡
func (g *Game) campDefeated(c model.Camp) bool {
	for _, p := range g.campPlayers(c) {
		if p.Hero.Dead() {
			return true
		}
	}
	return false
}

func (g *Game) Desc() string {
	return fmt.Sprintf("(turn:%d ring:%d fieldA:%d fieldB:%d depth:%d)",
		g.turn, g.ringPos, len(g.fields[0].minions), len(g.fields[1].minions), g.depth)
}
