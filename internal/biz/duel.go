package biz

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"encoding/json"
	"math/rand"

	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz/engine"
	"github.com/yola1107/duel/internal/biz/inbox"
	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/biz/room"
	"github.com/yola1107/duel/internal/model"
)

// 默认牌库张数与同名卡上限
const (
	deckSize    = 30
	deckCopyCap = 2
)

// seatExtra 入座时携带的对局参数
type seatExtra struct {
	MaxHp int32           `json:"maxHp,omitempty"`
	Camp  *int32          `json:"camp,omitempty"` // 阵营偏好 0/1
	Deck  map[int64]int32 `json:"deck,omitempty"` // 卡牌ID -> 数量
	Robot bool            `json:"robot,omitempty"`
}

// duelRoom 2v2 卡牌对战的业务房间
type duelRoom struct {
	uc   *Usecase
	room *room.Room
}

var _ room.BizRoom = (*duelRoom)(nil)

func (uc *Usecase) newBizRoom(gameType int32, r *room.Room) room.BizRoom {
	return &duelRoom{uc: uc, room: r}
}

func (d *duelRoom) MaxSeat() int {
	return int(d.uc.rc.MaxSeat)
}

func (d *duelRoom) CheckStart(seatCnt int) bool {
	return seatCnt == engine.PlayerCnt
}

// PlayerInput 对局内输入直接投递输入管理器
func (d *duelRoom) PlayerInput(userID, name string, payload []byte) bool {
	return d.uc.inbox.PlayerInput(userID, inbox.Message{Name: name, Payload: payload})
}

// DoGameLogic 驱动一局完整对局。runner 协程内同步执行。
func (d *duelRoom) DoGameLogic(r *room.Room) {
	seats := r.Seats()
	cfgs := make([]engine.PlayerConfig, 0, len(seats))
	for _, s := range seats {
		cfgs = append(cfgs, d.seatConfig(r, s))
	}

	g, err := engine.NewGame(engine.Config{
		Catalog:  d.uc.catalog,
		Seed:     gameSeed(r.Rand()),
		Notifier: notify.NewBuffered(d.uc),
	}, cfgs)
	if err != nil {
		log.Errorf("new game failed. %s err=%v", r.Desc(), err)
		return
	}

	result, err := g.Run(context.Background())
	if err != nil {
		log.Errorf("game run failed. %s err=%v", r.Desc(), err)
		return
	}
	log.Infof("game over. %s winner=%v turns=%d", r.Key(), result.Winner, result.Turns)
}

// seatConfig 解析座位参数，缺省项补齐
func (d *duelRoom) seatConfig(r *room.Room, s room.Seat) engine.PlayerConfig {
	var extra seatExtra
	if len(s.Extra) > 0 {
		if err := json.Unmarshal(s.Extra, &extra); err != nil {
			log.Warnf("bad seat extra. user=%s err=%v", s.UserID, err)
		}
	}

	cfg := engine.PlayerConfig{
		ID:    s.UserID,
		MaxHp: extra.MaxHp,
		Deck:  extra.Deck,
	}
	if cfg.MaxHp <= 0 {
		cfg.MaxHp = d.uc.rc.DefaultMaxHp
	}
	if extra.Camp != nil {
		c := model.Camp(*extra.Camp)
		if c == model.CampA || c == model.CampB {
			cfg.Camp = &c
		}
	}
	if len(cfg.Deck) == 0 {
		cfg.Deck = randomDeck(r.Rand(), d.uc.catalog)
	}
	if extra.Robot {
		cfg.Behavior = engine.AIBehavior{}
	} else {
		cfg.Behavior = newSocketBehavior(d.uc, s.UserID)
	}
	return cfg
}

// randomDeck 从起手卡池随机凑一副牌，同名不超过上限
func randomDeck(rng *rand.Rand, catalog *model.Catalog) map[int64]int32 {
	pool := catalog.StarterPool()
	deck := make(map[int64]int32)
	if len(pool) == 0 {
		return deck
	}
	total := 0
	for total < deckSize {
		c := pool[rng.Intn(len(pool))]
		if deck[c.ID] >= deckCopyCap {
			if total >= len(pool)*deckCopyCap {
				break
			}
			continue
		}
		deck[c.ID]++
		total++
	}
	return deck
}

// gameSeed 对局种子。优先取系统熵，失败时退化到房间 RNG。
func gameSeed(rng *rand.Rand) [32]byte {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		log.Warnf("crypto seed failed, fallback to room rng. err=%v", err)
		for i := 0; i < len(seed); i += 8 {
			binary.LittleEndian.PutUint64(seed[i:], rng.Uint64())
		}
	}
	return seed
}
