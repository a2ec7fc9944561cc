package room

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
)

// Key 房间主键：(游戏类型, 房间号)
type Key struct {
	GameType int32
	RoomID   int32
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%d", k.GameType, k.RoomID)
}

// Seat 座位
type Seat struct {
	UserID   string          `json:"userId"`
	Ready    bool            `json:"ready"`
	LostConn bool            `json:"lostConn"`
	Extra    json.RawMessage `json:"extra,omitempty"` // 业务座位数据（牌库、阵营偏好等），本层不解释
}

// BizRoom 业务房间能力（具体玩法实现）
type BizRoom interface {
	// MaxSeat 座位上限
	MaxSeat() int
	// CheckStart 当前人数是否满足开局
	CheckStart(seatCnt int) bool
	// DoGameLogic 驱动一局游戏直至结束（runner 任务中调用）
	DoGameLogic(r *Room)
	// PlayerInput 对局内玩家输入（载荷不在本层解释）
	PlayerInput(userID, name string, payload []byte) bool
}

// Room 一个房间。座位操作持房间锁；runner 只在读取座位快照时短暂持锁，
// 之后立即释放，避免对局运行期间饿死 join/leave。
type Room struct {
	mu sync.Mutex

	key    Key
	public bool
	seats  []*Seat

	playerLock bool // 对局运行中，座位冻结

	biz BizRoom
	rng *rand.Rand // 房间内随机源，由注册表的全局源派生
}

func (r *Room) Key() Key {
	return r.key
}

// Rand 房间内随机源
func (r *Room) Rand() *rand.Rand {
	return r.rng
}

// Biz 业务房间
func (r *Room) Biz() BizRoom {
	return r.biz
}

// Public 是否公开（可被匹配）
func (r *Room) Public() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.public
}

// Locked 对局是否运行中
func (r *Room) Locked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerLock
}

// Seats 座位快照（副本，含 Extra 引用）
func (r *Room) Seats() []Seat {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Seat, 0, len(r.seats))
	for _, s := range r.seats {
		out = append(out, *s)
	}
	return out
}

// SeatCnt 当前座位数
func (r *Room) SeatCnt() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seats)
}

// Empty 是否空房
func (r *Room) Empty() bool {
	return r.SeatCnt() == 0
}

// SetLostConn 标记座位断线状态（对局结束后被清理）
func (r *Room) SetLostConn(userID string, lost bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.seats {
		if s.UserID == userID {
			s.LostConn = lost
			return true
		}
	}
	return false
}

func (r *Room) seatOf(userID string) *Seat {
	for _, s := range r.seats {
		if s.UserID == userID {
			return s
		}
	}
	return nil
}

// allReady 全员准备（无人时不算）
func (r *Room) allReady() bool {
	if len(r.seats) == 0 {
		return false
	}
	for _, s := range r.seats {
		if !s.Ready {
			return false
		}
	}
	return true
}

func (r *Room) Desc() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("(room:%s public:%v lock:%v seats:%d)", r.key, r.public, r.playerLock, len(r.seats))
}
