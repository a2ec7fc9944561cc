package room

import (
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/yola1107/kratos/v2/library/work"
	"github.com/yola1107/kratos/v2/library/xgo"
	"github.com/yola1107/kratos/v2/log"
)

// 房间号区间 [100000, 1000000)
const (
	roomIDMin = 100000
	roomIDMax = 1000000
)

// Broadcast 房间通知出口（房间变化与聊天），对本层不透明。
// 投递失败只记录，不影响生命周期。
type Broadcast interface {
	RoomCommonChange(key Key, seats []Seat)
	RoomChat(key Key, sender string, receivers []string, content string) error
}

// BizFactory 按游戏类型为新房间创建业务房间
type BizFactory func(gameType int32, r *Room) BizRoom

// Registry 进程级房间表。注册表互斥锁保护所有表变更
// （插入、删除、mate 的查找后进入）。
type Registry struct {
	mu    sync.Mutex
	rooms map[Key]*Room
	rng   *rand.Rand // 房间号分配

	loop      work.ITaskLoop
	broadcast Broadcast
	factory   BizFactory
}

func NewRegistry(loop work.ITaskLoop, broadcast Broadcast, factory BizFactory) *Registry {
	return &Registry{
		rooms:     make(map[Key]*Room),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		loop:      loop,
		broadcast: broadcast,
		factory:   factory,
	}
}

// Create 分配房间号并登记
func (reg *Registry) Create(gameType int32) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.createLocked(gameType)
}

func (reg *Registry) createLocked(gameType int32) (*Room, error) {
	key := Key{GameType: gameType}
	for {
		key.RoomID = roomIDMin + reg.rng.Int31n(roomIDMax-roomIDMin)
		if _, used := reg.rooms[key]; !used {
			break
		}
	}

	r := &Room{
		key: key,
		rng: rand.New(rand.NewSource(reg.rng.Int63())),
	}
	if reg.factory == nil {
		return nil, ErrInternal
	}
	r.biz = reg.factory(gameType, r)
	if r.biz == nil {
		return nil, ErrInternal
	}

	reg.rooms[key] = r
	log.Infof("room created. %s", key)
	return r, nil
}

// Get 查找房间
func (reg *Registry) Get(gameType, roomID int32) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return reg.rooms[Key{GameType: gameType, RoomID: roomID}]
}

// release 从表中摘除（空房时）
func (reg *Registry) release(r *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if cur, ok := reg.rooms[r.key]; ok && cur == r {
		delete(reg.rooms, r.key)
		log.Infof("room released. %s", r.key)
	}
}

// Join 入座。成功后广播并尝试开局。
func (reg *Registry) Join(r *Room, userID string, extra json.RawMessage) error {
	if r == nil {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	switch {
	case r.playerLock:
		r.mu.Unlock()
		return ErrPlayerLock
	case r.seatOf(userID) != nil:
		r.mu.Unlock()
		return ErrHasBeenJoin
	case len(r.seats) >= r.biz.MaxSeat():
		r.mu.Unlock()
		return ErrRoomFull
	}
	r.seats = append(r.seats, &Seat{UserID: userID, Extra: extra})
	r.mu.Unlock()

	log.Infof("join room. %s user=%s", r.key, userID)
	reg.broadcastChange(r)
	reg.tryStart(r)
	return nil
}

// Leave 离座。空房即释放。
func (reg *Registry) Leave(r *Room, userID string) error {
	if r == nil {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	if r.playerLock {
		r.mu.Unlock()
		return ErrPlayerLock
	}
	seat := r.seatOf(userID)
	if seat == nil {
		r.mu.Unlock()
		return ErrPlayerNotInRoom
	}
	out := r.seats[:0]
	for _, s := range r.seats {
		if s.UserID != userID {
			out = append(out, s)
		}
	}
	r.seats = out
	empty := len(r.seats) == 0
	r.mu.Unlock()

	log.Infof("leave room. %s user=%s", r.key, userID)
	reg.broadcastChange(r)
	if empty {
		reg.release(r)
	}
	return nil
}

// Mate 匹配：扫描公开且可进的房间加入；没有则新建公开房加入。
func (reg *Registry) Mate(gameType int32, userID string, extra json.RawMessage) (*Room, error) {
	reg.mu.Lock()
	var found *Room
	for key, r := range reg.rooms {
		if key.GameType != gameType {
			continue
		}
		if reg.joinable(r, userID) {
			found = r
			break
		}
	}
	if found == nil {
		created, err := reg.createLocked(gameType)
		if err != nil {
			reg.mu.Unlock()
			return nil, err
		}
		created.mu.Lock()
		created.public = true
		created.mu.Unlock()
		found = created
	}
	reg.mu.Unlock()

	if err := reg.Join(found, userID, extra); err != nil {
		return nil, err
	}
	return found, nil
}

// joinable 公开、未锁、未满、未加入
func (reg *Registry) joinable(r *Room, userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.public && !r.playerLock && r.seatOf(userID) == nil && len(r.seats) < r.biz.MaxSeat()
}

// SetReady 设置准备状态。变更时广播；转为准备后尝试开局。
func (reg *Registry) SetReady(r *Room, userID string, ready bool) error {
	if r == nil {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	if r.playerLock {
		r.mu.Unlock()
		return ErrPlayerLock
	}
	seat := r.seatOf(userID)
	if seat == nil {
		r.mu.Unlock()
		return ErrPlayerNotInRoom
	}
	changed := seat.Ready != ready
	seat.Ready = ready
	r.mu.Unlock()

	if !changed {
		return nil
	}
	reg.broadcastChange(r)
	if ready {
		reg.tryStart(r)
	}
	return nil
}

// SetPublic 标记公开并广播
func (reg *Registry) SetPublic(r *Room) error {
	if r == nil {
		return ErrRoomNotFound
	}
	r.mu.Lock()
	r.public = true
	r.mu.Unlock()
	reg.broadcastChange(r)
	return nil
}

// Chat 转发聊天。receiverIdx 为空表示发给全房间。
func (reg *Registry) Chat(r *Room, sender string, receiverIdx []int, content string) error {
	if r == nil {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	if r.seatOf(sender) == nil {
		r.mu.Unlock()
		return ErrPlayerNotInRoom
	}
	var receivers []string
	if len(receiverIdx) == 0 {
		for _, s := range r.seats {
			receivers = append(receivers, s.UserID)
		}
	} else {
		for _, idx := range receiverIdx {
			if idx >= 0 && idx < len(r.seats) {
				receivers = append(receivers, r.seats[idx].UserID)
			}
		}
	}
	r.mu.Unlock()

	if reg.broadcast == nil {
		return ErrInternal
	}
	if err := reg.broadcast.RoomChat(r.key, sender, receivers, content); err != nil {
		log.Warnf("room chat failed. %s sender=%s err=%v", r.key, sender, err)
		return ErrInternal
	}
	return nil
}

// SubmitPlayerAction 对局输入网关：仅在对局运行中放行，载荷原样转交业务房间。
func (reg *Registry) SubmitPlayerAction(r *Room, userID, name string, payload []byte) error {
	if r == nil {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	if !r.playerLock {
		r.mu.Unlock()
		return ErrPlayerLock
	}
	if r.seatOf(userID) == nil {
		r.mu.Unlock()
		return ErrPlayerNotInRoom
	}
	r.mu.Unlock()

	r.biz.PlayerInput(userID, name, payload)
	return nil
}

// tryStart 全员准备且业务允许时锁定房间并拉起 runner
func (reg *Registry) tryStart(r *Room) {
	r.mu.Lock()
	if r.playerLock || !r.allReady() || !r.biz.CheckStart(len(r.seats)) {
		r.mu.Unlock()
		return
	}
	r.playerLock = true
	r.mu.Unlock()

	log.Infof("game start. %s", r.Desc())
	reg.loop.Post(func() {
		reg.runGame(r)
	})
}

// runGame 房间 runner：驱动业务对局，结束后恢复房间状态。
// 业务 panic（引擎程序性故障）在此兜底，保证房间一定被解锁。
func (reg *Registry) runGame(r *Room) {
	defer reg.finishGame(r)
	defer xgo.RecoverFromError(func(e any) {
		log.Errorf("game aborted. %s err=%v", r.key, e)
	})
	r.biz.DoGameLogic(r)
}

// finishGame 清除锁、剔除断线座位、重置准备状态，空房即释放
func (reg *Registry) finishGame(r *Room) {
	r.mu.Lock()
	r.playerLock = false
	out := r.seats[:0]
	for _, s := range r.seats {
		if s.LostConn {
			log.Infof("prune lost seat. %s user=%s", r.key, s.UserID)
			continue
		}
		s.Ready = false
		out = append(out, s)
	}
	r.seats = out
	empty := len(r.seats) == 0
	r.mu.Unlock()

	reg.broadcastChange(r)
	if empty {
		reg.release(r)
	}
	log.Infof("game finished. %s", r.Desc())
}

func (reg *Registry) broadcastChange(r *Room) {
	if reg.broadcast == nil {
		return
	}
	reg.broadcast.RoomCommonChange(r.key, r.Seats())
}
