package biz

import (
	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/biz/room"
)

// Pusher 会话层推送能力。service 在装配完成后注册进来，
// 打破 biz 与 service 的构造环。
type Pusher interface {
	PushGame(userID string, packets []notify.Packet) error
	PushRoomChange(key room.Key, seats []room.Seat)
	PushChat(key room.Key, sender string, receivers []string, content string) error
}

var _ notify.Sender = (*Usecase)(nil)
var _ room.Broadcast = (*Usecase)(nil)

// SetPusher 注册推送实现
func (uc *Usecase) SetPusher(p Pusher) {
	uc.pushMu.Lock()
	defer uc.pushMu.Unlock()
	uc.pusher = p
}

func (uc *Usecase) getPusher() Pusher {
	uc.pushMu.RLock()
	defer uc.pushMu.RUnlock()
	return uc.pusher
}

// Send 对局事件下发
func (uc *Usecase) Send(playerID string, packets []notify.Packet) error {
	p := uc.getPusher()
	if p == nil {
		return nil
	}
	return p.PushGame(playerID, packets)
}

// RoomCommonChange 房间座位变化广播
func (uc *Usecase) RoomCommonChange(key room.Key, seats []room.Seat) {
	p := uc.getPusher()
	if p == nil {
		return
	}
	p.PushRoomChange(key, seats)
}

// RoomChat 房间聊天转发
func (uc *Usecase) RoomChat(key room.Key, sender string, receivers []string, content string) error {
	p := uc.getPusher()
	if p == nil {
		return nil
	}
	return p.PushChat(key, sender, receivers, content)
}
