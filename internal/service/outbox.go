package service

import (
	"sync"

	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz/notify"
)

// 单用户信箱容量，超出丢最旧的
const outboxCap = 512

// outbox 按用户缓存待拉取的推送包
type outbox struct {
	mu    sync.Mutex
	boxes map[string][]notify.Packet
}

func newOutbox() *outbox {
	return &outbox{boxes: make(map[string][]notify.Packet)}
}

func (o *outbox) Put(userID string, packets []notify.Packet) {
	if len(packets) == 0 {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	box := append(o.boxes[userID], packets...)
	if over := len(box) - outboxCap; over > 0 {
		log.Warnf("outbox overflow, drop %d packets. user=%s", over, userID)
		box = box[over:]
	}
	o.boxes[userID] = box
}

// Drain 取走并清空用户信箱
func (o *outbox) Drain(userID string) []notify.Packet {
	o.mu.Lock()
	defer o.mu.Unlock()

	box := o.boxes[userID]
	if len(box) == 0 {
		return nil
	}
	delete(o.boxes, userID)
	return box
}
