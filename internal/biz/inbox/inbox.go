package inbox

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/yola1107/kratos/v2/log"
)

/*

	输入管理器：每用户一条挂起期望。引擎按消息类型等待一次输入；
	类型不匹配的提交直接丢弃并记录，绝不排队 —— 客户端在
	收到新的 MyTurnStart 之类的事件后重试。

*/

// Message 玩家提交的一条输入
type Message struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

type expectation struct {
	name    string
	ch      chan []byte // 容量 1
	oneshot bool
}

// Inbox 按用户 ID 组织的输入登记表。注册表互斥锁保证同一用户的提交串行化。
type Inbox struct {
	mu      sync.Mutex
	pending map[string]*expectation
}

func New() *Inbox {
	return &Inbox{pending: make(map[string]*expectation)}
}

// PlayerInput 提交输入。存在期望且类型匹配则转发；否则丢弃。
// 返回是否被接受。
func (ib *Inbox) PlayerInput(userID string, msg Message) bool {
	ib.mu.Lock()
	defer ib.mu.Unlock()

	e := ib.pending[userID]
	if e == nil || e.name != msg.Name {
		expect := ""
		if e != nil {
			expect = e.name
		}
		log.Debugf("inbox drop. user=%s got=%q expect=%q", userID, msg.Name, expect)
		return false
	}

	select {
	case e.ch <- msg.Payload:
	default:
		// 上一条尚未被消费，丢弃
		log.Warnf("inbox channel full. user=%s name=%q", userID, msg.Name)
		return false
	}

	if e.oneshot {
		delete(ib.pending, userID)
	}
	return true
}

// register 登记期望；同一用户的旧期望被覆盖
func (ib *Inbox) register(userID, name string, oneshot bool) *expectation {
	e := &expectation{name: name, ch: make(chan []byte, 1), oneshot: oneshot}
	ib.mu.Lock()
	ib.pending[userID] = e
	ib.mu.Unlock()
	return e
}

// unregister 只有当前登记仍是 e 时才摘除；
// 返回超时与送达竞争时可能已写入的载荷。
func (ib *Inbox) unregister(userID string, e *expectation) []byte {
	ib.mu.Lock()
	if ib.pending[userID] == e {
		delete(ib.pending, userID)
	}
	ib.mu.Unlock()

	select {
	case b := <-e.ch:
		return b
	default:
		return nil
	}
}

// WaitForInput 等待用户提交一条 name 类型的输入。
// onListen 在登记完成后调用（用于通知客户端当前期望的类型）。
// 超时或 ctx 取消时返回 defaultFn()。
func WaitForInput[T any](ctx context.Context, ib *Inbox, userID, name string,
	timeout time.Duration, defaultFn func() T, onListen func()) T {

	e := ib.register(userID, name, true)
	if onListen != nil {
		onListen()
	}

	var raw []byte
	select {
	case raw = <-e.ch:
	case <-time.After(timeout):
		raw = ib.unregister(userID, e)
	case <-ctx.Done():
		raw = ib.unregister(userID, e)
	}

	if raw == nil {
		return defaultFn()
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warnf("inbox decode failed. user=%s name=%q err=%v", userID, name, err)
		return defaultFn()
	}
	return v
}

// Watcher 多次接收的流式句柄
type Watcher struct {
	userID string
	e      *expectation
	ib     *Inbox
}

// C 接收通道
func (w *Watcher) C() <-chan []byte {
	return w.e.ch
}

// RegisterWatcher 登记一个多次接收的期望
func (ib *Inbox) RegisterWatcher(userID, name string) *Watcher {
	return &Watcher{userID: userID, ib: ib, e: ib.register(userID, name, false)}
}

// UnregisterWatcher 摘除流式期望
func (ib *Inbox) UnregisterWatcher(w *Watcher) {
	if w == nil {
		return
	}
	w.ib.unregister(w.userID, w.e)
}
