package inbox

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yola1107/kratos/v2/log"
)

func init() {
	log.SetLogger(log.NewStdLogger(os.Stdout))
}

type action struct {
	Type int `json:"type"`
}

func TestWaitForInputDelivers(t *testing.T) {
	ib := New()

	listening := make(chan struct{})
	go func() {
		<-listening
		ok := ib.PlayerInput("u1", Message{Name: "act", Payload: json.RawMessage(`{"type":2}`)})
		require.True(t, ok)
	}()

	got := WaitForInput(context.Background(), ib, "u1", "act", time.Second,
		func() action { return action{Type: -1} },
		func() { close(listening) })
	require.Equal(t, 2, got.Type)
}

func TestWaitForInputTimeout(t *testing.T) {
	ib := New()
	start := time.Now()
	got := WaitForInput(context.Background(), ib, "u1", "act", 30*time.Millisecond,
		func() action { return action{Type: -1} }, nil)
	require.Equal(t, -1, got.Type)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWaitForInputCtxCancel(t *testing.T) {
	ib := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := WaitForInput(ctx, ib, "u1", "act", time.Minute,
		func() action { return action{Type: -1} }, nil)
	require.Equal(t, -1, got.Type)
}

func TestWaitForInputBadPayload(t *testing.T) {
	ib := New()
	go func() {
		for !ib.PlayerInput("u1", Message{Name: "act", Payload: json.RawMessage(`not-json`)}) {
			time.Sleep(time.Millisecond)
		}
	}()
	got := WaitForInput(context.Background(), ib, "u1", "act", time.Second,
		func() action { return action{Type: -1} }, nil)
	require.Equal(t, -1, got.Type)
}

func TestMismatchedInputDropped(t *testing.T) {
	ib := New()

	// 未登记任何期望
	require.False(t, ib.PlayerInput("u1", Message{Name: "act"}))

	// 类型不一致，丢弃且不入队
	e := ib.register("u1", "act", true)
	require.False(t, ib.PlayerInput("u1", Message{Name: "other", Payload: json.RawMessage(`1`)}))
	select {
	case <-e.ch:
		t.Fatal("mismatched payload must not be queued")
	default:
	}
	require.True(t, ib.PlayerInput("u1", Message{Name: "act", Payload: json.RawMessage(`1`)}))
}

func TestRegisterOverwrites(t *testing.T) {
	ib := New()
	ib.register("u1", "old", true)
	ib.register("u1", "new", true)

	require.False(t, ib.PlayerInput("u1", Message{Name: "old"}))
	require.True(t, ib.PlayerInput("u1", Message{Name: "new", Payload: json.RawMessage(`1`)}))

	// oneshot 消费后自动摘除
	require.False(t, ib.PlayerInput("u1", Message{Name: "new", Payload: json.RawMessage(`1`)}))
}

func TestUnregisterDrainsRace(t *testing.T) {
	ib := New()
	e := ib.register("u1", "act", true)
	require.True(t, ib.PlayerInput("u1", Message{Name: "act", Payload: json.RawMessage(`7`)}))

	// 超时与送达竞争：摘除时必须把已写入的载荷带回
	raw := ib.unregister("u1", e)
	require.JSONEq(t, `7`, string(raw))
}

func TestWatcherMultiShot(t *testing.T) {
	ib := New()
	w := ib.RegisterWatcher("u1", "chat")
	defer ib.UnregisterWatcher(w)

	require.True(t, ib.PlayerInput("u1", Message{Name: "chat", Payload: json.RawMessage(`1`)}))
	<-w.C()
	require.True(t, ib.PlayerInput("u1", Message{Name: "chat", Payload: json.RawMessage(`2`)}))
	<-w.C()
}
