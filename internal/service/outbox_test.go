package service

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz/notify"
)

func init() {
	log.SetLogger(log.NewStdLogger(os.Stdout))
}

func pkts(cmds ...int32) []notify.Packet {
	out := make([]notify.Packet, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, notify.Packet{Cmd: c})
	}
	return out
}

func TestOutboxPutDrain(t *testing.T) {
	o := newOutbox()

	require.Nil(t, o.Drain("u1"))

	o.Put("u1", pkts(1, 2))
	o.Put("u1", pkts(3))
	o.Put("u2", pkts(9))

	got := o.Drain("u1")
	require.Len(t, got, 3)
	require.Equal(t, int32(1), got[0].Cmd)
	require.Equal(t, int32(3), got[2].Cmd)

	// 取走即清空
	require.Nil(t, o.Drain("u1"))
	require.Len(t, o.Drain("u2"), 1)
}

func TestOutboxEmptyPutIgnored(t *testing.T) {
	o := newOutbox()
	o.Put("u1", nil)
	require.Nil(t, o.Drain("u1"))
}

func TestOutboxOverflowDropsOldest(t *testing.T) {
	o := newOutbox()
	for i := 0; i < outboxCap; i++ {
		o.Put("u1", pkts(int32(i)))
	}
	o.Put("u1", pkts(9999))

	got := o.Drain("u1")
	require.Len(t, got, outboxCap)
	require.Equal(t, int32(1), got[0].Cmd, "最旧的包被丢弃")
	require.Equal(t, int32(9999), got[len(got)-1].Cmd)
}
