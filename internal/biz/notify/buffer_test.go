package notify

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yola1107/kratos/v2/log"
)

func init() {
	log.SetLogger(log.NewStdLogger(os.Stdout))
}

type fakeSender struct {
	sent map[string][][]Packet
	err  error
}

func newFakeSender() *fakeSender {
	return &fakeSender{sent: make(map[string][][]Packet)}
}

func (s *fakeSender) Send(playerID string, packets []Packet) error {
	s.sent[playerID] = append(s.sent[playerID], packets)
	return s.err
}

type fakeViewer struct {
	ids   []string
	snaps map[string]*SyncGameStatus
}

func (v *fakeViewer) ViewerIDs() []string { return v.ids }
func (v *fakeViewer) Snapshot(id string) *SyncGameStatus {
	return v.snaps[id]
}

func TestGameStartSentImmediately(t *testing.T) {
	sender := newFakeSender()
	b := NewBuffered(sender)

	b.GameStart(GameStartEvent{Players: []PlayerBrief{{PlayerID: "u1"}, {PlayerID: "u2"}}})

	require.Len(t, sender.sent["u1"], 1)
	require.Len(t, sender.sent["u2"], 1)
	require.Equal(t, CmdGameStart, sender.sent["u1"][0][0].Cmd)
}

func TestFlushRedactsDrawForOthers(t *testing.T) {
	sender := newFakeSender()
	b := NewBuffered(sender)
	viewer := &fakeViewer{ids: []string{"u1", "u2"}}

	b.PlayerDrawCard(DrawCardEvent{PlayerID: "u1", Kind: DrawOK, CardID: 42})
	b.Flush(viewer)

	own := sender.sent["u1"][0][0].Payload.(DrawCardEvent)
	require.EqualValues(t, 42, own.CardID)

	other := sender.sent["u2"][0][0].Payload.(DrawCardEvent)
	require.EqualValues(t, 0, other.CardID, "对手视角不能看到抽到的牌")
	require.Equal(t, DrawOK, other.Kind)
}

func TestFlushAppendsSnapshotAndClears(t *testing.T) {
	sender := newFakeSender()
	b := NewBuffered(sender)
	viewer := &fakeViewer{
		ids:   []string{"u1"},
		snaps: map[string]*SyncGameStatus{"u1": {Turn: 3}},
	}

	b.NewTurn(NewTurnEvent{Turn: 3, PlayerID: "u1"})
	b.DealDamage(DealDamageEvent{UUID: 9, Damage: 2})
	b.Flush(viewer)

	packets := sender.sent["u1"][0]
	require.Len(t, packets, 3)
	require.Equal(t, CmdNewTurn, packets[0].Cmd)
	require.Equal(t, CmdDealDamage, packets[1].Cmd)
	require.Equal(t, CmdSyncStatus, packets[2].Cmd)

	// 缓冲已清空，再次 Flush 不发任何东西
	b.Flush(viewer)
	require.Len(t, sender.sent["u1"], 1)
}

func TestSendErrorSwallowed(t *testing.T) {
	sender := newFakeSender()
	sender.err = errors.New("conn reset")
	b := NewBuffered(sender)

	require.NotPanics(t, func() {
		b.MyTurnStart(MyTurnStartEvent{PlayerID: "u1"})
	})
}

func TestNilSenderIsNoop(t *testing.T) {
	b := NewBuffered(nil)
	b.NewTurn(NewTurnEvent{Turn: 1})
	require.NotPanics(t, func() {
		b.Flush(&fakeViewer{ids: []string{"u1"}})
	})
}
