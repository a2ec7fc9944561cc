package service

import (
	"github.com/google/wire"
	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz"
	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/biz/room"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewDuelService)

// DuelService 对外接口层。编解码 + 推送信箱，语义全部下沉到 biz。
type DuelService struct {
	uc  *biz.Usecase
	log *log.Helper

	outbox *outbox
}

var _ biz.Pusher = (*DuelService)(nil)

// NewDuelService new a duel service.
func NewDuelService(uc *biz.Usecase, logger log.Logger) *DuelService {
	s := &DuelService{
		uc:     uc,
		log:    log.NewHelper(logger),
		outbox: newOutbox(),
	}
	uc.SetPusher(s)
	return s
}

/*
	biz.Pusher 实现。HTTP 形态下推送进信箱，客户端轮询取走。
*/

// PushGame 对局事件批
func (s *DuelService) PushGame(userID string, packets []notify.Packet) error {
	s.outbox.Put(userID, packets)
	return nil
}

// PushRoomChange 房间座位变化
func (s *DuelService) PushRoomChange(key room.Key, seats []room.Seat) {
	views := make([]SeatView, 0, len(seats))
	for i, st := range seats {
		views = append(views, SeatView{
			Index:    i,
			UserID:   st.UserID,
			Ready:    st.Ready,
			LostConn: st.LostConn,
		})
	}
	pkt := notify.Packet{Cmd: CmdRoomChange, Payload: RoomChangeEvent{
		GameType: key.GameType,
		RoomID:   key.RoomID,
		Seats:    views,
	}}
	for _, st := range seats {
		s.outbox.Put(st.UserID, []notify.Packet{pkt})
	}
}

// PushChat 房间聊天
func (s *DuelService) PushChat(key room.Key, sender string, receivers []string, content string) error {
	pkt := notify.Packet{Cmd: CmdRoomChat, Payload: RoomChatEvent{
		GameType: key.GameType,
		RoomID:   key.RoomID,
		Sender:   sender,
		Content:  content,
	}}
	for _, uid := range receivers {
		s.outbox.Put(uid, []notify.Packet{pkt})
	}
	return nil
}
