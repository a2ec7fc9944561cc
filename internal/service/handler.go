package service

import (
	"encoding/json"

	"github.com/yola1107/kratos/v2/errors"
	"github.com/yola1107/kratos/v2/transport/http"

	"github.com/yola1107/duel/internal/biz/notify"
	"github.com/yola1107/duel/internal/biz/room"
)

// 房间层推送命令字
const (
	CmdRoomChange int32 = 1201 // 座位变化
	CmdRoomChat   int32 = 1202 // 聊天
)

// Reply 统一应答封装
type Reply struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func ok(data any) *Reply {
	return &Reply{Code: 0, Data: data}
}

func fail(err error) *Reply {
	e := errors.FromError(err)
	return &Reply{Code: e.Code, Msg: e.Message}
}

// SeatView 座位视图
type SeatView struct {
	Index    int    `json:"index"`
	UserID   string `json:"userId"`
	Ready    bool   `json:"ready"`
	LostConn bool   `json:"lostConn,omitempty"`
}

// RoomView 房间视图
type RoomView struct {
	GameType int32      `json:"gameType"`
	RoomID   int32      `json:"roomId"`
	Public   bool       `json:"public"`
	Locked   bool       `json:"locked"`
	Seats    []SeatView `json:"seats"`
}

// RoomChangeEvent 座位变化推送
type RoomChangeEvent struct {
	GameType int32      `json:"gameType"`
	RoomID   int32      `json:"roomId"`
	Seats    []SeatView `json:"seats"`
}

// RoomChatEvent 聊天推送
type RoomChatEvent struct {
	GameType int32  `json:"gameType"`
	RoomID   int32  `json:"roomId"`
	Sender   string `json:"sender"`
	Content  string `json:"content"`
}

type CreateRoomReq struct {
	GameType int32 `json:"gameType"`
}

type JoinRoomReq struct {
	GameType int32           `json:"gameType"`
	RoomID   int32           `json:"roomId"`
	UserID   string          `json:"userId"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

type LeaveRoomReq struct {
	GameType int32  `json:"gameType"`
	RoomID   int32  `json:"roomId"`
	UserID   string `json:"userId"`
}

type MateRoomReq struct {
	GameType int32           `json:"gameType"`
	UserID   string          `json:"userId"`
	Extra    json.RawMessage `json:"extra,omitempty"`
}

type ReadyReq struct {
	GameType int32  `json:"gameType"`
	RoomID   int32  `json:"roomId"`
	UserID   string `json:"userId"`
	Ready    bool   `json:"ready"`
}

type PublicReq struct {
	GameType int32  `json:"gameType"`
	RoomID   int32  `json:"roomId"`
	UserID   string `json:"userId"`
}

type ChatReq struct {
	GameType  int32  `json:"gameType"`
	RoomID    int32  `json:"roomId"`
	UserID    string `json:"userId"`
	Receivers []int  `json:"receivers,omitempty"` // 座位下标，空为全房间
	Content   string `json:"content"`
}

type ActionReq struct {
	GameType int32           `json:"gameType"`
	RoomID   int32           `json:"roomId"`
	UserID   string          `json:"userId"`
	Name     string          `json:"name"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type PollReq struct {
	UserID string `json:"userId"`
}

type PollRsp struct {
	Packets []notify.Packet `json:"packets"`
}

// RegisterRoutes 注册 HTTP 路由
func (s *DuelService) RegisterRoutes(srv *http.Server) {
	r := srv.Route("/v1")
	r.POST("/room/create", s.handleCreate)
	r.POST("/room/join", s.handleJoin)
	r.POST("/room/leave", s.handleLeave)
	r.POST("/room/mate", s.handleMate)
	r.POST("/room/ready", s.handleReady)
	r.POST("/room/public", s.handlePublic)
	r.POST("/room/chat", s.handleChat)
	r.POST("/game/action", s.handleAction)
	r.POST("/poll", s.handlePoll)
}

func roomView(r *room.Room) *RoomView {
	seats := r.Seats()
	views := make([]SeatView, 0, len(seats))
	for i, st := range seats {
		views = append(views, SeatView{Index: i, UserID: st.UserID, Ready: st.Ready, LostConn: st.LostConn})
	}
	return &RoomView{
		GameType: r.Key().GameType,
		RoomID:   r.Key().RoomID,
		Public:   r.Public(),
		Locked:   r.Locked(),
		Seats:    views,
	}
}

func (s *DuelService) handleCreate(ctx http.Context) error {
	var req CreateRoomReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	r, err := s.uc.CreateRoom(req.GameType)
	if err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(roomView(r)))
}

func (s *DuelService) handleJoin(ctx http.Context) error {
	var req JoinRoomReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	r, err := s.uc.JoinRoom(req.GameType, req.RoomID, req.UserID, req.Extra)
	if err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(roomView(r)))
}

func (s *DuelService) handleLeave(ctx http.Context) error {
	var req LeaveRoomReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := s.uc.LeaveRoom(req.GameType, req.RoomID, req.UserID); err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(nil))
}

func (s *DuelService) handleMate(ctx http.Context) error {
	var req MateRoomReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	r, err := s.uc.MateRoom(req.GameType, req.UserID, req.Extra)
	if err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(roomView(r)))
}

func (s *DuelService) handleReady(ctx http.Context) error {
	var req ReadyReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := s.uc.SetReady(req.GameType, req.RoomID, req.UserID, req.Ready); err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(nil))
}

func (s *DuelService) handlePublic(ctx http.Context) error {
	var req PublicReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := s.uc.SetPublic(req.GameType, req.RoomID, req.UserID); err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(nil))
}

func (s *DuelService) handleChat(ctx http.Context) error {
	var req ChatReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := s.uc.Chat(req.GameType, req.RoomID, req.UserID, req.Receivers, req.Content); err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(nil))
}

func (s *DuelService) handleAction(ctx http.Context) error {
	var req ActionReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := s.uc.SubmitAction(req.GameType, req.RoomID, req.UserID, req.Name, req.Payload); err != nil {
		return ctx.Result(200, fail(err))
	}
	return ctx.Result(200, ok(nil))
}

func (s *DuelService) handlePoll(ctx http.Context) error {
	var req PollReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	return ctx.Result(200, ok(&PollRsp{Packets: s.outbox.Drain(req.UserID)}))
}
