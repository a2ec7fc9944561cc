package biz

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/wire"
	"github.com/yola1107/kratos/v2/library/work"
	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz/inbox"
	"github.com/yola1107/duel/internal/biz/room"
	"github.com/yola1107/duel/internal/conf"
	"github.com/yola1107/duel/internal/model"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewUsecase)

var defaultPendingNum = 10000

// CardRepo 卡牌定义仓储
type CardRepo interface {
	LoadAll() ([]*model.Card, error)
}

// Usecase 房间与对局用例
type Usecase struct {
	repo CardRepo
	log  *log.Helper

	rc      *conf.Room
	catalog *model.Catalog
	inbox   *inbox.Inbox
	ws      work.IWorkStore
	reg     *room.Registry

	pushMu sync.RWMutex
	pusher Pusher
}

// NewUsecase new a room usecase.
func NewUsecase(repo CardRepo, logger log.Logger, c *conf.Room) (*Usecase, func(), error) {
	uc := &Usecase{
		repo:  repo,
		log:   log.NewHelper(logger),
		rc:    c,
		inbox: inbox.New(),
	}

	catalog, err := model.NewCatalog(repo)
	if err != nil {
		return nil, nil, err
	}
	uc.catalog = catalog

	pending := defaultPendingNum
	if c.LoopSize > 0 {
		pending = int(c.LoopSize)
	}
	ctx, cancel := context.WithCancel(context.Background())
	uc.ws = work.NewWorkStore(ctx, pending)
	uc.reg = room.NewRegistry(uc.ws, uc, uc.newBizRoom)

	cleanup := func() {
		log.NewHelper(logger).Info("closing the Room resources")
		cancel()
		uc.ws.Stop()
	}
	return uc, cleanup, errors.Join(uc.ws.Start())
}

func (uc *Usecase) GetLoop() work.ITaskLoop {
	return uc.ws
}

// GetTimer 获取定时器
func (uc *Usecase) GetTimer() work.ITaskScheduler {
	return uc.ws
}

func (uc *Usecase) Catalog() *model.Catalog {
	return uc.catalog
}

/*
	房间操作入口。service 层只做编解码，语义都在这里。
*/

// CreateRoom 建房
func (uc *Usecase) CreateRoom(gameType int32) (*room.Room, error) {
	return uc.reg.Create(gameType)
}

// JoinRoom 入座
func (uc *Usecase) JoinRoom(gameType, roomID int32, userID string, extra json.RawMessage) (*room.Room, error) {
	r := uc.reg.Get(gameType, roomID)
	if err := uc.reg.Join(r, userID, extra); err != nil {
		return nil, err
	}
	return r, nil
}

// LeaveRoom 离座
func (uc *Usecase) LeaveRoom(gameType, roomID int32, userID string) error {
	return uc.reg.Leave(uc.reg.Get(gameType, roomID), userID)
}

// MateRoom 匹配进房
func (uc *Usecase) MateRoom(gameType int32, userID string, extra json.RawMessage) (*room.Room, error) {
	return uc.reg.Mate(gameType, userID, extra)
}

// SetReady 设置准备
func (uc *Usecase) SetReady(gameType, roomID int32, userID string, ready bool) error {
	return uc.reg.SetReady(uc.reg.Get(gameType, roomID), userID, ready)
}

// SetPublic 公开房间
func (uc *Usecase) SetPublic(gameType, roomID int32, userID string) error {
	r := uc.reg.Get(gameType, roomID)
	if r == nil {
		return room.ErrRoomNotFound
	}
	return uc.reg.SetPublic(r)
}

// Chat 房间聊天
func (uc *Usecase) Chat(gameType, roomID int32, sender string, receiverIdx []int, content string) error {
	return uc.reg.Chat(uc.reg.Get(gameType, roomID), sender, receiverIdx, content)
}

// SubmitAction 对局输入
func (uc *Usecase) SubmitAction(gameType, roomID int32, userID, name string, payload []byte) error {
	return uc.reg.SubmitPlayerAction(uc.reg.Get(gameType, roomID), userID, name, payload)
}
