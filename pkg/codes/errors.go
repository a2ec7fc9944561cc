package codes

import (
	"github.com/yola1107/kratos/v2/errors"
)

// 对外错误闭集，状态码随 error 一起下发（房间生命周期见 room 包）
var (
	ErrInternal        = errors.New(1001, "", "internal error")
	ErrRoomNotFound    = errors.New(1002, "", "room not found")
	ErrPlayerLock      = errors.New(1003, "", "room is locked by a running game")
	ErrRoomFull        = errors.New(1004, "", "room is full")
	ErrHasBeenJoin     = errors.New(1005, "", "user already in room")
	ErrPlayerNotInRoom = errors.New(1006, "", "user not in room")

	ErrSessionNotFound = errors.New(1101, "", "session not found")
	ErrPlayerNotFound  = errors.New(1102, "", "player not found")
)
