package room

import (
	"github.com/yola1107/duel/pkg/codes"
)

// 房间生命周期错误闭集。错误即状态码，service 层原样下发。
var (
	ErrPlayerLock      = codes.ErrPlayerLock
	ErrRoomFull        = codes.ErrRoomFull
	ErrHasBeenJoin     = codes.ErrHasBeenJoin
	ErrPlayerNotInRoom = codes.ErrPlayerNotInRoom
	ErrRoomNotFound    = codes.ErrRoomNotFound
	ErrInternal        = codes.ErrInternal
)
