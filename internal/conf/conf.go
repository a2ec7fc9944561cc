package conf

import (
	"fmt"
	"os"

	"github.com/yola1107/kratos/v2/config"
	"github.com/yola1107/kratos/v2/config/file"
	zconf "github.com/yola1107/kratos/v2/library/log/zap/conf"
)

const Name = "duel"
const Version = "v0.0.1"
const GameID = 132

var ServerID = "" // 房间服实例ID

func init() {
	ServerID = os.Getenv("HOSTNAME")
}

// Server 服务端口配置
type Server struct {
	Http struct {
		Addr    string `json:"addr"`
		Timeout int32  `json:"timeout"` // 秒
	} `json:"http"`
}

// Data 存储配置
type Data struct {
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		Db       int32  `json:"db"`
	} `json:"redis"`
}

// Room 房间与对局配置
type Room struct {
	MaxSeat      int32 `json:"maxSeat"`      // 房间座位数
	TurnTimeout  int32 `json:"turnTimeout"`  // 回合操作超时 (s)
	DefaultMaxHp int32 `json:"defaultMaxHp"` // 英雄默认血量上限
	LoopSize     int32 `json:"loopSize"`     // runner 任务队列容量
}

// Bootstrap 启动配置
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Room   *Room   `json:"room"`
}

func (bc *Bootstrap) Validate() error {
	if bc.Server == nil || bc.Server.Http.Addr == "" {
		return fmt.Errorf("server.http.addr required")
	}
	if bc.Data == nil || bc.Data.Redis.Addr == "" {
		return fmt.Errorf("data.redis.addr required")
	}
	if bc.Room == nil {
		return fmt.Errorf("room section required")
	}
	if bc.Room.MaxSeat <= 0 {
		bc.Room.MaxSeat = 4
	}
	if bc.Room.TurnTimeout <= 0 {
		bc.Room.TurnTimeout = 15
	}
	if bc.Room.DefaultMaxHp <= 0 {
		bc.Room.DefaultMaxHp = 30
	}
	if bc.Room.LoopSize <= 0 {
		bc.Room.LoopSize = 1024
	}
	return nil
}

// LoadConfig 加载配置
func LoadConfig(flagconf string) (config.Config, *Bootstrap, *zconf.Log) {
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(fmt.Errorf("bootstrap config invalid: %v", err))
	}
	if err := bc.Validate(); err != nil {
		panic(fmt.Errorf("bootstrap config invalid: %v", err))
	}

	lc := zconf.DefaultConfig(zconf.WithAppName(Name))
	if err := c.Scan(lc); err != nil {
		panic(fmt.Errorf("logger config invalid: %v", err))
	}
	if err := lc.ValidateAll(); err != nil {
		panic(fmt.Errorf("logger config invalid: %v", err))
	}

	return c, &bc, lc
}
