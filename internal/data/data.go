package data

import (
	"context"
	"encoding/json"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	kredis "github.com/yola1107/kratos/v2/library/db/redis"
	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/duel/internal/biz"
	"github.com/yola1107/duel/internal/conf"
	"github.com/yola1107/duel/internal/model"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewCardRepo, NewRedis)

// 卡牌定义存放的哈希键，field 为卡牌ID，value 为 JSON
const cardHashKey = "duel:cards"

// Data .
type Data struct {
	redis *redis.Client
}

// NewData .
func NewData(c *conf.Data, logger log.Logger, redis *redis.Client) (*Data, func(), error) {
	cleanup := func() {
		log.Info("closing the data resources")
		if redis != nil {
			_ = redis.Close()
		}
	}

	return &Data{redis: redis}, cleanup, nil
}

func NewRedis(c *conf.Data) *redis.Client {
	rdb := kredis.NewClient(
		kredis.WithAddress(c.Redis.Addr),
		kredis.WithPassword(c.Redis.Password),
		kredis.WithDB(int(c.Redis.Db)),
	)
	// 测试连接
	// if err := rdb.Ping(context.Background()).Err(); err != nil {
	// 	panic("failed to connect to Redis: " + err.Error())
	// }
	return rdb
}

type cardRepo struct {
	data *Data
	log  *log.Helper
}

// NewCardRepo .
func NewCardRepo(data *Data, logger log.Logger) biz.CardRepo {
	return &cardRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// LoadAll 读取全部卡牌定义。redis 不可用或为空时回退到内置卡池。
func (r *cardRepo) LoadAll() ([]*model.Card, error) {
	raw, err := r.data.redis.HGetAll(context.Background(), cardHashKey).Result()
	if err != nil {
		r.log.Warnf("load cards from redis failed, use builtin set. err=%v", err)
		return builtinCards(), nil
	}
	if len(raw) == 0 {
		r.log.Infof("no cards in redis, use builtin set.")
		return builtinCards(), nil
	}

	cards := make([]*model.Card, 0, len(raw))
	for field, val := range raw {
		var c model.Card
		if err := json.Unmarshal([]byte(val), &c); err != nil {
			r.log.Errorf("bad card definition. field=%s err=%v", field, err)
			continue
		}
		cards = append(cards, &c)
	}
	return cards, nil
}
