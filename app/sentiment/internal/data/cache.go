package data

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-redis/redis/v8"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/biz"
	"github.com/iWorld-y/ipo_radar/app/sentiment/pkg/model"
)

const cachePrefix = "ipo_radar:sentiment:"

type resultCache struct {
	data *Data
	log  *log.Helper
}

// NewResultCache creates the redis-backed result cache. Without redis every
// lookup misses.
func NewResultCache(data *Data, logger log.Logger) biz.ResultCache {
	return &resultCache{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func cacheKey(name string) string {
	return cachePrefix + strings.ToLower(strings.TrimSpace(name))
}

func (c *resultCache) Get(ctx context.Context, name string) (*model.AnalysisResult, error) {
	if c.data.rdb == nil {
		return nil, nil
	}
	b, err := c.data.rdb.Get(ctx, cacheKey(name)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var res model.AnalysisResult
	if err := json.Unmarshal(b, &res); err != nil {
		c.log.WithContext(ctx).Warnf("dropping corrupt cache entry for %q: %v", name, err)
		return nil, nil
	}
	return &res, nil
}

func (c *resultCache) Set(ctx context.Context, name string, res *model.AnalysisResult) error {
	if c.data.rdb == nil {
		return nil
	}
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.data.rdb.Set(ctx, cacheKey(name), b, c.data.ttl).Err()
}
