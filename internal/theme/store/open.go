package store

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"countries/internal/platform/config"
	"countries/internal/theme"
)

// Open returns the store cfg selects and a release func for it. rdb is only
// consulted for the redis backend.
func Open(cfg config.Theme, rdb redis.Cmdable, prefix string) (theme.Store, func() error, error) {
	switch cfg.Store {
	case config.ThemeStoreRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("theme store %q requires a redis client", cfg.Store)
		}
		return NewRedis(rdb, prefix), func() error { return nil }, nil
	case config.ThemeStoreBolt, "":
		bolt, err := OpenBolt(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return bolt, bolt.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown theme store %q", cfg.Store)
	}
}
