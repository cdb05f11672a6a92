// Package redis connects to Redis with go-redis/v9 and exposes a readiness
// probe. The client it returns backs session.RedisStore.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client, session.WithRedisKeyPrefix(cfg.KeyPrefix))
//
// Settings come from REDIS_* environment variables.
package redis
