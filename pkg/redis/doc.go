// Package redis connects to the Redis server that backs server-side session
// storage.
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0", RetryAttempts: 3,
//		RetryInterval: 5 * time.Second, ConnectTimeout: 30 * time.Second}
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	backend := session.NewRedisStore(client, "session:")
//
// Connect retries until the server answers a ping or the timeout elapses.
// Healthcheck wraps the same ping as a probe function. Sentinel errors wrap
// driver errors via errors.Join and compare with errors.Is.
package redis
