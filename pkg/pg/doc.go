// Package pg connects to the Postgres database that backs server-side
// session storage.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer pool.Close()
//
//	backend, err := session.NewPostgresStore(pool, "sessions")
//
// Connect retries with a growing backoff until the database answers a ping
// or the attempts run out. Healthcheck wraps the same ping as a probe
// function, and the Is* helpers classify common pgx errors.
package pg
