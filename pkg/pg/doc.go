// Package pg bootstraps PostgreSQL access with pgx/v5: a retrying pool
// constructor, goose migrations read from an fs.FS, a readiness probe, and
// helpers that classify driver errors.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, session.Migrations, cfg, log); err != nil {
//	    return err
//	}
//
// Config is read from PG_* environment variables. MigrationsPath names the
// directory inside the fs.FS handed to Migrate, "migrations" by default.
package pg
