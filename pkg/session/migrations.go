package session

import "embed"

// Migrations holds the goose migrations for PostgresStore.
// Apply them with pg.Migrate using MigrationsDir as the directory.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations that holds the SQL files
const MigrationsDir = "migrations"
