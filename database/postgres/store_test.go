package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ridoystarlord/petadopt/database"
	"github.com/ridoystarlord/petadopt/database/postgres"
	"github.com/ridoystarlord/petadopt/database/storetest"
)

var _ database.Store = (*postgres.Store)(nil)

// openFreshStore resets the public schema of PG_DSN. It is destructive.
func openFreshStore(t *testing.T) database.Store {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN not set; skipping Postgres contract tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, `DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;`); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	s, err := postgres.New(ctx, dsn, postgres.Options{MaxConns: 10})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestContract_PostgresStore(t *testing.T) {
	storetest.Run(t, openFreshStore)
}

func TestNew_EmptyDSN(t *testing.T) {
	if _, err := postgres.New(context.Background(), "", postgres.Options{}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}

func TestNew_BadDSN(t *testing.T) {
	if _, err := postgres.New(context.Background(), "postgres://%zz", postgres.Options{}); err == nil {
		t.Fatal("expected error for malformed dsn")
	}
}
