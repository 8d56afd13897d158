// Command migrate brings every tenant database up to the current schema.
//
// With -create-databases it first creates missing tenant databases through the
// server at POSTGRES_ADMIN_DSN. With ADMIN_EMAIL and ADMIN_PASSWORD set it seeds an
// admin account into every tenant that does not have one with that email yet.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"logistics/cmd"
	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/accountrepo"
	"logistics/internal/adapters/out/postgres/tenancy"
	"logistics/internal/core/domain/model/account"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/tenant"

	"github.com/labstack/gommon/log"
	"github.com/lib/pq"
)

func main() {
	createDatabases := flag.Bool("create-databases", false, "create missing tenant databases first")
	only := flag.String("tenant", "", "migrate a single tenant")
	flag.Parse()

	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	ctx := context.Background()

	if *createDatabases {
		if err = ensureDatabases(ctx, os.Getenv("POSTGRES_ADMIN_DSN"), config.Tenants, logger); err != nil {
			log.Fatalf("Error creating databases: %v", err)
		}
	}

	registry, err := tenancy.NewRegistry(config.TenantTable(), tenancy.OpenPostgres)
	if err != nil {
		log.Fatalf("Error configuring tenants: %v", err)
	}
	defer registry.Close()

	admin := adminSeed{email: os.Getenv("ADMIN_EMAIL"), password: os.Getenv("ADMIN_PASSWORD")}
	for _, id := range registry.Tenants() {
		if *only != "" && id != tenant.ID(*only) {
			continue
		}
		if err = migrateTenant(ctx, registry, id, admin, logger); err != nil {
			log.Fatalf("Error migrating tenant %s: %v", id, err)
		}
	}
}

type adminSeed struct {
	email    string
	password string
}

func migrateTenant(ctx context.Context, registry *tenancy.Registry, id tenant.ID, admin adminSeed, logger *slog.Logger) error {
	db, err := registry.Open(id)
	if err != nil {
		return err
	}
	if err = postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	logger.Info("schema migrated", "tenant", id)

	if admin.email == "" {
		return nil
	}
	users := accountrepo.NewGormUserRepository(db)
	_, err = users.GetByEmail(ctx, admin.email)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	user, err := account.NewUser(kernel.NewUUID(), admin.email, admin.password, account.RoleAdmin)
	if err != nil {
		return err
	}
	if err = users.Add(ctx, user); err != nil {
		return err
	}
	logger.Info("admin seeded", "tenant", id, "email", user.Email())
	return nil
}

func ensureDatabases(ctx context.Context, adminDSN string, tenants []cmd.TenantConfig, logger *slog.Logger) error {
	if adminDSN == "" {
		return errors.New("POSTGRES_ADMIN_DSN is required to create databases")
	}
	conn, err := sql.Open("postgres", adminDSN)
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, t := range tenants {
		name, err := databaseName(t.DSN)
		if err != nil {
			return fmt.Errorf("tenant %s: %w", t.ID, err)
		}

		var exists bool
		err = conn.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("look up database %s: %w", name, err)
		}
		if exists {
			continue
		}
		if _, err = conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
			return fmt.Errorf("create database %s: %w", name, err)
		}
		logger.Info("database created", "tenant", t.ID, "database", name)
	}
	return nil
}

// databaseName reads the database out of a URL or key=value DSN.
func databaseName(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		if name := strings.TrimPrefix(u.Path, "/"); name != "" {
			return name, nil
		}
		return "", errors.New("dsn names no database")
	}

	for _, field := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok && name != "" {
			return strings.Trim(name, "'"), nil
		}
	}
	return "", errors.New("dsn names no database")
}
