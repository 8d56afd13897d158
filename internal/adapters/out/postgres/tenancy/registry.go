// Package tenancy maps client domains to tenants and tenants to their databases.
//
// Every tenant has its own PostgreSQL database. The HTTP layer resolves the tenant
// from the X-Client-Domain header and stores it in the request context; the unit of
// work and the read side then ask the Registry for the database of that tenant.
package tenancy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"logistics/internal/pkg/tenant"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrUnknownTenant is returned for a tenant that is not configured.
var ErrUnknownTenant = errors.New("unknown tenant")

// Tenant binds a client domain to a tenant database. A tenant served under several
// domains is listed once per domain with the same DSN.
type Tenant struct {
	ID     tenant.ID
	Domain string
	DSN    string
}

// Opener opens the database of a tenant.
type Opener func(dsn string) (*gorm.DB, error)

// OpenPostgres is the default Opener.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Registry holds the tenant table and lazily opened connection pools, one per tenant.
type Registry struct {
	open     Opener
	byDomain map[string]tenant.ID
	dsn      map[tenant.ID]string

	mu  sync.Mutex
	dbs map[tenant.ID]*gorm.DB
}

func NewRegistry(tenants []Tenant, open Opener) (*Registry, error) {
	if len(tenants) == 0 {
		return nil, errors.New("at least one tenant must be configured")
	}

	r := &Registry{
		open:     open,
		byDomain: make(map[string]tenant.ID, len(tenants)),
		dsn:      make(map[tenant.ID]string, len(tenants)),
		dbs:      make(map[tenant.ID]*gorm.DB, len(tenants)),
	}
	for _, t := range tenants {
		if t.ID == "" || t.Domain == "" || t.DSN == "" {
			return nil, fmt.Errorf("tenant %q: id, domain and dsn are required", t.ID)
		}
		if _, dup := r.byDomain[t.Domain]; dup {
			return nil, fmt.Errorf("domain %q is configured twice", t.Domain)
		}
		if dsn, seen := r.dsn[t.ID]; seen && dsn != t.DSN {
			return nil, fmt.Errorf("tenant %q is configured with two databases", t.ID)
		}
		r.byDomain[t.Domain] = t.ID
		r.dsn[t.ID] = t.DSN
	}
	return r, nil
}

// Lookup returns the tenant serving domain.
func (r *Registry) Lookup(domain string) (tenant.ID, bool) {
	id, ok := r.byDomain[domain]
	return id, ok
}

// Tenants returns the configured tenant ids in a stable order.
func (r *Registry) Tenants() []tenant.ID {
	ids := make([]tenant.ID, 0, len(r.dsn))
	for id := range r.dsn {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// DB returns the database of the tenant carried by ctx.
func (r *Registry) DB(ctx context.Context) (*gorm.DB, error) {
	id, err := tenant.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	return r.Open(id)
}

// Open returns the connection pool of the tenant, opening it on first use.
func (r *Registry) Open(id tenant.ID) (*gorm.DB, error) {
	dsn, ok := r.dsn[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTenant, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if db, ok := r.dbs[id]; ok {
		return db, nil
	}

	db, err := r.open(dsn)
	if err != nil {
		return nil, fmt.Errorf("open database of tenant %s: %w", id, err)
	}
	r.dbs[id] = db
	return db, nil
}

// Close closes every opened pool.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var closeErrs []error
	for id, db := range r.dbs {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Close()
		}
		if err != nil {
			closeErrs = append(closeErrs, fmt.Errorf("close tenant %s: %w", id, err))
		}
		delete(r.dbs, id)
	}
	return errors.Join(closeErrs...)
}
