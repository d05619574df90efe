package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/shipsheet/shipsheet/internal/domain/errors"
	"github.com/shipsheet/shipsheet/internal/domain/model"
	"github.com/shipsheet/shipsheet/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage layer uses. Tests swap
// in a pgxmock pool through newPgxPool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type profileRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type auditRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Audit() repository.AuditRepository {
	return &auditRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
            id TEXT PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            vendor_name TEXT,
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            assigned_vendor_id TEXT REFERENCES profiles(id),
            order_number TEXT,
            customer_name TEXT,
            shipping_address TEXT,
            carrier TEXT,
            tracking_number TEXT,
            tracking_url TEXT,
            status TEXT NOT NULL,
            issue_reason TEXT,
            ship_date TIMESTAMPTZ,
            created_by TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_updates (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            updated_by TEXT,
            field TEXT NOT NULL,
            old_value TEXT,
            new_value TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_number ON orders(order_number) WHERE order_number IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_orders_vendor ON orders(assigned_vendor_id, updated_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_updates_order ON order_updates(order_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- ProfileRepository implementation ---

const profileColumns = `id, email, password_hash, role, COALESCE(vendor_name, ''), is_active, created_at`

func scanProfile(row pgx.Row) (*model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.VendorName, &p.IsActive, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Create(ctx context.Context, profile model.Profile) (*model.Profile, error) {
	const query = `INSERT INTO profiles (id, email, password_hash, role, vendor_name, is_active)
                   VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
                   RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		profile.ID, profile.Email, profile.PasswordHash, profile.Role, profile.VendorName, profile.IsActive,
	).Scan(&profile.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email=$1`
	return scanProfile(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id=$1`
	return scanProfile(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *profileRepository) ListVendors(ctx context.Context) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role='vendor' ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.Role, &p.VendorName, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *profileRepository) SetActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE profiles SET is_active=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, COALESCE(assigned_vendor_id, ''), COALESCE(order_number, ''),
        COALESCE(customer_name, ''), COALESCE(shipping_address, ''), COALESCE(carrier, ''),
        COALESCE(tracking_number, ''), COALESCE(tracking_url, ''), status, COALESCE(issue_reason, ''),
        ship_date, COALESCE(created_by, ''), created_at, updated_at`

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.AssignedVendorID, &o.OrderNumber, &o.CustomerName, &o.ShippingAddress,
		&o.Carrier, &o.TrackingNumber, &o.TrackingURL, &o.Status, &o.IssueReason,
		&o.ShipDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.AssignedVendorID, &o.OrderNumber, &o.CustomerName, &o.ShippingAddress,
			&o.Carrier, &o.TrackingNumber, &o.TrackingURL, &o.Status, &o.IssueReason,
			&o.ShipDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const insertOrder = `INSERT INTO orders
            (id, assigned_vendor_id, order_number, customer_name, shipping_address,
             carrier, tracking_number, tracking_url, status, issue_reason, ship_date, created_by)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
                NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, NULLIF($10, ''), $11, NULLIF($12, ''))`

func orderInsertArgs(o model.Order) []any {
	return []any{
		o.ID, o.AssignedVendorID, o.OrderNumber, o.CustomerName, o.ShippingAddress,
		string(o.Carrier), o.TrackingNumber, o.TrackingURL, string(o.Status), o.IssueReason,
		o.ShipDate, o.CreatedBy,
	}
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, error) {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	query := insertOrder + ` RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, orderInsertArgs(order)...).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) CreateBatch(ctx context.Context, orders []model.Order) (int, error) {
	query := insertOrder + ` ON CONFLICT (order_number) WHERE order_number IS NOT NULL DO NOTHING`
	inserted := 0
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, order := range orders {
			if order.ID == "" {
				order.ID = uuid.NewString()
			}
			tag, err := tx.Exec(ctx, query, orderInsertArgs(order)...)
			if err != nil {
				return err
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	return scanOrderRow(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY updated_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE assigned_vendor_id=$1 ORDER BY updated_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// nullableTextColumns are stored as NULL when the value is the empty string.
var nullableTextColumns = map[model.Field]struct{}{
	model.FieldAssignedVendorID: {},
	model.FieldOrderNumber:      {},
	model.FieldCustomerName:     {},
	model.FieldShippingAddress:  {},
	model.FieldCarrier:          {},
	model.FieldTrackingNumber:   {},
	model.FieldTrackingURL:      {},
	model.FieldIssueReason:      {},
}

func (r *orderRepository) Update(ctx context.Context, id string, changes map[model.Field]any) error {
	fields := make([]model.Field, 0, len(changes))
	for field := range changes {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	set := make([]string, 0, len(fields)+1)
	args := []any{id}
	for i, field := range fields {
		placeholder := fmt.Sprintf("$%d", i+2)
		if _, nullable := nullableTextColumns[field]; nullable {
			set = append(set, fmt.Sprintf("%s=NULLIF(%s, '')", field, placeholder))
		} else {
			set = append(set, fmt.Sprintf("%s=%s", field, placeholder))
		}
		args = append(args, changes[field])
	}
	set = append(set, "updated_at=NOW()")

	query := `UPDATE orders SET ` + strings.Join(set, ", ") + ` WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM orders WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ExistingOrderNumbers(ctx context.Context, numbers []string) (map[string]struct{}, error) {
	const query = `SELECT order_number FROM orders WHERE order_number = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, numbers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	existing := make(map[string]struct{})
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, err
		}
		existing[number] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return existing, nil
}

// --- AuditRepository implementation ---

func (r *auditRepository) Append(ctx context.Context, entry model.AuditEntry) error {
	const query = `INSERT INTO order_updates (order_id, updated_by, field, old_value, new_value)
                   VALUES ($1, $2, $3, $4, $5)`
	_, err := r.storage.pool.Exec(ctx, query,
		entry.OrderID, entry.UpdatedBy, string(entry.Field), entry.OldValue, entry.NewValue)
	return err
}

func (r *auditRepository) ListByOrder(ctx context.Context, orderID string) ([]model.AuditEntry, error) {
	const query = `SELECT id, order_id, COALESCE(updated_by, ''), field, COALESCE(old_value, ''), COALESCE(new_value, ''), created_at
                   FROM order_updates WHERE order_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.UpdatedBy, &e.Field, &e.OldValue, &e.NewValue, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
