// Package storage persists configuration snapshots (parameters, salary
// scenarios, house goals) in SQLite so planning sessions survive restarts.
// The calculation packages never touch storage; this layer belongs to the
// surrounding application.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmolina/homeplan/internal/config"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// Repository provides snapshot persistence backed by SQLite.
type Repository struct {
	db *sql.DB
}

// SnapshotInfo identifies a stored snapshot.
type SnapshotInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// NewRepository opens (creating if necessary) the SQLite database at dbPath
// and applies migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the underlying database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveSnapshot stores the configuration's parameters, scenarios, and houses
// under a new snapshot id, which it returns. Scenario and house ids are kept
// if present and minted otherwise.
func (r *Repository) SaveSnapshot(ctx context.Context, name string, conf config.Configuration) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	snapshotID := uuid.NewString()
	params := conf.Params

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, created_at, initial_capital, interest_rate, cushion,
			expenses_fixed, investment, has_ico, has_itp, show_investment_projection, investment_return_rate)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshotID, name, time.Now().UTC().Format(time.RFC3339),
		params.InitialCapital, params.InterestRate, params.Cushion,
		params.ExpensesFixed, params.Investment,
		boolToInt(params.HasICO), boolToInt(params.HasITP),
		boolToInt(params.ShowInvestmentProjection), params.InvestmentReturnRate)
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	for _, scenario := range conf.Scenarios {
		id := scenario.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scenarios (id, snapshot_id, label, net_monthly, gross_annual, num_payments, age, children)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, snapshotID, scenario.Label, scenario.NetMonthly, scenario.GrossAnnual,
			scenario.NumPayments, scenario.Age, scenario.Children)
		if err != nil {
			return "", fmt.Errorf("insert scenario %q: %w", scenario.Label, err)
		}
	}

	for _, house := range conf.Houses {
		id := house.ID
		if id == "" {
			id = uuid.NewString()
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO houses (id, snapshot_id, label, price) VALUES (?, ?, ?, ?)`,
			id, snapshotID, house.Label, house.Price)
		if err != nil {
			return "", fmt.Errorf("insert house %q: %w", house.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}

	return snapshotID, nil
}

// LoadSnapshot reads a stored snapshot back into a Configuration. Logging and
// output settings are not persisted; callers merge those from their own config.
func (r *Repository) LoadSnapshot(ctx context.Context, id string) (*config.Configuration, error) {
	var conf config.Configuration
	var hasICO, hasITP, showProjection int

	row := r.db.QueryRowContext(ctx,
		`SELECT initial_capital, interest_rate, cushion, expenses_fixed, investment,
			has_ico, has_itp, show_investment_projection, investment_return_rate
		 FROM snapshots WHERE id = ?`, id)
	err := row.Scan(&conf.Params.InitialCapital, &conf.Params.InterestRate, &conf.Params.Cushion,
		&conf.Params.ExpensesFixed, &conf.Params.Investment,
		&hasICO, &hasITP, &showProjection, &conf.Params.InvestmentReturnRate)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	conf.Params.HasICO = hasICO != 0
	conf.Params.HasITP = hasITP != 0
	conf.Params.ShowInvestmentProjection = showProjection != 0

	scenarios, err := r.db.QueryContext(ctx,
		`SELECT id, label, net_monthly, gross_annual, num_payments, age, children
		 FROM scenarios WHERE snapshot_id = ? ORDER BY label`, id)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	defer scenarios.Close()
	for scenarios.Next() {
		var s config.SalaryScenario
		if err := scenarios.Scan(&s.ID, &s.Label, &s.NetMonthly, &s.GrossAnnual,
			&s.NumPayments, &s.Age, &s.Children); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		conf.Scenarios = append(conf.Scenarios, s)
	}
	if err := scenarios.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}

	houses, err := r.db.QueryContext(ctx,
		`SELECT id, label, price FROM houses WHERE snapshot_id = ? ORDER BY label`, id)
	if err != nil {
		return nil, fmt.Errorf("load houses: %w", err)
	}
	defer houses.Close()
	for houses.Next() {
		var h config.HouseGoal
		if err := houses.Scan(&h.ID, &h.Label, &h.Price); err != nil {
			return nil, fmt.Errorf("scan house: %w", err)
		}
		conf.Houses = append(conf.Houses, h)
	}
	if err := houses.Err(); err != nil {
		return nil, fmt.Errorf("iterate houses: %w", err)
	}

	return &conf, nil
}

// ListSnapshots returns all stored snapshots, newest first.
func (r *Repository) ListSnapshots(ctx context.Context) ([]SnapshotInfo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM snapshots ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var createdAt string
		if err := rows.Scan(&info.ID, &info.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		info.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot timestamp: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return infos, nil
}

// LatestSnapshotID returns the id of the most recently saved snapshot.
func (r *Repository) LatestSnapshotID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM snapshots ORDER BY created_at DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("no snapshots stored")
	}
	if err != nil {
		return "", fmt.Errorf("latest snapshot: %w", err)
	}
	return id, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
