package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/pokerroom/internal/table"
)

//go:embed schema.sql
var schema embed.FS

// Postgres stores snapshots as JSONB rows keyed by table id
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the database and applies the schema
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// SaveSnapshot upserts the snapshot row for a table
func (p *Postgres) SaveSnapshot(ctx context.Context, snap table.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
        INSERT INTO table_snapshots(table_id, data, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (table_id) DO UPDATE
          SET data = EXCLUDED.data,
              updated_at = now()
    `, snap.ID, data)
	return err
}

// LoadSnapshot returns the snapshot for a table
func (p *Postgres) LoadSnapshot(ctx context.Context, tableID string) (table.Snapshot, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT data FROM table_snapshots WHERE table_id = $1`, tableID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return table.Snapshot{}, ErrNotFound
		}
		return table.Snapshot{}, err
	}

	var snap table.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return table.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", tableID, err)
	}
	return snap, nil
}

// LoadAllSnapshots returns every stored snapshot
func (p *Postgres) LoadAllSnapshots(ctx context.Context) ([]table.Snapshot, error) {
	rows, err := p.pool.Query(ctx, `SELECT data FROM table_snapshots ORDER BY updated_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []table.Snapshot
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var snap table.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// DeleteSnapshot removes a table's snapshot
func (p *Postgres) DeleteSnapshot(ctx context.Context, tableID string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM table_snapshots WHERE table_id = $1`, tableID)
	return err
}

// Close releases the connection pool
func (p *Postgres) Close() { p.pool.Close() }
