package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfume-store/models"
)

type PostgresCartRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCartRepository(db *pgxpool.Pool) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

func (r *PostgresCartRepository) Load(ctx context.Context, key string) ([]models.CartLine, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT snapshot FROM cart_snapshots WHERE session_id = $1`, key,
	).Scan(&raw)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *PostgresCartRepository) Save(ctx context.Context, key string, lines []models.CartLine) error {
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO cart_snapshots (session_id, snapshot, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (session_id)
		DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = EXCLUDED.updated_at
	`, key, raw, time.Now())
	return err
}

func (r *PostgresCartRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_snapshots WHERE session_id = $1`, key)
	return err
}
