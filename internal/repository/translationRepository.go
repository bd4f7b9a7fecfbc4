package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/RaikyD/shopify-order-translator/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"time"
)

const historyLimit = 50

type TranslationRepository struct {
	pool *pgxpool.Pool
}

func NewTranslationRepository(p *pgxpool.Pool) *TranslationRepository {
	return &TranslationRepository{pool: p}
}

func (r *TranslationRepository) Save(ctx context.Context, rec domain.TranslationRecord) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("translation record id: %w", err)
	}
	if rec.Pairs == nil {
		rec.Pairs = []domain.TranslationPair{}
	}
	pairs, err := json.Marshal(rec.Pairs)
	if err != nil {
		return fmt.Errorf("marshal pairs: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO translation_log
			(id, order_id, status, reason, pairs, order_updated, created_at)
		 VALUES
			($1, $2, $3, $4, $5, $6, $7)`,
		id,
		rec.OrderID,
		string(rec.Status),
		rec.Reason,
		pairs,
		rec.OrderUpdated,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert translation_log: %w", err)
	}
	return nil
}

func (r *TranslationRepository) ListByOrder(ctx context.Context, orderID int64) ([]domain.TranslationRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, status, reason, pairs, order_updated, created_at
		   FROM translation_log
		  WHERE order_id = $1
		  ORDER BY created_at DESC
		  LIMIT $2`, orderID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("query translation_log: %w", err)
	}
	defer rows.Close()

	var out []domain.TranslationRecord
	for rows.Next() {
		var (
			id        uuid.UUID
			rec       domain.TranslationRecord
			status    string
			pairs     []byte
			createdAt time.Time
		)
		if err := rows.Scan(&id, &rec.OrderID, &status, &rec.Reason, &pairs, &rec.OrderUpdated, &createdAt); err != nil {
			return nil, fmt.Errorf("scan translation_log: %w", err)
		}
		if len(pairs) > 0 {
			if err := json.Unmarshal(pairs, &rec.Pairs); err != nil {
				return nil, fmt.Errorf("unmarshal pairs: %w", err)
			}
		}
		rec.ID = id.String()
		rec.Status = domain.Status(status)
		rec.CreatedAt = createdAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
