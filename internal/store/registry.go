package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snowgoose-ai/gateway/internal/model"
)

const modelColumns = `m.id, m.api_name, m.name, m.is_vision, m.is_image_generation,
	m.is_thinking, m.no_system_role, v.id, v.name`

func scanModel(row pgx.Row) (*model.Model, error) {
	var m model.Model
	var v model.Vendor
	err := row.Scan(
		&m.ID, &m.APIName, &m.Name, &m.IsVision, &m.IsImageGeneration,
		&m.IsThinking, &m.NoSystemRole, &v.ID, &v.Name,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrModelNotFound
		}
		return nil, fmt.Errorf("failed to scan model: %w", err)
	}
	m.Vendor = &v
	return &m, nil
}

// ModelByID looks up a model by its logical id.
func (s *Store) ModelByID(ctx context.Context, id int) (*model.Model, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+modelColumns+`
		FROM model m JOIN api_vendor v ON v.id = m.api_vendor_id
		WHERE m.id = $1`, id)
	return scanModel(row)
}

// ModelByAPIName looks up a model by the vendor's model identifier string.
func (s *Store) ModelByAPIName(ctx context.Context, apiName string) (*model.Model, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+modelColumns+`
		FROM model m JOIN api_vendor v ON v.id = m.api_vendor_id
		WHERE m.api_name = $1`, apiName)
	return scanModel(row)
}

// ListModels returns the full model catalog.
func (s *Store) ListModels(ctx context.Context) ([]model.Model, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+modelColumns+`
		FROM model m JOIN api_vendor v ON v.id = m.api_vendor_id
		ORDER BY m.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	defer rows.Close()

	var models []model.Model
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, err
		}
		models = append(models, *m)
	}
	return models, rows.Err()
}
