package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snowgoose-ai/gateway/internal/model"
)

// GetPersona looks up a persona by id.
func (s *Store) GetPersona(ctx context.Context, id int) (*model.Persona, error) {
	var p model.Persona
	var ownerID *int
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, prompt, owner_id FROM persona WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Prompt, &ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPersonaNotFound
		}
		return nil, fmt.Errorf("failed to get persona: %w", err)
	}
	if ownerID != nil {
		p.OwnerID = *ownerID
	}
	return &p, nil
}

// ListPersonas returns all personas ordered by id.
func (s *Store) ListPersonas(ctx context.Context) ([]model.Persona, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, prompt, COALESCE(owner_id, 0) FROM persona ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list personas: %w", err)
	}
	defer rows.Close()

	var personas []model.Persona
	for rows.Next() {
		var p model.Persona
		if err := rows.Scan(&p.ID, &p.Name, &p.Prompt, &p.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

// CreatePersona inserts a persona and returns its id.
func (s *Store) CreatePersona(ctx context.Context, name, prompt string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO persona (name, prompt) VALUES ($1, $2) RETURNING id`,
		name, prompt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create persona: %w", err)
	}
	return id, nil
}

// DeletePersona removes a persona by id.
func (s *Store) DeletePersona(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM persona WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPersonaNotFound
	}
	return nil
}

// GetOutputFormat looks up an output format by id, including its render
// type name.
func (s *Store) GetOutputFormat(ctx context.Context, id int) (*model.OutputFormat, error) {
	var f model.OutputFormat
	err := s.pool.QueryRow(ctx,
		`SELECT f.id, f.name, f.prompt, COALESCE(f.owner_id, 0),
			COALESCE(f.render_type_id, 0), COALESCE(r.name, '')
		FROM output_format f LEFT JOIN render_type r ON r.id = f.render_type_id
		WHERE f.id = $1`, id,
	).Scan(&f.ID, &f.Name, &f.Prompt, &f.OwnerID, &f.RenderTypeID, &f.RenderTypeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOutputFormatNotFound
		}
		return nil, fmt.Errorf("failed to get output format: %w", err)
	}
	return &f, nil
}

// ListOutputFormats returns all output formats ordered by id.
func (s *Store) ListOutputFormats(ctx context.Context) ([]model.OutputFormat, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT f.id, f.name, f.prompt, COALESCE(f.owner_id, 0),
			COALESCE(f.render_type_id, 0), COALESCE(r.name, '')
		FROM output_format f LEFT JOIN render_type r ON r.id = f.render_type_id
		ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list output formats: %w", err)
	}
	defer rows.Close()

	var formats []model.OutputFormat
	for rows.Next() {
		var f model.OutputFormat
		if err := rows.Scan(&f.ID, &f.Name, &f.Prompt, &f.OwnerID, &f.RenderTypeID, &f.RenderTypeName); err != nil {
			return nil, fmt.Errorf("failed to scan output format: %w", err)
		}
		formats = append(formats, f)
	}
	return formats, rows.Err()
}

// CreateOutputFormat inserts an output format and returns its id.
func (s *Store) CreateOutputFormat(ctx context.Context, name, prompt string, renderTypeID int) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO output_format (name, prompt, render_type_id) VALUES ($1, $2, NULLIF($3, 0)) RETURNING id`,
		name, prompt, renderTypeID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create output format: %w", err)
	}
	return id, nil
}

// DeleteOutputFormat removes an output format by id.
func (s *Store) DeleteOutputFormat(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM output_format WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete output format: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOutputFormatNotFound
	}
	return nil
}
