package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/frasnym/swagger-api-pets/internal/domain/pets"
)

type PetsRepo struct {
	db  *sql.DB
	log *zap.Logger
}

func NewPetsRepo(db *sql.DB, log *zap.Logger) *PetsRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &PetsRepo{db: db, log: log}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, type, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		p.ID,
		p.Type,
		p.Name,
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting pet: %w", err)
	}

	r.log.Debug("inserted pet", zap.String("pet_id", p.ID))
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, name, created_at, updated_at
		FROM pets
		WHERE id = ?
	`, id)

	var p pets.Pet
	var createdAt, updatedAt int64
	if err := row.Scan(&p.ID, &p.Type, &p.Name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("querying pet: %w", err)
	}

	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

// List returns the whole collection in insertion order (rowid order, which is
// what the flat file would replay).
func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, name, created_at, updated_at
		FROM pets
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying pets: %w", err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		var createdAt, updatedAt int64
		if err := rows.Scan(&p.ID, &p.Type, &p.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning pet row: %w", err)
		}
		p.CreatedAt = fromMillis(createdAt)
		p.UpdatedAt = fromMillis(updatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pet rows: %w", err)
	}
	return out, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET type = ?, name = ?, updated_at = ?
		WHERE id = ?
	`,
		p.Type,
		p.Name,
		toMillis(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating pet: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pet: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if n == 0 {
		return pets.ErrNotFound
	}

	r.log.Debug("deleted pet", zap.String("pet_id", id))
	return nil
}

var _ pets.Repository = (*PetsRepo)(nil)
