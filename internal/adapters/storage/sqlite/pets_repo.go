package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"petpulse/internal/domain/pets"
)

const petColumns = `id, name, species, age, owner_name, created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list pets: %w", err)
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan pet: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	p, err := scanPet(r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("sqlite: get pet %d: %w", id, err)
	}
	return p, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (name, species, age, owner_name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Name, p.Species, p.Age, p.OwnerName, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if err != nil {
		return pets.Pet{}, fmt.Errorf("sqlite: insert pet: %w", err)
	}

	p.ID, err = res.LastInsertId()
	if err != nil {
		return pets.Pet{}, fmt.Errorf("sqlite: insert pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET name = ?, species = ?, age = ?, owner_name = ?, updated_at = ?
		WHERE id = ?
	`, p.Name, p.Species, p.Age, p.OwnerName, p.UpdatedAt.UTC(), p.ID)
	if err != nil {
		return fmt.Errorf("sqlite: update pet %d: %w", p.ID, err)
	}
	return expectOne(res, p.ID)
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: delete pet %d: %w", id, err)
	}
	return expectOne(res, id)
}

func expectOne(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected for pet %d: %w", id, err)
	}
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                    pets.Pet
		createdAt, updatedAt time.Time
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Species, &p.Age, &p.OwnerName, &createdAt, &updatedAt); err != nil {
		return pets.Pet{}, err
	}
	p.CreatedAt = createdAt.UTC()
	p.UpdatedAt = updatedAt.UTC()
	return p, nil
}
