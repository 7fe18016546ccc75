package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	query := `
		INSERT INTO users (id, auth0_id, email, name, address_line1, city, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query,
		user.ID, user.Auth0ID, user.Email,
		user.Name, user.AddressLine1, user.City, user.Country,
	).Scan(&user.CreatedAt)
}

func (r *PostgresRepository) FindByAuthSubject(ctx context.Context, auth0ID string) (*User, error) {
	return r.findOne(ctx, `WHERE auth0_id = $1`, auth0ID)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresRepository) findOne(ctx context.Context, where string, arg any) (*User, error) {
	query := `
		SELECT id, auth0_id, email, name, address_line1, city, country, created_at
		FROM users ` + where

	u := &User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Auth0ID, &u.Email,
		&u.Name, &u.AddressLine1, &u.City, &u.Country,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *User) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, address_line1 = $2, city = $3, country = $4
		WHERE id = $5
	`, user.Name, user.AddressLine1, user.City, user.Country, user.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
