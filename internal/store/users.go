package store

import (
	"context"
	"errors"

	"example.com/socialhub/internal/models"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, username, password, profile_pic, bio, is_frozen, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Username, &u.Password,
		&u.ProfilePic, &u.Bio, &u.IsFrozen, &u.Created, &u.Updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	return u, err
}

// --- User operations ---

// CreateUser inserts a new user row. The username carries a unique
// constraint; a second signup with the same username returns ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO users (id, name, email, username, password, profile_pic, bio, is_frozen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+userColumns,
		u.ID, u.Name, u.Email, u.Username, u.Password, u.ProfilePic, u.Bio, u.IsFrozen,
	)

	created, err := scanUser(row)
	if err != nil {
		if isDuplicate(err) {
			return models.User{}, ErrDuplicate
		}
		logg.Error("store", "Failed to create user (details anonymized)", err)
		return models.User{}, err
	}

	logg.Info("store", "User created successfully (username anonymized)")
	return created, nil
}

// GetUserByCredentials returns the first user matching both username and
// password exactly. Plaintext comparison is the published signin contract.
func (s *Store) GetUserByCredentials(ctx context.Context, username, password string) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE username = $1 AND password = $2`,
		username, password,
	)
	return scanUser(row)
}

// GetUserByIDOrUsername resolves a profile query that may be either field.
func (s *Store) GetUserByIDOrUsername(ctx context.Context, query string) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE id = $1 OR username = $1`,
		query,
	)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpdateUser overwrites the mutable profile fields unconditionally.
func (s *Store) UpdateUser(ctx context.Context, u models.User) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE users
		SET name = $2, email = $3, username = $4, password = $5,
		    profile_pic = $6, bio = $7, updated_at = now()
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Username, u.Password, u.ProfilePic, u.Bio,
	)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		logg.Error("store", "Failed to update user", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	logg.Info("store", "User updated (user id anonymized)")
	return nil
}

func (s *Store) FreezeUser(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx,
		`UPDATE users SET is_frozen = TRUE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		logg.Error("store", "Failed to freeze user", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	logg.Info("store", "User account frozen (user id anonymized)")
	return nil
}
