package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UpsertUserByExternalID creates or updates a user keyed by the identity
// provider's id. New users default to the STUDENT role; the role of an
// existing user is never touched by lifecycle events.
func (db *DB) UpsertUserByExternalID(ctx context.Context, externalID, email string, name, avatarURL *string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (external_id, email, name, avatar_url, role)
		 VALUES ($1, $2, $3, $4, 'STUDENT')
		 ON CONFLICT (external_id)
		 DO UPDATE SET email = $2, name = $3, avatar_url = $4, updated_at = NOW()
		 RETURNING id`,
		externalID, email, name, avatarURL,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by internal id. Returns nil when absent.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return db.getUser(ctx, "id = $1", id)
}

// GetUserByExternalID retrieves a user by the identity provider's id.
// Returns nil when absent.
func (db *DB) GetUserByExternalID(ctx context.Context, externalID string) (*User, error) {
	return db.getUser(ctx, "external_id = $1", externalID)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, external_id, email, name, avatar_url, role, created_at, updated_at
		 FROM users WHERE `+where,
		arg,
	).Scan(&u.ID, &u.ExternalID, &u.Email, &u.Name, &u.AvatarURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// UpdateUserRole changes a user's role. The role is mutable post-creation;
// a student can become a recruiter and vice versa.
func (db *DB) UpdateUserRole(ctx context.Context, id uuid.UUID, role UserRole) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2`,
		role, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

// DeleteUserByExternalID removes a user on a provider deletion event.
// Returns false when no such user existed (a tolerated out-of-order delivery).
func (db *DB) DeleteUserByExternalID(ctx context.Context, externalID string) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`DELETE FROM users WHERE external_id = $1`,
		externalID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
