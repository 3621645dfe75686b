package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"leadsniper/internal/models"
)

// GrantEntitlement performs the merge-upsert for one customer email:
// create-if-absent, else overwrite the grant fields and leave everything
// else untouched. Repeated grants for the same email converge to
// is_entitled=true with the timestamp and provenance of the latest call.
func (d *DB) GrantEntitlement(ctx context.Context, email, sourceTag string) (*models.Entitlement, error) {
	query := `
		INSERT INTO entitlements (email, is_entitled, granted_at, source_tag)
		VALUES ($1, true, now(), $2)
		ON CONFLICT (email) DO UPDATE SET
			is_entitled = true,
			granted_at = now(),
			source_tag = EXCLUDED.source_tag,
			updated_at = now()
		RETURNING email, is_entitled, granted_at, source_tag, created_at, updated_at
	`

	var e models.Entitlement
	err := d.Pool.QueryRow(ctx, query, email, sourceTag).Scan(
		&e.Email, &e.IsEntitled, &e.GrantedAt, &e.SourceTag, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to grant entitlement: %w", err)
	}

	return &e, nil
}

// GetEntitlement fetches the entitlement record for an email.
func (d *DB) GetEntitlement(ctx context.Context, email string) (*models.Entitlement, error) {
	query := `
		SELECT email, is_entitled, granted_at, source_tag, created_at, updated_at
		FROM entitlements
		WHERE email = $1
	`

	var e models.Entitlement
	err := d.Pool.QueryRow(ctx, query, email).Scan(
		&e.Email, &e.IsEntitled, &e.GrantedAt, &e.SourceTag, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntitlementNotFound
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}

	return &e, nil
}

// ListEntitlements returns the most recently granted entitlements.
func (d *DB) ListEntitlements(ctx context.Context, limit int) ([]models.Entitlement, error) {
	query := `
		SELECT email, is_entitled, granted_at, source_tag, created_at, updated_at
		FROM entitlements
		ORDER BY granted_at DESC
		LIMIT $1
	`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	defer rows.Close()

	var out []models.Entitlement
	for rows.Next() {
		var e models.Entitlement
		if err := rows.Scan(&e.Email, &e.IsEntitled, &e.GrantedAt, &e.SourceTag, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entitlement: %w", err)
		}
		out = append(out, e)
	}

	return out, rows.Err()
}
