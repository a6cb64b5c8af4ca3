package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgrid/campusgrid/internal/app/models"
	"github.com/campusgrid/campusgrid/internal/db"
	"github.com/campusgrid/campusgrid/internal/pkg/apperrors"
	"github.com/campusgrid/campusgrid/internal/pkg/logger"
)

// TokenRepository handles refresh token database operations. Rows are created
// at issuance and deleted on rotation or revocation; a missing row is an
// invalid token.
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create stores a newly issued refresh token.
func (r *TokenRepository) Create(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expires_at", "created_at").
		Values(token, userID, expiresAt, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}

	return nil
}

// GetByValue retrieves a refresh token row. Expiry is checked here, at use
// time: an expired row yields apperrors.ErrTokenExpired, a missing row
// apperrors.ErrTokenNotFound.
func (r *TokenRepository) GetByValue(ctx context.Context, token string) (*models.RefreshToken, error) {
	sql, args, err := r.sb.Select("token", "user_id", "expires_at", "created_at").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	var rt models.RefreshToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(&rt.Token, &rt.UserID, &rt.ExpiresAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving token: %w", err)
	}

	if rt.Expired(time.Now()) {
		return nil, apperrors.ErrTokenExpired
	}

	return &rt, nil
}

// Rotate atomically replaces oldToken with newToken for the same user. The
// delete runs before the insert inside one transaction, so a crash can leave
// the old token gone but never two valid tokens, and of two concurrent
// rotations only the one that deletes the row succeeds.
func (r *TokenRepository) Rotate(ctx context.Context, oldToken, newToken string, expiresAt time.Time) (int64, error) {
	var userID int64

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		delSQL, delArgs, err := r.sb.Delete("refresh_tokens").
			Where(squirrel.Eq{"token": oldToken}).
			Suffix("RETURNING user_id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build rotate delete query: %w", err)
		}

		if err := tx.QueryRow(ctx, delSQL, delArgs...).Scan(&userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrTokenNotFound
			}
			return fmt.Errorf("error deleting rotated token: %w", err)
		}

		insSQL, insArgs, err := r.sb.Insert("refresh_tokens").
			Columns("token", "user_id", "expires_at", "created_at").
			Values(newToken, userID, expiresAt, time.Now()).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build rotate insert query: %w", err)
		}

		if _, err := tx.Exec(ctx, insSQL, insArgs...); err != nil {
			return fmt.Errorf("error inserting rotated token: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// DeleteAllForUser deletes every refresh token owned by the user and reports
// how many rows were removed. Idempotent.
func (r *TokenRepository) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	sql, args, err := r.sb.Delete("refresh_tokens").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete user tokens query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing delete user tokens query")
		return 0, fmt.Errorf("error deleting user tokens: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
