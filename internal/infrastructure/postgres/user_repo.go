package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abaaza/wallmastersbackend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, reset_token, reset_token_expires_at,
	refresh_token, saved_addresses, saved_items, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	addresses, items, err := marshalCollections(user)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, saved_addresses, saved_items)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		user.Name, user.Email, user.PasswordHash, addresses, items,
	)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on the lower(email) index.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE reset_token = $1 AND reset_token_expires_at > $2`,
		token, now)
	return scanUser(row)
}

func (r *UserRepository) FindByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE refresh_token = $1`, token)
	return scanUser(row)
}

// Update writes back the whole mutable portion of the document. There is no
// version check: concurrent writers to the same user last-write-wins.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	addresses, items, err := marshalCollections(user)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET
			name = $2,
			email = $3,
			password_hash = $4,
			reset_token = NULLIF($5, ''),
			reset_token_expires_at = $6,
			refresh_token = NULLIF($7, ''),
			saved_addresses = $8,
			saved_items = $9,
			updated_at = now()
		 WHERE id = $1`,
		user.ID, user.Name, user.Email, user.PasswordHash,
		user.ResetToken, user.ResetTokenExpiresAt, user.RefreshToken,
		addresses, items,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET reset_token = NULL, reset_token_expires_at = NULL
		 WHERE reset_token_expires_at IS NOT NULL AND reset_token_expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("purge expired reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func marshalCollections(user *domain.User) ([]byte, []byte, error) {
	if user.SavedAddresses == nil {
		user.SavedAddresses = []domain.Address{}
	}
	if user.SavedItems == nil {
		user.SavedItems = []domain.SavedItem{}
	}

	addresses, err := json.Marshal(user.SavedAddresses)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal addresses: %w", err)
	}
	items, err := json.Marshal(user.SavedItems)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal saved items: %w", err)
	}
	return addresses, items, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u            domain.User
		resetToken   *string
		refreshToken *string
		addresses    []byte
		items        []byte
	)

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&resetToken, &u.ResetTokenExpiresAt, &refreshToken,
		&addresses, &items, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		// 22P02: a non-UUID id in the query text; treat as no match.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	if resetToken != nil {
		u.ResetToken = *resetToken
	}
	if refreshToken != nil {
		u.RefreshToken = *refreshToken
	}

	if err := json.Unmarshal(addresses, &u.SavedAddresses); err != nil {
		return nil, fmt.Errorf("unmarshal addresses: %w", err)
	}
	if err := json.Unmarshal(items, &u.SavedItems); err != nil {
		return nil, fmt.Errorf("unmarshal saved items: %w", err)
	}
	return &u, nil
}
