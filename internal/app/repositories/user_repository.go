package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incampus/backend/internal/app/models"
	"github.com/incampus/backend/internal/pkg/apperrors"
	"github.com/incampus/backend/internal/pkg/dberrors"
)

const userColumns = `id, email, password, university_id, name, bio, role, avatar_url, cover_photo_url, is_verified, otp_code, otp_expires_at, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.UniversityID,
		&u.Name,
		&u.Bio,
		&u.Role,
		&u.AvatarURL,
		&u.CoverPhotoURL,
		&u.IsVerified,
		&u.OTPCode,
		&u.OTPExpiresAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user and fills in its generated fields
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password, university_id, name, bio, role, is_verified, otp_code, otp_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.UniversityID,
		user.Name,
		user.Bio,
		user.Role,
		user.IsVerified,
		user.OTPCode,
		user.OTPExpiresAt,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "users_university_id_key") {
			return apperrors.ErrUniversityIDExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// EmailExists checks whether an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// SetOTP stores a fresh verification code for the user
func (r *UserRepository) SetOTP(ctx context.Context, userID int64, code string, expiresAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET otp_code = $2, otp_expires_at = $3, updated_at = NOW() WHERE id = $1`,
		userID, code, expiresAt)
	if err != nil {
		return fmt.Errorf("error storing OTP: %w", err)
	}
	return nil
}

// ClearOTP discards the user's pending code after it has been used
func (r *UserRepository) ClearOTP(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET otp_code = NULL, otp_expires_at = NULL, updated_at = NOW() WHERE id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("error clearing OTP: %w", err)
	}
	return nil
}

// MarkVerified flags the user as verified and clears any pending code
func (r *UserRepository) MarkVerified(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = NOW() WHERE id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("error marking user verified: %w", err)
	}
	return nil
}

// UpdateProfile applies the provided profile fields; nil fields are untouched
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, name, bio, role *string) (*models.User, error) {
	builder := squirrel.Update("users").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", userID).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(squirrel.Dollar)

	if name != nil {
		builder = builder.Set("name", *name)
	}
	if bio != nil {
		builder = builder.Set("bio", *bio)
	}
	if role != nil {
		builder = builder.Set("role", *role)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return user, nil
}

// UpdateAvatarURL replaces the user's avatar URL
func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID int64, url string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = NOW() WHERE id = $1`,
		userID, url)
	if err != nil {
		return fmt.Errorf("error updating avatar: %w", err)
	}
	return nil
}

// UpdateCoverPhotoURL replaces the user's cover photo URL
func (r *UserRepository) UpdateCoverPhotoURL(ctx context.Context, userID int64, url string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET cover_photo_url = $2, updated_at = NOW() WHERE id = $1`,
		userID, url)
	if err != nil {
		return fmt.Errorf("error updating cover photo: %w", err)
	}
	return nil
}

// UpdateEmail replaces the user's email address
func (r *UserRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET email = $2, updated_at = NOW() WHERE id = $1`,
		userID, email)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating email: %w", err)
	}
	return nil
}

// UpdatePassword replaces the user's password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`,
		userID, hashedPassword)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	return nil
}

// Delete removes the user. Posts, friendships and notifications referencing
// the account go with it through the cascading foreign keys.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListExcluding returns every user whose id is not in the exclude list. This
// feeds the suggestion engine's candidate set.
func (r *UserRepository) ListExcluding(ctx context.Context, exclude []int64) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE NOT (id = ANY($1)) ORDER BY id`

	rows, err := r.db.Query(ctx, query, exclude)
	if err != nil {
		return nil, fmt.Errorf("error listing candidate users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Search finds users matching the query across name, email, university id and
// bio, capped at limit results.
func (r *UserRepository) Search(ctx context.Context, q string, limit int) ([]*models.User, error) {
	pattern := "%" + q + "%"

	builder := squirrel.Select(userColumns).
		From("users").
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"university_id": pattern},
			squirrel.ILike{"role": pattern},
			squirrel.ILike{"bio": pattern},
		}).
		OrderBy("name").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// Count returns the total number of users
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}
