package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/incampus/backend/internal/pkg/auth"
	"github.com/incampus/backend/internal/pkg/logger"
)

type seedUser struct {
	email        string
	name         string
	universityID string
	role         string
}

// Demo accounts for development environments. All share the password below.
const seedPassword = "incampus123"

var seedUsers = []seedUser{
	{"asha@bwu.ac.in", "Asha Verma", "BWU/BCA/23/101", "student"},
	{"rohit@bwu.ac.in", "Rohit Sen", "BWU/BCA/23/102", "student"},
	{"meera@bwu.ac.in", "Meera Das", "BWU/CSE/22/201", "student"},
	{"arjun@bwu.ac.in", "Arjun Pal", "BWU/CSE/23/202", "student"},
	{"prof.iyer@bwu.ac.in", "Prof. Iyer", "BWU/FAC/20/001", "faculty"},
}

// CreateDefaultData inserts demo users when the database is empty. Intended
// for development only; production skips seeding entirely.
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool) error {
	var count int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check user count: %w", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, u := range seedUsers {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (email, password, university_id, name, role, is_verified)
			VALUES ($1, $2, $3, $4, $5, TRUE)
			ON CONFLICT (email) DO NOTHING`,
			u.email, hashed, u.universityID, u.name, u.role)
		if err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, err)
		}
	}

	logger.Info().Int("users", len(seedUsers)).Msg("Seeded default users")
	return nil
}
