package repositories

import (
	"context"

	"shuttle/internal/domain/models"
)

type AdminRepository struct {
	DB DBTX
}

// GetByUsername returns sql.ErrNoRows for unknown usernames.
func (r AdminRepository) GetByUsername(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	db := resolve(r.DB)
	if db == nil {
		return a, ErrNoDB
	}
	err := db.QueryRowContext(ctx, `SELECT id, username, password_hash FROM admins WHERE username=? LIMIT 1`, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash)
	return a, err
}

func (r AdminRepository) ExistsUsername(ctx context.Context, username string) (bool, error) {
	db := resolve(r.DB)
	if db == nil {
		return false, ErrNoDB
	}
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins WHERE username=?`, username).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Insert relies on the unique key on username as the authoritative guard.
func (r AdminRepository) Insert(ctx context.Context, username, passwordHash string) (int64, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	res, err := db.ExecContext(ctx, `INSERT INTO admins (username, password_hash) VALUES (?, ?)`, username, passwordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r AdminRepository) Count(ctx context.Context) (int, error) {
	db := resolve(r.DB)
	if db == nil {
		return 0, ErrNoDB
	}
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}
