package repositories

import (
	"database/sql"
	"errors"

	intconfig "yatrasathi/internal/config"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

// UserRepository reads reference identity data. Credential writes live in the
// external identity service.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByID(id domain.ID) (models.User, error) {
	var u models.User
	err := r.db().QueryRow(`
		SELECT id, name, email, COALESCE(phone, ''), role, active
		FROM users
		WHERE id = ? LIMIT 1`, id).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Role,
		&u.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r UserRepository) Count() (int64, error) {
	var n int64
	err := r.db().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
