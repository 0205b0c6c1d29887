package repositories

import (
	"database/sql"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
)

// AuditLogRepository is append-only; rows are never updated or deleted.
type AuditLogRepository struct {
	DB *sql.DB
}

func (r AuditLogRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AuditLogRepository) Insert(q intdb.DBTX, entry models.AuditLog) (models.AuditLog, error) {
	res, err := q.Exec(`
		INSERT INTO audit_logs (actor, action, details, created_at)
		VALUES (?, ?, ?, ?)`,
		entry.Actor,
		entry.Action,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return models.AuditLog{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.AuditLog{}, err
	}
	entry.ID = domain.ID(id)
	return entry, nil
}

func (r AuditLogRepository) ListRecent(limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db().Query(`
		SELECT id, actor, action, COALESCE(details, ''), created_at
		FROM audit_logs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AuditLog{}
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
