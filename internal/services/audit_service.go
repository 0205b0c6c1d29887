package services

import (
	"database/sql"
	"strings"

	intconfig "yatrasathi/internal/config"
	intdb "yatrasathi/internal/db"
	"yatrasathi/internal/domain"
	"yatrasathi/internal/domain/models"
	"yatrasathi/internal/repositories"
	"yatrasathi/internal/utils"
)

// AuditService appends one entry per state-changing operation. Record is called
// inside the triggering operation's transaction, so an audit failure fails the
// whole operation rather than being dropped.
type AuditService struct {
	Repo      repositories.AuditLogRepository
	DB        *sql.DB
	RequestID string
}

func (s AuditService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Record appends an entry. Actor defaults to the literal "system" when absent.
func (s AuditService) Record(q intdb.DBTX, actor, action, details string) error {
	if strings.TrimSpace(actor) == "" {
		actor = "system"
	}
	_, err := s.Repo.Insert(q, models.AuditLog{
		Actor:     actor,
		Action:    action,
		Details:   details,
		CreatedAt: utils.NowUTC(),
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "audit", "record", "append failed: "+err.Error())
		return err
	}
	return nil
}

// ListRecent exposes the trail to admins.
func (s AuditService) ListRecent(actor domain.Actor, limit int) ([]models.AuditLog, error) {
	if err := requireRole(actor, "list audit log", domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.Repo.ListRecent(limit)
}
