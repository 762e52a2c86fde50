package application

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/linskybing/corpsite-go/internal/repository"
)

const maxAuditPage = 500

type AuditService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewAuditService(repos *repository.Repos) *AuditService {
	return &AuditService{
		Repos: repos,
		now:   time.Now,
	}
}

func (s *AuditService) QueryAuditLogs(params repository.AuditQueryParams) ([]audit.AuditLog, error) {
	if params.Limit <= 0 || params.Limit > maxAuditPage {
		params.Limit = maxAuditPage
	}
	return s.Repos.Audit.Search(params)
}

// ApplicationHistory returns the admin actions recorded against one
// application, oldest first.
func (s *AuditService) ApplicationHistory(id uuid.UUID) ([]audit.AuditLog, error) {
	return s.Repos.Audit.History(audit.ResourceApplication, id.String())
}

// CleanupOldLogs drops audit rows older than the retention window.
func (s *AuditService) CleanupOldLogs(days int) error {
	if days <= 0 {
		return nil
	}
	n, err := s.Repos.Audit.Prune(s.now().AddDate(0, 0, -days))
	if err != nil {
		return err
	}
	log.Printf("[audit] pruned %d entries older than %d days", n, days)
	return nil
}
