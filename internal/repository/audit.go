package repository

import (
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"gorm.io/gorm"
)

// maxHistory caps the timeline returned for a single resource.
const maxHistory = 500

// AuditQueryParams filters the back-office audit search. Nil fields match everything.
type AuditQueryParams struct {
	UserID       *uint
	ResourceType *string
	ResourceID   *string
	Action       *string
	StartTime    *time.Time
	EndTime      *time.Time
	Limit        int
	Offset       int
}

func (p AuditQueryParams) scope(q *gorm.DB) *gorm.DB {
	if p.UserID != nil {
		q = q.Where("user_id = ?", *p.UserID)
	}
	if p.ResourceType != nil {
		q = q.Where("resource_type = ?", *p.ResourceType)
	}
	if p.ResourceID != nil {
		q = q.Where("resource_id = ?", *p.ResourceID)
	}
	if p.Action != nil {
		q = q.Where("action = ?", *p.Action)
	}
	if p.StartTime != nil {
		q = q.Where("created_at >= ?", *p.StartTime)
	}
	if p.EndTime != nil {
		q = q.Where("created_at <= ?", *p.EndTime)
	}
	return q
}

type AuditRepo interface {
	Record(entry *audit.AuditLog) error
	Search(params AuditQueryParams) ([]audit.AuditLog, error)
	History(resourceType, resourceID string) ([]audit.AuditLog, error)
	Prune(before time.Time) (int64, error)
	WithTx(tx *gorm.DB) AuditRepo
}

type DBAuditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *DBAuditRepo {
	return &DBAuditRepo{db: db}
}

func (r *DBAuditRepo) Record(entry *audit.AuditLog) error {
	return r.db.Create(entry).Error
}

// Search returns matching entries, newest first.
func (r *DBAuditRepo) Search(params AuditQueryParams) ([]audit.AuditLog, error) {
	var logs []audit.AuditLog
	q := params.scope(r.db.Model(&audit.AuditLog{})).
		Order("created_at DESC").Order("id DESC")
	if params.Limit > 0 {
		q = q.Limit(params.Limit)
	}
	if params.Offset > 0 {
		q = q.Offset(params.Offset)
	}
	err := q.Find(&logs).Error
	return logs, err
}

// History returns the timeline of one resource in the order it happened.
func (r *DBAuditRepo) History(resourceType, resourceID string) ([]audit.AuditLog, error) {
	logs := make([]audit.AuditLog, 0)
	err := r.db.
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at ASC").Order("id ASC").
		Limit(maxHistory).
		Find(&logs).Error
	return logs, err
}

// Prune deletes entries created before the cutoff and reports how many went.
func (r *DBAuditRepo) Prune(before time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", before).Delete(&audit.AuditLog{})
	return res.RowsAffected, res.Error
}

func (r *DBAuditRepo) WithTx(tx *gorm.DB) AuditRepo {
	if tx == nil {
		return r
	}
	return &DBAuditRepo{db: tx}
}
