package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"gorm.io/gorm"
)

type ApplicationQueryParams struct {
	Status       *jobapp.Status
	Priority     *jobapp.Priority
	JobListingID *string
	Search       string
	Limit        int
	Offset       int
}

type ApplicationRepo interface {
	Create(ctx context.Context, app *jobapp.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*jobapp.Application, error)
	List(ctx context.Context, params ApplicationQueryParams) ([]jobapp.Application, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, change jobapp.StatusChange) error
	UpdateDetails(ctx context.Context, id uuid.UUID, change jobapp.DetailsChange) error
	AppendCommunication(ctx context.Context, id uuid.UUID, entry jobapp.Communication) error
	WithTx(tx *gorm.DB) ApplicationRepo
}

type DBApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *DBApplicationRepo {
	return &DBApplicationRepo{
		db: db,
	}
}

func (r *DBApplicationRepo) Create(ctx context.Context, app *jobapp.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *DBApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*jobapp.Application, error) {
	var app jobapp.Application
	if err := r.db.WithContext(ctx).First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *DBApplicationRepo) List(ctx context.Context, params ApplicationQueryParams) ([]jobapp.Application, int64, error) {
	var apps []jobapp.Application
	query := r.db.WithContext(ctx).Model(&jobapp.Application{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Priority != nil {
		query = query.Where("priority = ?", *params.Priority)
	}
	if params.JobListingID != nil {
		query = query.Where("job_listing_id = ?", *params.JobListingID)
	}
	if s := strings.TrimSpace(params.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(candidate_name) LIKE ? OR LOWER(candidate_email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	err := query.Find(&apps).Error
	return apps, total, err
}

// UpdateStatus overwrites the status columns; concurrent updates are last-write-wins.
func (r *DBApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, change jobapp.StatusChange) error {
	updates := map[string]any{
		"status":      change.Status,
		"reviewed_by": change.ReviewedBy,
		"reviewed_at": change.ReviewedAt,
		"updated_at":  change.ReviewedAt,
	}
	if change.Priority != nil {
		updates["priority"] = *change.Priority
	}
	if change.Rating != nil {
		updates["rating"] = *change.Rating
	}
	if change.Notes != nil {
		updates["internal_notes"] = *change.Notes
	}
	if change.Interview != nil {
		updates["interview_schedule"] = change.Interview
	}
	return r.updateColumns(ctx, id, updates)
}

func (r *DBApplicationRepo) UpdateDetails(ctx context.Context, id uuid.UUID, change jobapp.DetailsChange) error {
	updates := map[string]any{}
	if change.Priority != nil {
		updates["priority"] = *change.Priority
	}
	if change.Rating != nil {
		updates["rating"] = *change.Rating
	}
	if change.Notes != nil {
		updates["internal_notes"] = *change.Notes
	}
	if change.SetTags {
		updates["tags"] = pq.StringArray(change.Tags)
	}
	if len(updates) == 0 {
		return nil
	}
	return r.updateColumns(ctx, id, updates)
}

// AppendCommunication concatenates entry onto the stored jsonb array without
// reading it back, so earlier entries are never rewritten.
func (r *DBApplicationRepo) AppendCommunication(ctx context.Context, id uuid.UUID, entry jobapp.Communication) error {
	payload, err := json.Marshal([]jobapp.Communication{entry})
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&jobapp.Application{}).
		Where("id = ?", id).
		UpdateColumn("communications", gorm.Expr("COALESCE(communications, '[]'::jsonb) || ?::jsonb", string(payload)))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBApplicationRepo) updateColumns(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&jobapp.Application{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DBApplicationRepo) WithTx(tx *gorm.DB) ApplicationRepo {
	if tx == nil {
		return r
	}
	return &DBApplicationRepo{
		db: tx,
	}
}
