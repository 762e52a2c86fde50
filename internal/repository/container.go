package repository

import (
	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/linskybing/corpsite-go/internal/domain/audit"
	"github.com/linskybing/corpsite-go/internal/domain/jobapp"
	"gorm.io/gorm"
)

//go:generate mockgen -destination=mock/application_mock.go -package=mock github.com/linskybing/corpsite-go/internal/repository ApplicationRepo
//go:generate mockgen -destination=mock/admin_mock.go -package=mock github.com/linskybing/corpsite-go/internal/repository AdminRepo
//go:generate mockgen -destination=mock/audit_mock.go -package=mock github.com/linskybing/corpsite-go/internal/repository AuditRepo

type Repos struct {
	Application ApplicationRepo
	Admin       AdminRepo
	Audit       AuditRepo

	db *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repos {
	return &Repos{
		Application: NewApplicationRepo(db),
		Admin:       NewAdminRepo(db),
		Audit:       NewAuditRepo(db),
		db:          db,
	}
}

// Models lists every table owned by this service, for AutoMigrate.
func Models() []any {
	return []any{
		&jobapp.Application{},
		&admin.User{},
		&audit.AuditLog{},
	}
}

func (r *Repos) WithTx(tx *gorm.DB) *Repos {
	return &Repos{
		Application: r.Application.WithTx(tx),
		Admin:       r.Admin.WithTx(tx),
		Audit:       r.Audit.WithTx(tx),
		db:          tx,
	}
}

func (r *Repos) ExecTx(fn func(*Repos) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepos := r.WithTx(tx)
		return fn(txRepos)
	})
}
