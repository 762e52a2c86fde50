package repository

import (
	"time"

	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"gorm.io/gorm"
)

type AdminRepo interface {
	GetByUsername(username string) (admin.User, error)
	GetByID(id uint) (admin.User, error)
	ListUsers() ([]admin.User, error)
	UsernameExists(username string) (bool, error)
	SaveUser(u *admin.User) error
	TouchLastLogin(id uint, at time.Time) error
	WithTx(tx *gorm.DB) AdminRepo
}

type DBAdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *DBAdminRepo {
	return &DBAdminRepo{
		db: db,
	}
}

func (r *DBAdminRepo) GetByUsername(username string) (admin.User, error) {
	var u admin.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBAdminRepo) GetByID(id uint) (admin.User, error) {
	var u admin.User
	if err := r.db.First(&u, id).Error; err != nil {
		return u, err
	}
	return u, nil
}

func (r *DBAdminRepo) ListUsers() ([]admin.User, error) {
	var users []admin.User
	err := r.db.Order("username ASC").Find(&users).Error
	return users, err
}

func (r *DBAdminRepo) UsernameExists(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&admin.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DBAdminRepo) SaveUser(u *admin.User) error {
	return r.db.Save(u).Error
}

func (r *DBAdminRepo) TouchLastLogin(id uint, at time.Time) error {
	return r.db.Model(&admin.User{}).Where("id = ?", id).Update("last_login_at", at).Error
}

func (r *DBAdminRepo) WithTx(tx *gorm.DB) AdminRepo {
	if tx == nil {
		return r
	}
	return &DBAdminRepo{
		db: tx,
	}
}
