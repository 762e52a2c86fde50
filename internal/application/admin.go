package application

import (
	"errors"
	"strings"
	"time"

	"github.com/linskybing/corpsite-go/internal/api/middleware"
	"github.com/linskybing/corpsite-go/internal/config"
	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/linskybing/corpsite-go/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewAuthService(repos *repository.Repos) *AuthService {
	return &AuthService{
		Repos: repos,
		now:   time.Now,
	}
}

func (s *AuthService) Login(username, password string) (admin.User, string, error) {
	usr, err := s.Repos.Admin.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return admin.User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(password)); err != nil {
		return admin.User{}, "", ErrInvalidCredentials
	}
	if !usr.Active {
		return admin.User{}, "", ErrAccountDisabled
	}

	token, err := middleware.GenerateToken(usr, config.TokenTTL)
	if err != nil {
		return admin.User{}, "", err
	}

	now := s.now()
	if err := s.Repos.Admin.TouchLastLogin(usr.ID, now); err == nil {
		usr.LastLoginAt = &now
	}
	return usr, token, nil
}

func (s *AuthService) CreateUser(input admin.CreateUserInput) (admin.User, error) {
	role := input.Role
	if role == "" {
		role = admin.RoleRecruiter
	}
	if !admin.ValidRole(role) {
		return admin.User{}, validationErr("unknown role %q", role)
	}

	exists, err := s.Repos.Admin.UsernameExists(input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return admin.User{}, err
	}
	if exists {
		return admin.User{}, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return admin.User{}, ErrPasswordHashFailure
	}

	usr := admin.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
		Role:     role,
		Active:   true,
	}
	if err := s.Repos.Admin.SaveUser(&usr); err != nil {
		return admin.User{}, err
	}
	return usr, nil
}

func (s *AuthService) Me(id uint) (admin.User, error) {
	return s.Repos.Admin.GetByID(id)
}
