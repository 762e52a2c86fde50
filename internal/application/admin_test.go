package application

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/linskybing/corpsite-go/internal/api/middleware"
	"github.com/linskybing/corpsite-go/internal/domain/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func stubToken(t *testing.T) {
	old := middleware.GenerateToken
	middleware.GenerateToken = func(u admin.User, exp time.Duration) (string, error) {
		return "token-" + u.Username, nil
	}
	t.Cleanup(func() { middleware.GenerateToken = old })
}

func hashed(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// --------------------- Login ---------------------
func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)
	stubToken(t)

	usr := admin.User{ID: 3, Username: "ana", Password: hashed(t, "s3cret-pass"), Role: admin.RoleAdmin, Active: true}
	env.adminRepo.EXPECT().GetByUsername("ana").Return(usr, nil)
	env.adminRepo.EXPECT().TouchLastLogin(uint(3), gomock.Any()).Return(nil)

	u, token, err := svc.Login("ana", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "token-ana", token)
	assert.Equal(t, "ana", u.Username)
	assert.NotNil(t, u.LastLoginAt)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)

	usr := admin.User{ID: 3, Username: "ana", Password: hashed(t, "s3cret-pass"), Active: true}
	env.adminRepo.EXPECT().GetByUsername("ana").Return(usr, nil)

	_, token, err := svc.Login("ana", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, token)
}

func TestLogin_UnknownUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)
	env.adminRepo.EXPECT().GetByUsername("ghost").Return(admin.User{}, gorm.ErrRecordNotFound)

	_, _, err := svc.Login("ghost", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Disabled(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)

	usr := admin.User{ID: 4, Username: "old", Password: hashed(t, "s3cret-pass"), Active: false}
	env.adminRepo.EXPECT().GetByUsername("old").Return(usr, nil)

	_, _, err := svc.Login("old", "s3cret-pass")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

// --------------------- CreateUser ---------------------
func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)

	env.adminRepo.EXPECT().UsernameExists("rick").Return(false, nil)
	env.adminRepo.EXPECT().SaveUser(gomock.Any()).DoAndReturn(func(u *admin.User) error {
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("long-password")))
		u.ID = 9
		return nil
	})

	u, err := svc.CreateUser(admin.CreateUserInput{Username: "rick", Password: "long-password"})
	require.NoError(t, err)
	assert.Equal(t, uint(9), u.ID)
	assert.Equal(t, admin.RoleRecruiter, u.Role)
	assert.True(t, u.Active)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)

	_, err := svc.CreateUser(admin.CreateUserInput{Username: "rick", Password: "long-password", Role: "superuser"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUser_Taken(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)
	env.adminRepo.EXPECT().UsernameExists("rick").Return(true, nil)

	_, err := svc.CreateUser(admin.CreateUserInput{Username: "rick", Password: "long-password"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUser_RepoError(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuthService(env.repos)
	env.adminRepo.EXPECT().UsernameExists("rick").Return(false, errors.New("db down"))

	_, err := svc.CreateUser(admin.CreateUserInput{Username: "rick", Password: "long-password"})
	assert.Error(t, err)
}
