package admin

import "time"

const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruiter"
)

// User is a back-office operator.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"size:64;uniqueIndex;not null"`
	Password    string     `json:"-" gorm:"not null"`
	Email       string     `json:"email" gorm:"size:320"`
	FullName    string     `json:"full_name" gorm:"size:200"`
	Role        string     `json:"role" gorm:"size:32;not null;default:'recruiter'"`
	Active      bool       `json:"active" gorm:"not null;default:true"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "admin_users"
}

// ValidRole reports whether role is one the back office understands.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleRecruiter
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
