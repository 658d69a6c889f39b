package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"`
	IsStaff  bool     `gorm:"default:false" json:"is_staff"`
}

func (User) TableName() string {
	return "users"
}

// IsTeacherOrStaff is the single role predicate used by every teacher-only endpoint.
func (u *User) IsTeacherOrStaff() bool {
	return IsTeacherOrStaff(u.Role, u.IsStaff)
}

func IsTeacherOrStaff(role UserRole, staff bool) bool {
	return staff || role == Teacher || role == Admin
}
