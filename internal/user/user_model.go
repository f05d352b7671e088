package user

import "gorm.io/gorm"

const (
	RoleStudent   = "Student"
	RoleClubAdmin = "ClubAdmin"
	RoleAdmin     = "Admin"
)

type User struct {
	gorm.Model
	FullName   string `gorm:"not null" json:"fullName"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `json:"-"`
	StudentID  string `gorm:"index" json:"studentId"`
	Department string `json:"department"`
	Phone      string `json:"phoneNumber"`

	UserRoles []UserRole `json:"-"`
}

// Response is the public view of a user, stripped of credentials.
type Response struct {
	ID         uint     `json:"id"`
	FullName   string   `json:"fullName"`
	Email      string   `json:"email"`
	StudentID  string   `json:"studentId"`
	Department string   `json:"department"`
	Phone      string   `json:"phoneNumber"`
	Roles      []string `json:"roles"`
}

func (u *User) ToResponse() Response {
	roles := make([]string, 0, len(u.UserRoles))
	for _, ur := range u.UserRoles {
		if ur.Role.Name != "" {
			roles = append(roles, ur.Role.Name)
		}
	}
	return Response{
		ID:         u.ID,
		FullName:   u.FullName,
		Email:      u.Email,
		StudentID:  u.StudentID,
		Department: u.Department,
		Phone:      u.Phone,
		Roles:      roles,
	}
}

type Role struct {
	gorm.Model
	Name string `gorm:"unique;not null"`
}

type UserRole struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex:idx_user_role"`
	RoleID uint `gorm:"uniqueIndex:idx_user_role"`
	Role   Role
}
