package user

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(u *User) error
	GetUserByID(id uint) (*User, error)
	GetUserByEmail(email string) (*User, error)
	UpdateUser(u *User) error

	GetRoleByName(name string) (*Role, error)
	EnsureRole(name string) (*Role, error)
	AssignRoleToUser(userID uint, roleName string) error
	GetUserRoles(userID uint) ([]string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) GetUserByID(id uint) (*User, error) {
	var u User
	if err := r.db.Preload("UserRoles.Role").First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByEmail(email string) (*User, error) {
	var u User
	if err := r.db.Preload("UserRoles.Role").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) UpdateUser(u *User) error {
	return r.db.Save(u).Error
}

func (r *userRepository) GetRoleByName(name string) (*Role, error) {
	var role Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// EnsureRole fetches the role, creating it first if it does not exist.
func (r *userRepository) EnsureRole(name string) (*Role, error) {
	role, err := r.GetRoleByName(name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	created := &Role{Name: name}
	if err := r.db.Create(created).Error; err != nil {
		return nil, fmt.Errorf("failed to create role %q: %w", name, err)
	}
	return created, nil
}

func (r *userRepository) AssignRoleToUser(userID uint, roleName string) error {
	role, err := r.EnsureRole(roleName)
	if err != nil {
		return err
	}

	var existing UserRole
	err = r.db.Where("user_id = ? AND role_id = ?", userID, role.ID).First(&existing).Error
	if err == nil {
		return nil // already assigned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing user role: %w", err)
	}

	return r.db.Create(&UserRole{UserID: userID, RoleID: role.ID}).Error
}

func (r *userRepository) GetUserRoles(userID uint) ([]string, error) {
	var roles []string
	err := r.db.Model(&UserRole{}).
		Joins("JOIN roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Pluck("roles.name", &roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	return roles, nil
}
