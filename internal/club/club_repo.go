package club

import (
	"errors"

	"gorm.io/gorm"

	"github.com/anweshon/anweshon-api/internal/user"
)

type ClubRepository interface {
	CreateClub(c *Club) error
	GetClubByID(id uint) (*Club, error)
	GetClubByName(name string) (*Club, error)
	GetAllClubs() ([]Club, error)
	GetClubsForUser(userID uint) ([]Club, error)
	UpdateClub(c *Club) error

	AddMembership(m *Membership) error
	GetMembership(clubID, userID uint) (*Membership, error)
	GetMemberships(clubID uint) ([]Membership, error)
	RemoveMembership(clubID, userID uint) error
	IsMember(clubID, userID uint) (bool, error)

	AddExecutive(e *ClubExecutive) error
	GetExecutives(clubID uint) ([]ClubExecutive, error)
	ReplaceExecutives(clubID uint, execs []ClubExecutive) error
	IsExecutive(clubID, userID uint) (bool, error)
	GetExecutiveUserIDs(clubID uint) ([]uint, error)

	GetUserByID(id uint) (*user.User, error)
	WithTransaction(txFunc func(ClubRepository) error) error
}

type clubRepository struct {
	db *gorm.DB
}

func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) CreateClub(c *Club) error {
	return r.db.Create(c).Error
}

func (r *clubRepository) GetClubByID(id uint) (*Club, error) {
	var c Club
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) GetClubByName(name string) (*Club, error) {
	var c Club
	if err := r.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *clubRepository) GetAllClubs() ([]Club, error) {
	var clubs []Club
	if err := r.db.Order("name asc").Find(&clubs).Error; err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *clubRepository) GetClubsForUser(userID uint) ([]Club, error) {
	var clubs []Club
	err := r.db.
		Joins("JOIN memberships ON memberships.club_id = clubs.id").
		Where("memberships.user_id = ? AND memberships.deleted_at IS NULL", userID).
		Distinct().
		Find(&clubs).Error
	if err != nil {
		return nil, err
	}
	return clubs, nil
}

func (r *clubRepository) UpdateClub(c *Club) error {
	return r.db.Save(c).Error
}

func (r *clubRepository) AddMembership(m *Membership) error {
	return r.db.Create(m).Error
}

func (r *clubRepository) GetMembership(clubID, userID uint) (*Membership, error) {
	var m Membership
	err := r.db.Where("club_id = ? AND user_id = ?", clubID, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *clubRepository) GetMemberships(clubID uint) ([]Membership, error) {
	var members []Membership
	err := r.db.Where("club_id = ?", clubID).Order("joined_at asc").Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// RemoveMembership deletes the row outright so the unique (club, user)
// index never blocks a later re-join.
func (r *clubRepository) RemoveMembership(clubID, userID uint) error {
	result := r.db.Unscoped().Where("club_id = ? AND user_id = ?", clubID, userID).Delete(&Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *clubRepository) IsMember(clubID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Membership{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *clubRepository) AddExecutive(e *ClubExecutive) error {
	return r.db.Create(e).Error
}

func (r *clubRepository) GetExecutives(clubID uint) ([]ClubExecutive, error) {
	var execs []ClubExecutive
	err := r.db.Where("club_id = ?", clubID).
		Order("display_order asc").
		Order("position asc").
		Find(&execs).Error
	if err != nil {
		return nil, err
	}
	return execs, nil
}

// ReplaceExecutives swaps the full officer set for a club in one transaction.
func (r *clubRepository) ReplaceExecutives(clubID uint, execs []ClubExecutive) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("club_id = ?", clubID).Delete(&ClubExecutive{}).Error; err != nil {
			return err
		}
		for i := range execs {
			execs[i].ClubID = clubID
			if err := tx.Create(&execs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *clubRepository) IsExecutive(clubID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ClubExecutive{}).
		Where("club_id = ? AND user_id = ?", clubID, userID).
		Count(&count).Error
	return count > 0, err
}

// GetExecutiveUserIDs returns the distinct linked user ids of a club's
// executives, skipping officers without an account.
func (r *clubRepository) GetExecutiveUserIDs(clubID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ClubExecutive{}).
		Where("club_id = ? AND user_id IS NOT NULL", clubID).
		Distinct().
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *clubRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *clubRepository) WithTransaction(txFunc func(ClubRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return txFunc(&clubRepository{db: tx})
	})
}
