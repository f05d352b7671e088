package achievement

import (
	"errors"

	"gorm.io/gorm"
)

type AchievementRepository interface {
	CreateAchievement(a *Achievement) error
	GetAchievementByID(id uint) (*Achievement, error)
	GetApprovedByClub(clubID uint) ([]Achievement, error)
	GetAllByClub(clubID uint) ([]Achievement, error)
	GetPendingByClub(clubID uint) ([]Achievement, error)
	UpdateAchievement(a *Achievement) error
	DeleteAchievement(id uint) error
}

type achievementRepository struct {
	db *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) CreateAchievement(a *Achievement) error {
	return r.db.Create(a).Error
}

func (r *achievementRepository) GetAchievementByID(id uint) (*Achievement, error) {
	var a Achievement
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// GetApprovedByClub is the public view: approved only, newest achievement first.
func (r *achievementRepository) GetApprovedByClub(clubID uint) ([]Achievement, error) {
	var items []Achievement
	err := r.db.
		Where("club_id = ? AND status = ?", clubID, StatusApproved).
		Order("achievement_date desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *achievementRepository) GetAllByClub(clubID uint) ([]Achievement, error) {
	var items []Achievement
	err := r.db.
		Where("club_id = ?", clubID).
		Order("achievement_date desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *achievementRepository) GetPendingByClub(clubID uint) ([]Achievement, error) {
	var items []Achievement
	err := r.db.
		Where("club_id = ? AND status = ?", clubID, StatusPending).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *achievementRepository) UpdateAchievement(a *Achievement) error {
	return r.db.Save(a).Error
}

func (r *achievementRepository) DeleteAchievement(id uint) error {
	result := r.db.Delete(&Achievement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
