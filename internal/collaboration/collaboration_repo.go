package collaboration

import (
	"errors"

	"gorm.io/gorm"
)

type CollaborationRepository interface {
	CreateCollaboration(cc *ClubCollaboration) error
	GetCollaborationByID(id uint) (*ClubCollaboration, error)
	GetReceivedByClub(clubID uint) ([]ClubCollaboration, error)
	GetSentByClub(clubID uint) ([]ClubCollaboration, error)
	UpdateCollaboration(cc *ClubCollaboration) error
}

type collaborationRepository struct {
	db *gorm.DB
}

func NewCollaborationRepository(db *gorm.DB) CollaborationRepository {
	return &collaborationRepository{db: db}
}

func (r *collaborationRepository) CreateCollaboration(cc *ClubCollaboration) error {
	return r.db.Create(cc).Error
}

func (r *collaborationRepository) GetCollaborationByID(id uint) (*ClubCollaboration, error) {
	var cc ClubCollaboration
	if err := r.db.First(&cc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cc, nil
}

func (r *collaborationRepository) GetReceivedByClub(clubID uint) ([]ClubCollaboration, error) {
	var items []ClubCollaboration
	err := r.db.Where("target_club_id = ?", clubID).Order("created_at desc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *collaborationRepository) GetSentByClub(clubID uint) ([]ClubCollaboration, error) {
	var items []ClubCollaboration
	err := r.db.Where("requester_club_id = ?", clubID).Order("created_at desc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *collaborationRepository) UpdateCollaboration(cc *ClubCollaboration) error {
	return r.db.Save(cc).Error
}
