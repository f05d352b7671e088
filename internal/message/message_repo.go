package message

import (
	"errors"

	"gorm.io/gorm"
)

type MessageRepository interface {
	CreateMessage(m *ClubMessage) error
	GetMessageByID(id uint) (*ClubMessage, error)
	GetMessagesByClub(clubID uint) ([]ClubMessage, error)
	GetMessagesBySender(senderID uint) ([]ClubMessage, error)
	UpdateMessage(m *ClubMessage) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateMessage(m *ClubMessage) error {
	return r.db.Create(m).Error
}

func (r *messageRepository) GetMessageByID(id uint) (*ClubMessage, error) {
	var m ClubMessage
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *messageRepository) GetMessagesByClub(clubID uint) ([]ClubMessage, error) {
	var msgs []ClubMessage
	err := r.db.Where("club_id = ?", clubID).Order("created_at desc").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) GetMessagesBySender(senderID uint) ([]ClubMessage, error) {
	var msgs []ClubMessage
	err := r.db.Where("sender_id = ?", senderID).Order("created_at desc").Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *messageRepository) UpdateMessage(m *ClubMessage) error {
	return r.db.Save(m).Error
}
