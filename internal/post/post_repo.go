package post

import (
	"errors"

	"gorm.io/gorm"
)

type PostRepository interface {
	CreatePost(p *ClubPost) error
	GetPostByID(id uint) (*ClubPost, error)
	GetPostsByClub(clubID uint) ([]ClubPost, error)
	DeletePost(id uint) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreatePost(p *ClubPost) error {
	return r.db.Create(p).Error
}

func (r *postRepository) GetPostByID(id uint) (*ClubPost, error) {
	var p ClubPost
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) GetPostsByClub(clubID uint) ([]ClubPost, error) {
	var posts []ClubPost
	err := r.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Where("club_id = ?", clubID).
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost removes the post and its images together.
func (r *postRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("club_post_id = ?", id).Delete(&ClubPostImage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&ClubPost{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
