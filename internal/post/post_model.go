package post

import "gorm.io/gorm"

type ClubPost struct {
	gorm.Model
	ClubID   uint   `gorm:"index;not null" json:"clubId"`
	AuthorID uint   `gorm:"not null" json:"authorId"`
	Title    string `json:"title"`
	Content  string `gorm:"type:text" json:"content"`

	Images []ClubPostImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

type ClubPostImage struct {
	gorm.Model
	ClubPostID   uint   `gorm:"index;not null" json:"clubPostId"`
	ImageUrl     string `gorm:"not null" json:"imageUrl"`
	Caption      string `json:"caption"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}
