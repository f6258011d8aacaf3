package models

import "gorm.io/datatypes"

// Course is a catalog entry. The id is allocated from the platform counter at
// creation time and is immutable afterwards, as is the creation sequence.
type Course struct {
	ID            uint64                      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Instructor    string                      `gorm:"size:128;index;not null" json:"instructor"`
	Price         uint64                      `gorm:"not null" json:"price"`
	ContentHash   string                      `gorm:"size:255;not null" json:"content_hash"`
	Category      string                      `gorm:"size:128" json:"category"`
	Description   string                      `gorm:"type:text" json:"description"`
	IsActive      bool                        `gorm:"not null;default:true" json:"is_active"`
	TotalStudents uint                        `gorm:"not null;default:0" json:"total_students"`
	AverageRating uint                        `gorm:"not null;default:0" json:"average_rating"`
	TotalRatings  uint                        `gorm:"not null;default:0" json:"total_ratings"`
	Prerequisites datatypes.JSONSlice[uint64] `json:"prerequisites"`
	CreatedSeq    uint64                      `gorm:"column:created_at;not null" json:"created_at"`
}
