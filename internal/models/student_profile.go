package models

import "gorm.io/datatypes"

// StudentProfile is the per-account learner record. A profile is created once
// for an account and never deleted.
type StudentProfile struct {
	Account          string                      `gorm:"primaryKey;size:128" json:"account"`
	Name             string                      `gorm:"size:255;not null" json:"name"`
	CompletedCourses uint                        `gorm:"not null;default:0" json:"completed_courses"`
	TotalSpent       uint64                      `gorm:"not null;default:0" json:"total_spent"`
	Achievements     datatypes.JSONSlice[string] `json:"achievements"`
	JoinedSeq        uint64                      `gorm:"column:joined_at;not null" json:"joined_at"`
	Preferences      datatypes.JSONSlice[string] `json:"preferences"`
}
