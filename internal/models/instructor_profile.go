package models

import "gorm.io/datatypes"

// InstructorProfile holds the public identity and the running earnings balance
// of a course instructor. TotalEarnings only grows through enrollment
// settlement and only shrinks through withdrawals.
type InstructorProfile struct {
	Account       string                      `gorm:"primaryKey;size:128" json:"account"`
	Name          string                      `gorm:"size:255;not null" json:"name"`
	Credentials   string                      `gorm:"size:512" json:"credentials"`
	Bio           string                      `gorm:"type:text" json:"bio"`
	SocialLinks   datatypes.JSONSlice[string] `json:"social_links"`
	Rating        uint                        `gorm:"not null;default:0" json:"rating"`
	TotalReviews  uint                        `gorm:"not null;default:0" json:"total_reviews"`
	TotalStudents uint                        `gorm:"not null;default:0" json:"total_students"`
	TotalEarnings uint64                      `gorm:"not null;default:0" json:"total_earnings"`
}

// CanWithdraw reports whether the balance covers the requested amount.
func (p InstructorProfile) CanWithdraw(amount uint64) bool {
	return amount <= p.TotalEarnings
}
