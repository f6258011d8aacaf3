package models

// Enrollment tracks one student's state for one course. The completed flag is
// one-way and the certificate hash can only be written after completion.
type Enrollment struct {
	StudentAccount  string  `gorm:"primaryKey;size:128" json:"student"`
	CourseID        uint64  `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	EnrolledSeq     uint64  `gorm:"column:enrolled_at;not null" json:"enrolled_at"`
	LastAccessedSeq uint64  `gorm:"column:last_accessed;not null" json:"last_accessed"`
	Completed       bool    `gorm:"not null;default:false" json:"completed"`
	Progress        uint    `gorm:"not null;default:0" json:"progress"`
	Rating          *uint   `json:"rating,omitempty"`
	CertificateHash *string `gorm:"size:255" json:"completion_certificate,omitempty"`
}
