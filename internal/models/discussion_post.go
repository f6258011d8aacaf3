package models

// DiscussionPost is a forum message attached to a course. Post ids come from
// the platform-wide counter, so they are unique across courses as well.
type DiscussionPost struct {
	CourseID   uint64 `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	PostID     uint64 `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	Author     string `gorm:"size:128;index;not null" json:"author"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Upvotes    uint   `gorm:"not null;default:0" json:"upvotes"`
	CreatedSeq uint64 `gorm:"column:created_at;not null" json:"created_at"`
}
