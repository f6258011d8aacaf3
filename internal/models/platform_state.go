package models

// PlatformStateID is the fixed primary key of the singleton configuration row.
const PlatformStateID = 1

// PlatformState is the singleton configuration record: the owner identity
// fixed at deployment, the platform fee, the two id counters, and the ledger
// sequence counter that every mutating operation advances. Counters are
// strictly increasing and ids are never reused.
type PlatformState struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	OwnerAccount  string `gorm:"size:128;not null" json:"owner"`
	FeePercentage uint64 `gorm:"not null" json:"fee_percentage"`
	NextCourseID  uint64 `gorm:"not null" json:"next_course_id"`
	NextPostID    uint64 `gorm:"not null" json:"next_post_id"`
	Sequence      uint64 `gorm:"not null" json:"sequence"`
}

// IsOwner reports whether the given account is the platform owner.
func (s PlatformState) IsOwner(account string) bool {
	return account != "" && account == s.OwnerAccount
}
