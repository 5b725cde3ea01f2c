package models

// User is an account allowed to author posts. Password holds whatever credential
// material the auth layer hands over (a bcrypt hash in this server); it is persisted
// verbatim and never serialized.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
}

// NewUser carries the fields needed to register a user.
type NewUser struct {
	Username string
	Password string
}
