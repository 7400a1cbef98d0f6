package models

type User struct {
	ID             int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username       string `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string `gorm:"column:hashed_password;not null" json:"-"` // Not show in JSON
}

func (User) TableName() string {
	return "users"
}
