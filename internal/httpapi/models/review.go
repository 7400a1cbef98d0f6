package models

type Review struct {
	ID         int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID     int64   `json:"book_id" gorm:"not null;index"`
	UserID     int64   `json:"user_id"` // no FK constraint, mirrors the users table loosely
	ReviewText string  `json:"review_text" gorm:"type:text"`
	Rating     float64 `json:"rating"`
}

func (Review) TableName() string {
	return "reviews"
}
