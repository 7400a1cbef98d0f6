package models

type Book struct {
	ID            int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Title         string  `json:"title" gorm:"not null;index"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre"`
	YearPublished int     `json:"year_published"`
	Summary       *string `json:"summary,omitempty"`

	// association
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

func (Book) TableName() string {
	return "books"
}
