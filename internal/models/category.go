package models

// Category is a label attached to expenses.
type Category struct {
	Base
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	ImageURL string `json:"image_url,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Sectors      []Sector      `gorm:"many2many:sector_categories" json:"sectors,omitempty"`
}
