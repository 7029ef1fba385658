package models

// Sector is a named grouping of categories for higher-level spend rollups.
// A category conventionally belongs to at most one sector, but the schema
// does not enforce it; rollups resolve ties by first match in sector order.
type Sector struct {
	Base
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	// Relationships
	Categories []Category `gorm:"many2many:sector_categories" json:"categories,omitempty"`
}

// CategoryIDs returns the ids of the sector's categories in load order.
func (s *Sector) CategoryIDs() []string {
	ids := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}
