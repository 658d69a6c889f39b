package model

// Tag groups questions for the per-tag analytics.
type Tag struct {
	BaseModel
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Tag) TableName() string {
	return "tags"
}
