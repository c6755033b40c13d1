package models

// Service is a catalog entry (oil change, tyre repair, towing...).
type Service struct {
	BaseModel
	Name        string  `gorm:"not null" json:"name"`
	Description string  `gorm:"not null" json:"description"`
	BasePrice   float64 `gorm:"not null" json:"basePrice"`
	Image       string  `json:"image,omitempty"`
}
