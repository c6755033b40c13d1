package models

// Review is a vehicle owner's rating of a mechanic after a service
// request. Ratings stay on the review itself; User.Rating is not
// recomputed on write.
type Review struct {
	BaseModel
	ServiceRequestID string `gorm:"type:uuid;not null;index" json:"serviceRequestId"`
	UserID           string `gorm:"type:uuid;not null;index" json:"userId"`
	MechanicID       string `gorm:"type:uuid;not null;index" json:"mechanicId"`
	Rating           int    `gorm:"not null" json:"rating"`
	Comment          string `gorm:"column:review" json:"review"`
}
