package models

// User is owned by the authentication subsystem; the request/bidding
// core only reads it for recipient discovery and display projections.
type User struct {
	BaseModel
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
	FullName     string   `gorm:"not null" json:"fullName"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Phone        string   `gorm:"not null" json:"phone"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Rating       float64  `gorm:"default:0" json:"rating"`
	Verified     bool     `gorm:"default:false" json:"verified"`
	PushToken    *string  `json:"-"`
}

// UserProfile is the safe projection embedded in request/bid detail
// responses. Credentials and push tokens never leave the server.
type UserProfile struct {
	ID           string   `json:"id"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Rating       float64  `json:"rating"`
	Verified     bool     `json:"verified"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Role         UserRole `json:"role"`
}

// Profile builds the display projection for u.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Phone:        u.Phone,
		Rating:       u.Rating,
		Verified:     u.Verified,
		ProfileImage: u.ProfileImage,
		Role:         u.Role,
	}
}
