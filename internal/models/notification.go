package models

// Notification is an in-app message for a single user. Delivery to external
// channels is out of scope; rows are read and acknowledged via the API.
type Notification struct {
	Base
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}
