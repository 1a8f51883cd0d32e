package models

// Gamer is the application level profile of a User. One per User.
type Gamer struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Bio    string `json:"bio"`
	User   User   `json:"user"`
}
