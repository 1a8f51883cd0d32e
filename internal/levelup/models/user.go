package models

// User is the authentication principal a Gamer belongs to.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins first and last name the same way the report views do.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
