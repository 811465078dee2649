package entity

import "strings"

// User is the signed-in staff member carried by a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// Initial is the avatar letter shown in the app bar.
func (u User) Initial() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return "U"
	}
	return strings.ToUpper(string([]rune(name)[0]))
}
