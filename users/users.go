package users

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultEmailDomain is appended to usernames when no email is stored for a user.
const DefaultEmailDomain = "example.com"

type User struct {
	ID           string `json:"id,omitempty"`       // Unique identifier for the user
	Username     string `json:"username,omitempty"` // Unique login name
	Email        string `json:"email,omitempty"`    // User's email address
	PasswordHash string `json:"-"`                  // Hashed version of the user's password - never serialize
}

// Identity is the authenticated principal attached to a session and embedded in tokens.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Valid reports whether the identity carries the fields every token needs.
func (i Identity) Valid() bool {
	return i.ID != "" && i.Username != ""
}

// EmailFor derives the address used for a username when the store holds none.
func EmailFor(username, domain string) string {
	if domain == "" {
		domain = DefaultEmailDomain
	}
	return fmt.Sprintf("%s@%s", username, strings.TrimPrefix(domain, "@"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

