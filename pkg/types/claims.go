package types

import "github.com/golang-jwt/jwt/v5"

// Claims is the identity-provider token payload. The subject is the opaque
// user id; some providers send it as user_id instead.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID returns the user id the token speaks for.
func (c *Claims) SubjectID() string {
	if c.RegisteredClaims.Subject != "" {
		return c.RegisteredClaims.Subject
	}
	return c.UserID
}
