package shared

import "github.com/golang-jwt/jwt/v4"

// UserClaims is the session token issued by the hosted auth backend.
type UserClaims struct {
	UserId *string `json:"userId"`
	Email  string  `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (u *UserClaims) Subject() string {
	if u.UserId != nil && *u.UserId != "" {
		return *u.UserId
	}
	if u.Email != "" {
		return u.Email
	}
	return u.RegisteredClaims.Subject
}
