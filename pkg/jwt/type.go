package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT configuration. An empty SecretKey disables signature
// verification: the token is then only decoded.
type Config struct {
	SecretKey string
}

// Claims is the claim set issued by the social API.
type Claims struct {
	UserID   int64  `json:"userId,omitempty"`
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the principal carried by a token.
type Identity struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}
