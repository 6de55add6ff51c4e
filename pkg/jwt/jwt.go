package jwt

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

type managerImpl struct {
	secretKey []byte
}

// Identify extracts the user id and username from token. Without a secret
// the signature is not checked; the API remains the authority on validity.
func (m *managerImpl) Identify(tokenString string) (Identity, error) {
	claims := &Claims{}
	var err error
	if len(m.secretKey) == 0 {
		_, _, err = jwt.NewParser().ParseUnverified(tokenString, claims)
	} else {
		_, err = jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		})
	}
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id := Identity{UserID: claims.UserID, Username: claims.Username}
	if id.UserID == 0 && claims.Subject != "" {
		if n, convErr := strconv.ParseInt(claims.Subject, 10, 64); convErr == nil {
			id.UserID = n
		} else if id.Username == "" {
			id.Username = claims.Subject
		}
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	if id.UserID <= 0 {
		return Identity{}, ErrMissingSubject
	}
	return id, nil
}

func (m *managerImpl) GenerateToken(id Identity) (string, error) {
	if len(m.secretKey) == 0 {
		return "", fmt.Errorf("failed to sign token: no secret key")
	}
	claims := Claims{
		UserID:   id.UserID,
		Username: id.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(id.UserID, 10),
		},
	}
	if !id.ExpiresAt.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(id.ExpiresAt)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}
