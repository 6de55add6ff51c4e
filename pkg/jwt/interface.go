package jwt

import "errors"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token carries no user id")
)

// Manager decodes identities from bearer tokens.
type Manager interface {
	Identify(token string) (Identity, error)
	// GenerateToken signs an HS256 token for id. It needs a SecretKey.
	GenerateToken(id Identity) (string, error)
}

func New(cfg Config) Manager {
	return &managerImpl{secretKey: []byte(cfg.SecretKey)}
}
