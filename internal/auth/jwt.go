package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/config"
)

// ErrInvalidToken covers expired, malformed and mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of an issued token.
type Claims struct {
	Subject string // Creator ID, or the admin ID for admin tokens.
	Admin   bool
}

// TokenIssuer signs and verifies HS256 tokens for creators and admins.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
	clock  clock.Clock
}

// NewTokenIssuer constructs a TokenIssuer from JWT config.
func NewTokenIssuer(cfg config.JWTConfig, clk clock.Clock) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("auth: empty jwt secret")
	}
	if clk == nil {
		clk = clock.System{}
	}
	return &TokenIssuer{secret: []byte(cfg.Secret), expiry: cfg.Expiry, clock: clk}, nil
}

// Issue signs a token for subject, flagging admin tokens.
func (i *TokenIssuer) Issue(subject string, admin bool) (string, error) {
	now := i.clock.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   subject,
		"admin": admin,
		"iat":   now.Unix(),
		"exp":   now.Add(i.expiry).Unix(),
	})
	signed, errSign := token.SignedString(i.secret)
	if errSign != nil {
		return "", fmt.Errorf("auth: sign token: %w", errSign)
	}
	return signed, nil
}

// Verify parses and validates a signed token.
func (i *TokenIssuer) Verify(raw string) (Claims, error) {
	parsed, errParse := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.clock.Now().UTC() }))
	if errParse != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	subject, errSub := mapClaims.GetSubject()
	if errSub != nil || subject == "" {
		return Claims{}, ErrInvalidToken
	}
	admin, _ := mapClaims["admin"].(bool)
	return Claims{Subject: subject, Admin: admin}, nil
}

// HashPassword hashes a plaintext admin password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, errHash := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errHash != nil {
		return "", fmt.Errorf("auth: hash password: %w", errHash)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
