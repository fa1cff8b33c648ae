package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"mill-maintenance-backend/config"
)

// RoleAdmin is the only role the dashboard knows about.
const RoleAdmin = "admin"

var (
	// ErrInvalidCredentials is returned when the username or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for malformed, tampered or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the session token payload.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// User is the identity returned after a successful login.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Authenticator checks the single configured login and issues session tokens.
type Authenticator struct {
	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// HashPassword hashes a plaintext password with bcrypt's default cost.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// New builds an Authenticator from config. A plaintext password is hashed
// once at startup so that every comparison goes through bcrypt.
func New(cfg config.AuthConfig) (*Authenticator, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	hash := cfg.PasswordHash
	if hash == "" {
		h, err := HashPassword(cfg.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash configured password: %w", err)
		}
		hash = h
	}
	return &Authenticator{
		username: cfg.Username,
		hash:     []byte(hash),
		secret:   []byte(cfg.JWTSecret),
		ttl:      cfg.TokenTTL(),
		now:      time.Now,
	}, nil
}

// Check verifies a username/password pair.
func (a *Authenticator) Check(username, password string) (*User, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.hash, []byte(password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}
	return &User{Username: a.username, Role: RoleAdmin}, nil
}

// Issue signs a session token for the user.
func (a *Authenticator) Issue(u *User) (string, time.Time, error) {
	now := a.now()
	expires := now.Add(a.ttl)
	claims := &Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expires, nil
}

// Parse validates a token string and returns its claims.
func (a *Authenticator) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
