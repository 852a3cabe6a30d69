// Package auth mints and checks bearer tokens and hashes passwords.
//
// Tokens are only ever persisted as their SHA-256 digest; the plaintext is
// returned to the client once, at login.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMalformedToken is returned by Check for tokens the issuer could not have minted.
var ErrMalformedToken = errors.New("auth: malformed token")

// TokenIssuer mints bearer tokens. Check is a cheap pre-filter run before
// the token store is consulted; the store stays the source of truth.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
	Check(token string) error
}

// NewIssuer returns the issuer for driver: "jwt" or anything else for opaque.
func NewIssuer(driver, secret string) TokenIssuer {
	if driver == "jwt" {
		return JWTIssuer{Secret: []byte(secret)}
	}
	return OpaqueIssuer{}
}

// Digest is the form a token is stored and looked up by.
func Digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// OpaqueIssuer mints 32 random bytes, hex encoded.
type OpaqueIssuer struct{}

func (OpaqueIssuer) Issue(uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("auth: read random: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (OpaqueIssuer) Check(token string) error {
	if len(token) != 64 {
		return ErrMalformedToken
	}
	if _, err := hex.DecodeString(token); err != nil {
		return ErrMalformedToken
	}
	return nil
}

// JWTIssuer mints HS256 tokens carrying the user id as subject. They do not
// expire; revocation happens by deleting the stored digest.
type JWTIssuer struct {
	Secret []byte
}

func (j JWTIssuer) Issue(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  strconv.FormatUint(uint64(userID), 10),
		IssuedAt: jwt.NewNumericDate(time.Now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.Secret)
}

func (j JWTIssuer) Check(token string) error {
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return j.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return nil
}
