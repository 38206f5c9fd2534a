package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultTokenTTL  = 30 * 24 * time.Hour
	tokenIDLength    = 16
	tokenIDAlphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	minSecretKeySize = 32
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWeakSecretKey  = errors.New("secret key is too short")
	ErrInvalidSubject = errors.New("token user id is required")
)

type Claims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 bearer token for userID that expires after ttl.
func IssueToken(secret []byte, userID uint, ttl time.Duration, now time.Time) (string, error) {
	if len(secret) < minSecretKeySize {
		return "", ErrWeakSecretKey
	}
	if userID == 0 {
		return "", ErrInvalidSubject
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	tokenID, err := RandomString(tokenIDLength, tokenIDAlphabet)
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseToken(secret []byte, raw string, now time.Time) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
