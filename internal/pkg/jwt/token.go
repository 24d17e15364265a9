package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/vigilante/internal/pkg/models"
)

// ErrInvalidToken is returned when a token fails validation
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the driver identity issued by the external auth service
type Claims struct {
	UserID  string `json:"user_id"`
	Premium bool   `json:"premium,omitempty"`
	Admin   bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given driver
func GenerateToken(userID string, premium bool, cfg models.JWTConfig) (string, int64, error) {
	return Sign(Claims{UserID: userID, Premium: premium}, cfg)
}

// Sign fills the registered claims from cfg and signs the token
func Sign(claims Claims, cfg models.JWTConfig) (string, int64, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.Expiration) * time.Minute)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    cfg.Issuer,
		Subject:   claims.UserID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, expirationTime.Unix(), nil
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}

	return claims, nil
}
