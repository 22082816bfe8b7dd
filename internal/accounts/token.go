package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig carries the signing material for one principal role.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Role   Role
}

// Claims embeds the account identifier alongside the registered claims. The
// issuer is role-specific so a user token never validates against the admin
// verifier even if the secrets were ever shared.
type Claims struct {
	jwt.RegisteredClaims
}

func issuerFor(role Role) string {
	return "hydrowatch/" + string(role)
}

// IssueToken signs a bearer token embedding the account id.
func IssueToken(cfg TokenConfig, accountID string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    issuerFor(cfg.Role),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("accounts: sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and returns the embedded account id.
func VerifyToken(cfg TokenConfig, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cfg.Secret, nil
	}, jwt.WithIssuer(issuerFor(cfg.Role)))
	if err != nil {
		return "", fmt.Errorf("accounts: parse token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("accounts: invalid token")
	}
	return claims.Subject, nil
}
