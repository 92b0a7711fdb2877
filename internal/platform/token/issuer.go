// Package token issues and verifies the signed bearer tokens that represent
// an authenticated session. The token itself is the session: nothing is
// stored server-side and expiry is purely wall-clock time embedded in the
// claims.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// signature mismatch, past expiry, or malformed structure. The three cases
// are deliberately collapsed into one kind so the error cannot be used as an
// oracle.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload carried by an issued token. Email is the sole
// application claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Issuer signs and verifies HS256 tokens with a process-wide secret and
// expiry, both resolved once at startup and never rotated at runtime.
type Issuer struct {
	secret     []byte
	expiration time.Duration
	// now is swapped in tests to control issue time.
	now func() time.Time
}

// NewIssuer creates an Issuer with the provided secret and token lifetime.
func NewIssuer(secret string, expiration time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Issue signs a token carrying the given email, the issue time, and the
// configured expiry.
func (i *Issuer) Issue(email string) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiration)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses the token, checks the HMAC signature and the expiry, and
// returns the embedded claims. Every failure maps to ErrInvalidToken.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; reject alg confusion up front
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
