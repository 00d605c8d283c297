package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const (
	tokenIssuer   = "tasknest"
	tokenAudience = "tasknest-api"
)

// Claims represents the JWT claims asserting an account identity.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string `json:"account_id"`
	Email     string `json:"email"`
}

// Tokens issues and verifies signed bearer tokens. Verification is a pure
// function of (token, secret, clock) — no store lookup, so a token stays
// verifiable even if its account has since disappeared; callers re-validate
// existence on lookup.
type Tokens struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokens creates a token manager signing with the given secret.
func NewTokens(secret string, expiry time.Duration) *Tokens {
	return &Tokens{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Tests use this to pin expiry behavior.
func (t *Tokens) WithClock(now func() time.Time) *Tokens {
	t.now = now
	return t
}

// Issue creates a signed token embedding the account identity claim,
// expiring at issuance time plus the configured expiry.
func (t *Tokens) Issue(accountID, email string) (string, error) {
	now := t.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AccountID: accountID,
		Email:     email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string, returning the embedded claims.
// A token is rejected from exactly its expiry instant onward.
func (t *Tokens) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return t.now() }),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.AccountID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
