package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	autherrors "github.com/jrsteele09/studyflow-auth/internal/errors"
	"github.com/jrsteele09/studyflow-auth/users"
)

// MinTTL is the shortest token lifetime. NumericDate has whole-second precision,
// so a shorter ttl can produce a token that is already expired.
const MinTTL = time.Second

// Claims is the payload of an access token.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Codec mints and verifies self-contained access tokens. It keeps no record of
// what it has issued; a token is valid purely by signature and expiry.
type Codec struct {
	signer  Signer
	issuer  string
	nowFunc func() time.Time
	newID   func() string
}

type CodecOption func(*Codec)

func WithIssuer(issuer string) CodecOption {
	return func(c *Codec) {
		c.issuer = issuer
	}
}

func WithNowFunc(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowFunc = now
	}
}

func WithIDGenerator(newID func() string) CodecOption {
	return func(c *Codec) {
		c.newID = newID
	}
}

func NewCodec(signer Signer, options ...CodecOption) (*Codec, error) {
	if signer == nil {
		return nil, errors.New("[NewCodec] signer is required")
	}
	c := &Codec{
		signer:  signer,
		nowFunc: time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, option := range options {
		option(c)
	}
	return c, nil
}

// Mint returns a signed token for identity valid for ttl from now.
func (c *Codec) Mint(identity users.Identity, ttl time.Duration) (string, error) {
	if !identity.Valid() {
		return "", errors.Wrap(autherrors.ErrInvalidIdentity, "[Codec.Mint]")
	}
	if ttl < MinTTL {
		return "", errors.Errorf("[Codec.Mint] ttl must be at least %s, got %s", MinTTL, ttl)
	}

	now := c.nowFunc()
	claims := Claims{
		Username: identity.Username,
		Email:    identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        c.newID(),
		},
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Codec.Mint]")
	}
	return signed, nil
}

// Verify checks the signature and expiry of raw and returns the identity it carries.
// Failures are ErrTokenMalformed, ErrInvalidSignature or ErrTokenExpired, all of which
// match ErrInvalidToken.
func (c *Codec) Verify(raw string) (users.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return users.Identity{}, errors.Wrap(autherrors.ErrTokenMalformed, "[Codec.Verify] empty token")
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
	}
	if c.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(c.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, c.signer.GetVerificationKey, parserOptions...)
	if err != nil {
		return users.Identity{}, errors.Wrap(classify(err), "[Codec.Verify]")
	}
	if !token.Valid {
		return users.Identity{}, errors.Wrap(autherrors.ErrInvalidToken, "[Codec.Verify]")
	}

	identity := users.Identity{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}
	if !identity.Valid() {
		return users.Identity{}, errors.Wrap(autherrors.ErrTokenMalformed, "[Codec.Verify] missing subject or username")
	}
	return identity, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return autherrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return autherrors.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return autherrors.ErrTokenMalformed
	default:
		return autherrors.ErrInvalidToken
	}
}
