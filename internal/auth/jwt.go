package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"

	"court-register-go/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims are the access token claims issued by the authorisation server.
type Claims struct {
	UserName    string           `json:"user_name,omitempty"`
	ClientID    string           `json:"client_id,omitempty"`
	Authorities jwt.ClaimStrings `json:"authorities,omitempty"`
	Scope       jwt.ClaimStrings `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens signed with either a shared HMAC secret
// or an RSA key pair.
type Verifier struct {
	parser *jwt.Parser
	key    any
}

func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	var (
		key     any
		methods []string
	)

	switch {
	case cfg.JWTPublicKeyPath != "":
		pem, err := os.ReadFile(cfg.JWTPublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("read jwt public key: %w", err)
		}
		publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return nil, fmt.Errorf("parse jwt public key: %w", err)
		}
		key = publicKey
		methods = []string{jwt.SigningMethodRS256.Alg(), jwt.SigningMethodRS384.Alg(), jwt.SigningMethodRS512.Alg()}
	case cfg.JWTSigningKey != "":
		key = []byte(cfg.JWTSigningKey)
		methods = []string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}
	default:
		return nil, errors.New("jwt verifier: no signing key configured")
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods(methods), jwt.WithExpirationRequired()}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{parser: jwt.NewParser(opts...), key: key}, nil
}

func (v *Verifier) Verify(token string) (Principal, error) {
	claims := &Claims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		switch v.key.(type) {
		case *rsa.PublicKey:
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
		default:
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenUnverifiable
			}
		}
		return v.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}

	name := claims.UserName
	if name == "" {
		name = claims.ClientID
	}
	if name == "" {
		name = claims.Subject
	}
	if name == "" {
		return Principal{}, fmt.Errorf("%w: no principal claim", ErrInvalidToken)
	}

	return Principal{
		Name:        name,
		ClientID:    claims.ClientID,
		Authorities: []string(claims.Authorities),
		Scopes:      []string(claims.Scope),
	}, nil
}
