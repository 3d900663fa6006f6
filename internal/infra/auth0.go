// README: Auth0 JWKS-backed token verifier.
package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
)

// IDToken holds the verified token data used by downstream middleware.
type IDToken struct {
	Subject string
	Claims  map[string]interface{}
}

// TokenVerifier verifies a raw bearer token string and returns token data.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*IDToken, error)
}

// auth0Verifier is the production implementation backed by the tenant's JWKS.
type auth0Verifier struct {
	jwks     *keyfunc.JWKS
	issuer   string
	audience string
}

// NewAuth0Verifier creates a TokenVerifier for the given Auth0 tenant domain.
// The JWKS is fetched eagerly and refreshed in the background until ctx ends.
func NewAuth0Verifier(ctx context.Context, domain, audience string) (TokenVerifier, error) {
	jwksURL := fmt.Sprintf("https://%s/.well-known/jwks.json", domain)
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch jwks: %w", err)
	}
	return &auth0Verifier{
		jwks:     jwks,
		issuer:   fmt.Sprintf("https://%s/", domain),
		audience: audience,
	}, nil
}

func (v *auth0Verifier) VerifyIDToken(_ context.Context, idToken string) (*IDToken, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(v.issuer, true) {
		return nil, errors.New("unexpected issuer")
	}
	if !claims.VerifyAudience(v.audience, true) {
		return nil, errors.New("unexpected audience")
	}
	sub, _ := claims["sub"].(string)
	return &IDToken{Subject: sub, Claims: claims}, nil
}
