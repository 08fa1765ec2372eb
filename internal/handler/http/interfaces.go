package http

import (
	"context"

	"github.com/MKhiriev/go-data-hub/models"
)

//go:generate mockgen -source=interfaces.go -destination=../../mock/identity_provider_mock.go -package=mock

// IdentityProvider runs the external sign-in flow.
type IdentityProvider interface {
	// AuthCodeURL returns the consent page address carrying state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for the signed-in identity.
	Exchange(ctx context.Context, code string) (models.Identity, error)
}
