// Package auth implements the authentication gateway: the OAuth identity
// provider integration and the server-side session tokens that gate mutating
// endpoints.
//
// The gateway is an explicitly constructed dependency injected into the HTTP
// layer at startup. Nothing in this package is process-global; swapping the
// provider (or faking it in tests) is a matter of passing a different
// implementation.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Identity is the normalized profile the provider returns after a successful
// login. ProviderID is the provider's stable identifier for the account;
// everything else refreshes on each login.
type Identity struct {
	Provider   string
	ProviderID string
	Name       string
	Email      string
	AvatarURL  string
}

// Provider abstracts the redirect-based OAuth login flow. Implementations
// must be safe for concurrent use.
type Provider interface {
	// Name identifies the provider (e.g. "google") for identity scoping.
	Name() string
	// AuthURL returns the provider URL to redirect the user to. The state
	// value is round-tripped and must be verified by the callback handler.
	AuthURL(state string) string
	// Exchange trades the callback authorization code for the user's profile.
	Exchange(ctx context.Context, code string) (*Identity, error)
}

// googleUser is the portion of the Google userinfo response we consume.
type googleUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider implements Provider for the Google authorization code flow.
// The code-for-token exchange happens server to server with the client
// secret, so access tokens never reach the browser.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider builds a GoogleProvider for the given OAuth application
// credentials. callbackURL must exactly match the redirect URI registered
// with Google.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Name implements Provider.
func (p *GoogleProvider) Name() string { return "google" }

// AuthURL implements Provider.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange implements Provider: it exchanges the authorization code for an
// access token, fetches the userinfo document, and normalizes it.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	tok, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}

	client := p.config.Client(ctx, tok)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return nil, fmt.Errorf("auth: calling userinfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: userinfo endpoint returned status %d", resp.StatusCode)
	}

	var gu googleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, fmt.Errorf("auth: decoding userinfo response: %w", err)
	}
	if gu.ID == "" {
		return nil, fmt.Errorf("auth: provider returned an empty user id")
	}

	return &Identity{
		Provider:   p.Name(),
		ProviderID: gu.ID,
		Name:       gu.Name,
		Email:      gu.Email,
		AvatarURL:  gu.Picture,
	}, nil
}
