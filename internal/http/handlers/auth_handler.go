// Authentication HTTP handlers.
//
// The login flow is the standard OAuth2 authorization-code dance:
//
//   - GET /auth/google          → 302 to the provider's consent page
//   - GET /auth/google/callback → exchange the code, upsert the user,
//     set the session cookie, 302 back to the frontend
//   - GET /auth/user            → the signed-in user, or JSON null
//   - GET /auth/logout          → clear the session cookie, 302 to login
//
// A short-lived state cookie guards the callback against CSRF.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-recipe-backend/internal/auth"
	"github.com/tbourn/go-recipe-backend/internal/domain"
	"github.com/tbourn/go-recipe-backend/internal/http/middleware"
)

// stateCookie holds the OAuth2 state nonce between redirect and callback.
const stateCookie = "rs_oauth_state"

// UserService defines the user operations consumed by auth handlers.
type UserService interface {
	// UpsertFromProvider creates or refreshes the user for a provider identity.
	UpsertFromProvider(ctx context.Context, provider, providerID, name, email, avatarURL string) (*domain.User, error)
	// Get fetches one user by internal ID.
	Get(ctx context.Context, id string) (*domain.User, error)
}

// AuthHandlers groups the OAuth2 login endpoints. Separate from Handlers
// because it needs the provider, session issuer and redirect targets rather
// than the recipe services.
type AuthHandlers struct {
	provider   auth.Provider
	sessions   *auth.Sessions
	userSvc    UserService
	successURL string
	failureURL string
}

// NewAuthHandlers constructs the auth endpoints bound to a provider and
// session issuer. successURL and failureURL are the frontend pages users
// land on after the callback.
func NewAuthHandlers(provider auth.Provider, sessions *auth.Sessions, userSvc UserService, successURL, failureURL string) *AuthHandlers {
	return &AuthHandlers{
		provider:   provider,
		sessions:   sessions,
		userSvc:    userSvc,
		successURL: successURL,
		failureURL: failureURL,
	}
}

// Login godoc
// @ID          authLogin
// @Summary     Start the login flow
// @Description Redirects to the identity provider's consent page.
// @Tags        Auth
// @Success     302  {string} string "Redirect to provider"
// @Router      /auth/google [get]
func (h *AuthHandlers) Login(c *gin.Context) {
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.provider.AuthURL(state))
}

// Callback godoc
// @ID          authCallback
// @Summary     Complete the login flow
// @Description Exchanges the authorization code, upserts the local user, sets the session cookie and redirects to the frontend.
// @Tags        Auth
// @Param       code   query  string  true  "Authorization code"
// @Param       state  query  string  true  "CSRF state nonce"
// @Success     302  {string} string "Redirect to frontend"
// @Router      /auth/google/callback [get]
func (h *AuthHandlers) Callback(c *gin.Context) {
	state := c.Query("state")
	want, err := c.Cookie(stateCookie)
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)
	if err != nil || state == "" || state != want {
		middleware.LoggerFrom(c).Warn().Msg("oauth state mismatch")
		c.Redirect(http.StatusFound, h.failureURL)
		return
	}

	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, h.failureURL)
		return
	}

	identity, err := h.provider.Exchange(c.Request.Context(), code)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("oauth exchange failed")
		c.Redirect(http.StatusFound, h.failureURL)
		return
	}

	user, err := h.userSvc.UpsertFromProvider(c.Request.Context(),
		identity.Provider, identity.ProviderID, identity.Name, identity.Email, identity.AvatarURL)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("user upsert failed")
		c.Redirect(http.StatusFound, h.failureURL)
		return
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("session issue failed")
		c.Redirect(http.StatusFound, h.failureURL)
		return
	}

	http.SetCookie(c.Writer, h.sessions.Cookie(token))
	middleware.LoggerFrom(c).Info().Str("user_id", user.ID).Msg("user signed in")
	c.Redirect(http.StatusFound, h.successURL)
}

// Me godoc
// @ID          authUser
// @Summary     Current user
// @Description Returns the signed-in user, or JSON null for anonymous callers. Always 200 so frontends can poll it cheaply.
// @Tags        Auth
// @Produce     json
// @Success     200  {object} domain.User
// @Router      /auth/user [get]
func (h *AuthHandlers) Me(c *gin.Context) {
	uid := middleware.UserID(c)
	if uid == "" {
		c.JSON(http.StatusOK, nil)
		return
	}
	user, err := h.userSvc.Get(c.Request.Context(), uid)
	if err != nil {
		// Stale session for a deleted user behaves like anonymous.
		c.JSON(http.StatusOK, nil)
		return
	}
	ok(c, http.StatusOK, user)
}

// Logout godoc
// @ID          authLogout
// @Summary     Sign out
// @Description Clears the session cookie and redirects to the frontend login page.
// @Tags        Auth
// @Success     302  {string} string "Redirect to frontend"
// @Router      /auth/logout [get]
func (h *AuthHandlers) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.sessions.ClearCookie())
	c.Redirect(http.StatusFound, h.failureURL)
}
