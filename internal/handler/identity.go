package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wakja/wakja-be/internal/auth"
)

const (
	sessionCookieName   = "wakja_token"
	sessionCookieMaxAge = 7 * 24 * 60 * 60
	visitorCookieName   = "wakja_visitor"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
	visitorPrefix       = "anon:"

	identityContextKey = "__identity"
	actorContextKey    = "__actor_key"
)

// Identity resolves the caller for every request without rejecting anyone.
func (a *API) Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		a.resolveCaller(c)
		c.Next()
	}
}

// AuthRequired 要求请求携带有效的会话令牌，否则返回 401。
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.resolveCaller(c); !ok {
			respondError(c, http.StatusUnauthorized, "login_required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// resolveCaller checks the Authorization bearer token first and falls back
// to the session cookie. The result is cached on the context.
func (a *API) resolveCaller(c *gin.Context) (auth.Identity, bool) {
	if cached, exists := c.Get(identityContextKey); exists {
		identity, ok := cached.(*auth.Identity)
		if ok && identity != nil {
			return *identity, true
		}
		return auth.Identity{}, false
	}

	var resolved *auth.Identity
	if token := bearerToken(c.GetHeader("Authorization")); token != "" {
		if identity, ok := a.tokens.Verify(token); ok {
			resolved = &identity
		}
	}
	if resolved == nil {
		if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
			if identity, ok := a.tokens.Verify(token); ok {
				resolved = &identity
			}
		}
	}

	c.Set(identityContextKey, resolved)
	if resolved == nil {
		return auth.Identity{}, false
	}
	return *resolved, true
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// resolveActorKey returns user:<id> for signed-in callers, otherwise the
// anonymous visitor id, minting and persisting one when absent.
func (a *API) resolveActorKey(c *gin.Context) string {
	if cached := c.GetString(actorContextKey); cached != "" {
		return cached
	}

	var key string
	if identity, ok := a.resolveCaller(c); ok {
		key = identity.ActorKey()
	} else if visitor, err := c.Cookie(visitorCookieName); err == nil && isVisitorKey(visitor) {
		key = visitor
	} else {
		key = visitorPrefix + uuid.NewString()
		a.setCookie(c, visitorCookieName, key, visitorCookieMaxAge)
	}

	c.Set(actorContextKey, key)
	return key
}

func isVisitorKey(value string) bool {
	return strings.HasPrefix(value, visitorPrefix) && len(value) > len(visitorPrefix)
}

func (a *API) issueSession(c *gin.Context, identity auth.Identity) error {
	token, err := a.tokens.Issue(identity)
	if err != nil {
		return err
	}
	a.setCookie(c, sessionCookieName, token, sessionCookieMaxAge)
	c.Set(identityContextKey, &identity)
	return nil
}

func (a *API) clearSession(c *gin.Context) {
	a.setCookie(c, sessionCookieName, "", -1)
	c.Set(identityContextKey, (*auth.Identity)(nil))
}

func (a *API) setCookie(c *gin.Context, name, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
