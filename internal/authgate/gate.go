package authgate

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/server/respond"
)

const (
	identityKey = "callerIdentity"
	userIDKey   = "userId"
	userRoleKey = "userRole"
)

// Gate resolves bearer credentials to identities and enforces roles.
// There is deliberately no local session store or validation cache: every
// request re-validates against the identity provider.
type Gate struct {
	Identity identity.Client
}

func New(client identity.Client) *Gate {
	return &Gate{Identity: client}
}

// Authenticate resolves a raw Authorization header value to an identity.
// Side-effect free.
func (g *Gate) Authenticate(ctx context.Context, rawHeader string) (identity.Identity, error) {
	token, err := bearerToken(rawHeader)
	if err != nil {
		return identity.Identity{}, err
	}
	ident, err := g.Identity.ValidateToken(ctx, token)
	if err != nil {
		return identity.Identity{}, err
	}
	return ident, nil
}

// RequireRole authenticates the request and enforces the expected role,
// storing the resolved identity in the gin context on success.
func (g *Gate) RequireRole(role identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		ident, err := g.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			respond.Err(c, err)
			return
		}
		if ident.Role != role {
			respond.Err(c, apperr.New(apperr.CodeForbidden, "insufficient permissions for this resource"))
			return
		}

		c.Set(identityKey, ident)
		c.Set(userIDKey, ident.ID)
		c.Set(userRoleKey, string(ident.Role))
		c.Next()
	}
}

// RequireAuth authenticates the request without enforcing a role.
func (g *Gate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		ident, err := g.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			respond.Err(c, err)
			return
		}

		c.Set(identityKey, ident)
		c.Set(userIDKey, ident.ID)
		c.Set(userRoleKey, string(ident.Role))
		c.Next()
	}
}

// IdentityFromContext fetches the identity stored by RequireRole.
func IdentityFromContext(c *gin.Context) identity.Identity {
	if c == nil {
		return identity.Identity{}
	}
	val, _ := c.Get(identityKey)
	if ident, ok := val.(identity.Identity); ok {
		return ident
	}
	return identity.Identity{}
}

func bearerToken(rawHeader string) (string, error) {
	header := strings.TrimSpace(rawHeader)
	if header == "" {
		return "", apperr.New(apperr.CodeUnauthenticated, "missing authorization header")
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return "", apperr.New(apperr.CodeUnauthenticated, "missing or invalid token")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		return "", apperr.New(apperr.CodeUnauthenticated, "missing or invalid token")
	}
	return token, nil
}
