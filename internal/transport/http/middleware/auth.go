package middleware

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/usecase"
)

// UserKey is the gin context key holding the authenticated user snapshot.
const UserKey = "authorized_user"

// AuthorizedUser retrieves the user resolved by RequireBasicAuth.
func AuthorizedUser(c *gin.Context) (domain.User, bool) {
	val, exists := c.Get(UserKey)
	if !exists {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

// RequireBasicAuth resolves HTTP Basic credentials against the user store and
// stores the authenticated user on the context. Every failure is terminal for
// the request and answered with 401 plus a WWW-Authenticate challenge.
func RequireBasicAuth(users *usecase.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, authErr := basicCredentials(c.GetHeader("Authorization"))
		if authErr != nil {
			abortUnauthorized(c, authErr)
			return
		}

		user, err := users.Authenticate(username, password)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrUserNotFound):
				abortUnauthorized(c, domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "user not found"}))
			case errors.Is(err, usecase.ErrInvalidPassword):
				abortUnauthorized(c, domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "invalid password"}))
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": []*domain.Error{domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "authentication failed"})}})
			}
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// basicCredentials parses an Authorization header of the form
// "Basic base64(name:password)".
func basicCredentials(header string) (string, string, *domain.Error) {
	if header == "" {
		return "", "", domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "authorization header not found"})
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", "", domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "invalid authorization header"})
	}

	if !strings.EqualFold(parts[0], "Basic") {
		return "", "", domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "authorization type not Basic"})
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "invalid authorization credentials"})
	}

	credentials := string(decoded)
	sep := strings.IndexByte(credentials, ':')
	if sep < 0 {
		return "", "", domain.NewError(domain.CodeAuthorizeFailed, domain.Arg{Key: "why", Value: "invalid authorization credentials"})
	}

	return credentials[:sep], credentials[sep+1:], nil
}

func abortUnauthorized(c *gin.Context, err *domain.Error) {
	c.Header("WWW-Authenticate", "Basic")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": []*domain.Error{err}})
}
