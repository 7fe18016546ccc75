package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/Srgrv/mern-food-ordering-app-backend/internal/user"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// JWTCheck is the credential gate: it verifies the token's signature,
// audience and issuer and rejects anything malformed or expired. It does
// not resolve the caller to an internal user; IdentityParse does that.
func JWTCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		secret := os.Getenv("JWT_SECRET")
		opts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{"HS256"}),
		}
		if aud := os.Getenv("JWT_AUDIENCE"); aud != "" {
			opts = append(opts, jwt.WithAudience(aud))
		}
		if iss := os.Getenv("JWT_ISSUER"); iss != "" {
			opts = append(opts, jwt.WithIssuer(iss))
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		}, opts...)
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// IdentityParse resolves the bearer credential to an internal user.
// The subject claim is decoded without re-verifying the signature; the
// JWTCheck gate already ran earlier in the chain. Unknown subjects are
// unauthorized, there is no auto-provisioning here. A failed lookup is a
// server error, not an auth failure.
func IdentityParse(users user.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			c.Abort()
			return
		}

		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, jwt.MapClaims{})
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		sub, err := token.Claims.GetSubject()
		if err != nil || sub == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token has no subject"})
			c.Abort()
			return
		}

		u, err := users.FindByAuthSubject(c.Request.Context(), sub)
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown identity"})
			c.Abort()
			return
		}
		if err != nil {
			logrus.WithError(err).Error("identity lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
			c.Abort()
			return
		}

		c.Set("authSubject", sub)
		c.Set("userID", u.ID)
		c.Next()
	}
}
