package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"operationaltracker/internal/config"
	"operationaltracker/internal/models"
)

// Context keys for the authenticated identity.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// Claims represents the claims in the session token. The role is trusted
// as-is on every request; a role change or deactivation after issuance only
// takes effect once the token expires.
type Claims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller, as recorded in the token claims.
type Identity struct {
	ID       uint
	Username string
	Role     models.Role
}

// GenerateToken issues a signed session token for a user, valid for the
// configured expiry window (24h by default).
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			// Timestamps have second precision, so the jti is what keeps
			// back-to-back logins from issuing identical tokens.
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "operationaltracker-api",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseToken verifies a token's signature and expiry and returns its claims.
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// AuthRequired verifies the bearer token and sets the identity in the
// context. A missing, malformed, badly signed, or expired token is rejected
// with 401; the sub-cases are not distinguished to the caller.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authentication required",
			}})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			}})
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			}})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// CurrentIdentity extracts the authenticated identity from the Gin context.
// The second return value is false when no identity was set.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	userID, ok := c.Get(ContextUserID)
	if !ok {
		return Identity{}, false
	}
	username, _ := c.Get(ContextUsername)
	role, ok := c.Get(ContextRole)
	if !ok {
		return Identity{}, false
	}
	name, _ := username.(string)
	return Identity{
		ID:       userID.(uint),
		Username: name,
		Role:     role.(models.Role),
	}, true
}
