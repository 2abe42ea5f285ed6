package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hwojcik/exagen/config"
	"github.com/hwojcik/exagen/internal/dto"
	"github.com/hwojcik/exagen/internal/repository"
	"github.com/rs/zerolog/log"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID   = "auth_user_id"
	ContextUsername = "auth_username"
	ContextJTI      = "auth_jti"
)

type AuthMiddleware struct {
	cfg       *config.Config
	tokenRepo repository.TokenRepository
}

func NewAuthMiddleware(cfg *config.Config, tokenRepo repository.TokenRepository) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, tokenRepo: tokenRepo}
}

// RequireAuth validates the bearer token (signature, expiry, revocation) and
// injects the authenticated identity into the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing bearer token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(m.cfg.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		jti, _ := claims["jti"].(string)
		username, _ := claims["sub"].(string)
		uid, uidOK := claims["uid"].(float64)
		if jti == "" || username == "" || !uidOK {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid token claims"})
			return
		}

		revoked, err := m.tokenRepo.IsRevoked(jti)
		if err != nil {
			log.Error().Err(err).Str("jti", jti).Msg("Failed to check token revocation")
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to validate token"})
			return
		}
		if revoked {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Token has been revoked"})
			return
		}

		ctx.Set(ContextUserID, uint(uid))
		ctx.Set(ContextUsername, username)
		ctx.Set(ContextJTI, jti)
		ctx.Next()
	}
}

// UserID returns the authenticated user's id from the gin context.
func UserID(ctx *gin.Context) uint {
	return ctx.GetUint(ContextUserID)
}

// Username returns the authenticated username from the gin context.
func Username(ctx *gin.Context) string {
	return ctx.GetString(ContextUsername)
}

// JTI returns the JWT ID of the presented token from the gin context.
func JTI(ctx *gin.Context) string {
	return ctx.GetString(ContextJTI)
}
