package middlewares

import (
	"ets/src/config"
	"ets/src/db"
	"ets/src/lib"
	"ets/src/models"
	"ets/src/types"
	"ets/src/utils"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func requestToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(config.TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	bearerToken := ctx.Request.Header.Get("Authorization")
	if strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimPrefix(bearerToken, "Bearer ")
	}
	return ""
}

// AuthMiddleware resolves the caller from the session cookie (or bearer
// header), rejects denylisted tokens, and loads the user so role changes take
// effect on the next request, not at next login.
func AuthMiddleware(ctx *gin.Context) {
	reqToken := requestToken(ctx)
	if reqToken == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return
	}
	claims, err := utils.ParseJWT(reqToken)
	if err != nil {
		log.Printf("token error: %s\n", err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	if rd := lib.GetRedisClient(); rd != nil && claims.ID != "" {
		if n, err := rd.Exists(ctx, "denylist:"+claims.ID).Result(); err == nil && n > 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token revoked"})
			return
		}
	}
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		log.Println("error parsing claims:", err.Error())
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	var user models.User
	if err := db.GetDb().
		Model(&models.User{}).
		Where(&models.User{ID: uint(uid)}).
		First(&user).
		Error; err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}
	ctx.Set("id", user.ID)
	ctx.Set("email", user.Email)
	ctx.Set("name", user.Name)
	ctx.Set("role", string(user.Role))
	ctx.Set("jti", claims.ID)
	ctx.Set("token", reqToken)
}

// OptionalAuthMiddleware resolves the caller when a valid token is present
// and otherwise lets the request through anonymously. Routes behind it see an
// empty role for guests.
func OptionalAuthMiddleware(ctx *gin.Context) {
	reqToken := requestToken(ctx)
	if reqToken == "" {
		return
	}
	claims, err := utils.ParseJWT(reqToken)
	if err != nil {
		return
	}
	if rd := lib.GetRedisClient(); rd != nil && claims.ID != "" {
		if n, err := rd.Exists(ctx, "denylist:"+claims.ID).Result(); err == nil && n > 0 {
			return
		}
	}
	uid, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return
	}
	var user models.User
	if err := db.GetDb().
		Model(&models.User{}).
		Where(&models.User{ID: uint(uid)}).
		First(&user).
		Error; err != nil {
		return
	}
	ctx.Set("id", user.ID)
	ctx.Set("email", user.Email)
	ctx.Set("name", user.Name)
	ctx.Set("role", string(user.Role))
	ctx.Set("jti", claims.ID)
	ctx.Set("token", reqToken)
}

// CallerRole reads the authenticated role from the request context.
func CallerRole(ctx *gin.Context) types.Role {
	return types.Role(ctx.GetString("role"))
}
