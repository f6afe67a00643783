package controllers

import (
	"context"
	"errors"
	"ets/src/config"
	"ets/src/db"
	"ets/src/lib"
	"ets/src/models"
	"ets/src/types"
	"ets/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthRegister creates a Standard User or Organizer account. Admin accounts
// are seeded, never self-registered.
func AuthRegister(ctx *gin.Context) (*models.User, int, error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	role := body.Role
	if role == "" {
		role = types.ROLE_STANDARD
	}
	if role != types.ROLE_STANDARD && role != types.ROLE_ORGANIZER {
		return nil, http.StatusBadRequest, errors.New("invalid role")
	}
	gdb := db.GetDb()
	var existing models.User
	err := gdb.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&existing).
		Error
	if err == nil {
		return nil, http.StatusConflict, errors.New("user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, http.StatusInternalServerError, err
	}
	hashed, err := utils.HashPassword(body.Password)
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	user := models.User{
		Name:           body.Name,
		Email:          body.Email,
		ProfilePicture: body.ProfilePicture,
		PasswordHash:   hashed,
		Role:           role,
	}
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	}); err != nil {
		log.Printf("Error registering user %s: %s\n", body.Email, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &user, http.StatusCreated, nil
}

// AuthLogin verifies credentials and issues the session cookie.
func AuthLogin(ctx *gin.Context) (*models.User, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	gdb := db.GetDb()
	var user models.User
	if err := gdb.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		return nil, http.StatusNotFound, errors.New("email not found")
	}
	if !utils.CheckPassword(user.PasswordHash, body.Password) {
		return nil, http.StatusUnauthorized, errors.New("incorrect password")
	}
	token, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating token for user %d: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	secure := ctx.Request.TLS != nil
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(config.TokenCookieName, token, int(config.TokenTTL.Seconds()), "/", "", secure, true)
	return &user, http.StatusOK, nil
}

// AuthLogout denylists the live token until its natural expiry and clears
// the cookie. Requires the auth middleware to have run.
func AuthLogout(ctx *gin.Context) (int, error) {
	jti := ctx.GetString("jti")
	if jti != "" {
		if rd := lib.GetRedisClient(); rd != nil {
			if err := rd.Set(context.Background(), "denylist:"+jti, "1", config.TokenTTL).Err(); err != nil {
				log.Printf("[redis] Error denylisting token %s: %s\n", jti, err.Error())
			}
		}
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(config.TokenCookieName, "", -1, "/", "", false, true)
	return http.StatusOK, nil
}
