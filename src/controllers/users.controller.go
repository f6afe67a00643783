package controllers

import (
	"errors"
	"ets/src/common"
	"ets/src/db"
	"ets/src/middlewares"
	"ets/src/models"
	"ets/src/types"
	"ets/src/utils"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func GetProfile(ctx *gin.Context) (*models.User, int, error) {
	userId := ctx.GetUint("id")
	var user models.User
	if err := db.GetDb().
		Model(&models.User{}).
		Where(&models.User{ID: userId}).
		First(&user).
		Error; err != nil {
		return nil, http.StatusNotFound, errors.New("user not found")
	}
	return &user, http.StatusOK, nil
}

func UpdateProfile(ctx *gin.Context) (*models.User, int, error) {
	userId := ctx.GetUint("id")
	var body types.UpdateProfileRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	gdb := db.GetDb()
	var user models.User
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.User{ID: userId}).
			First(&user).
			Error; err != nil {
			return err
		}
		if body.Name != nil {
			user.Name = *body.Name
		}
		if body.Email != nil {
			user.Email = *body.Email
		}
		if body.ProfilePicture != nil {
			user.ProfilePicture = *body.ProfilePicture
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, errors.New("user not found")
		}
		log.Printf("Error updating profile for user %d: %s\n", userId, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &user, http.StatusOK, nil
}

func ChangePassword(ctx *gin.Context) (int, error) {
	userId := ctx.GetUint("id")
	var body types.ChangePasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusBadRequest, err
	}
	gdb := db.GetDb()
	var user models.User
	if err := gdb.
		Where(&models.User{ID: userId}).
		First(&user).
		Error; err != nil {
		return http.StatusNotFound, errors.New("user not found")
	}
	if !utils.CheckPassword(user.PasswordHash, body.OldPassword) {
		return http.StatusUnauthorized, errors.New("current password is incorrect")
	}
	hashed, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		return http.StatusInternalServerError, err
	}
	if err := gdb.
		Model(&models.User{}).
		Where("id = ?", userId).
		Update("password_hash", hashed).
		Error; err != nil {
		log.Printf("Error changing password for user %d: %s\n", userId, err.Error())
		return http.StatusInternalServerError, err
	}
	return http.StatusOK, nil
}

// DeleteOwnProfile removes the caller's account. Their bookings are canceled
// first so event inventory is returned.
func DeleteOwnProfile(ctx *gin.Context) (int, error) {
	userId := ctx.GetUint("id")
	gdb := db.GetDb()
	if err := common.ReleaseUserBookings(ctx.Request.Context(), userId); err != nil {
		log.Printf("Error releasing bookings during account deletion for user %d: %s\n", userId, err.Error())
	}
	res := gdb.Where("id = ?", userId).Delete(&models.User{})
	if res.Error != nil {
		log.Printf("Error deleting user %d: %s\n", userId, res.Error.Error())
		return http.StatusInternalServerError, res.Error
	}
	if res.RowsAffected == 0 {
		return http.StatusNotFound, errors.New("user not found")
	}
	return http.StatusOK, nil
}

func ListUsers(ctx *gin.Context) ([]models.User, int, error) {
	if err := common.Authorize(common.OpUserList, middlewares.CallerRole(ctx)); err != nil {
		return nil, types.HTTPStatus(err), err
	}
	var users []models.User
	if err := db.GetDb().
		Model(&models.User{}).
		Find(&users).
		Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}
	return users, http.StatusOK, nil
}

func GetUser(ctx *gin.Context) (*models.User, int, error) {
	if err := common.Authorize(common.OpUserGet, middlewares.CallerRole(ctx)); err != nil {
		return nil, types.HTTPStatus(err), err
	}
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	var user models.User
	if err := db.GetDb().
		Where(&models.User{ID: params.ID}).
		First(&user).
		Error; err != nil {
		return nil, http.StatusNotFound, errors.New("user not found")
	}
	return &user, http.StatusOK, nil
}

func UpdateUserRole(ctx *gin.Context) (*models.User, int, error) {
	if err := common.Authorize(common.OpUserSetRole, middlewares.CallerRole(ctx)); err != nil {
		return nil, types.HTTPStatus(err), err
	}
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return nil, http.StatusBadRequest, err
	}
	var body types.UpdateUserRoleRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}
	if !body.Role.Valid() {
		return nil, http.StatusBadRequest, errors.New("invalid role provided")
	}
	gdb := db.GetDb()
	var user models.User
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.User{ID: params.ID}).
			First(&user).
			Error; err != nil {
			return err
		}
		user.Role = body.Role
		return tx.
			Model(&models.User{}).
			Where("id = ?", params.ID).
			Update("role", body.Role).
			Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusNotFound, errors.New("user not found")
		}
		return nil, http.StatusInternalServerError, err
	}
	return &user, http.StatusOK, nil
}

func DeleteUser(ctx *gin.Context) (int, error) {
	if err := common.Authorize(common.OpUserDelete, middlewares.CallerRole(ctx)); err != nil {
		return types.HTTPStatus(err), err
	}
	var params types.SimpleRequestParams
	if err := ctx.ShouldBindUri(&params); err != nil {
		return http.StatusBadRequest, err
	}
	if err := common.ReleaseUserBookings(ctx.Request.Context(), params.ID); err != nil {
		log.Printf("Error releasing bookings during deletion of user %d: %s\n", params.ID, err.Error())
	}
	res := db.GetDb().Where("id = ?", params.ID).Delete(&models.User{})
	if res.Error != nil {
		return http.StatusInternalServerError, res.Error
	}
	if res.RowsAffected == 0 {
		return http.StatusNotFound, errors.New("user not found")
	}
	return http.StatusOK, nil
}
