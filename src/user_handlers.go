package main

import (
	"ets/src/common"
	"ets/src/controllers"
	"ets/src/middlewares"
	"ets/src/models"
	"ets/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func userResponses(users []models.User) []*types.APIResponseUser {
	out := make([]*types.APIResponseUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Response())
	}
	return out
}

func userHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/users/profile", func(ctx *gin.Context) {
			user, status, err := controllers.GetProfile(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": user.Response()})
		}).
		PUT("/users/profile", func(ctx *gin.Context) {
			user, status, err := controllers.UpdateProfile(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": user.Response(), "message": "profile updated successfully"})
		}).
		DELETE("/users/profile", func(ctx *gin.Context) {
			status, err := controllers.DeleteOwnProfile(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "profile deleted successfully"})
		}).
		PUT("/users/changePassword", func(ctx *gin.Context) {
			status, err := controllers.ChangePassword(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "password updated successfully"})
		}).
		GET("/users/events", func(ctx *gin.Context) {
			c, cancel := storeContext(ctx)
			defer cancel()
			events, err := common.ListMyEvents(c, middlewares.CallerRole(ctx), ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": eventResponses(events), "count": len(events)})
		}).
		GET("/users/events/analytics", func(ctx *gin.Context) {
			c, cancel := storeContext(ctx)
			defer cancel()
			role := middlewares.CallerRole(ctx)
			stats, err := common.OrganizerEventStats(c, role, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			summary, err := common.OrganizerSummary(c, role, ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": stats, "summary": summary})
		}).
		GET("/users", func(ctx *gin.Context) {
			users, status, err := controllers.ListUsers(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": userResponses(users), "count": len(users)})
		}).
		GET("/users/:id", func(ctx *gin.Context) {
			user, status, err := controllers.GetUser(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": user.Response()})
		}).
		PUT("/users/:id", func(ctx *gin.Context) {
			user, status, err := controllers.UpdateUserRole(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": user.Response(), "message": "user role updated successfully"})
		}).
		DELETE("/users/:id", func(ctx *gin.Context) {
			status, err := controllers.DeleteUser(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"message": "user deleted successfully"})
		})
	return g
}
