package main

import (
	"ets/src/common"
	"ets/src/middlewares"
	"ets/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			booking, err := common.BookTickets(c, middlewares.CallerRole(ctx), ctx.GetUint("id"), &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": booking.Response(), "message": "booking successful"})
		}).
		GET("/bookings", func(ctx *gin.Context) {
			c, cancel := storeContext(ctx)
			defer cancel()
			bookings, err := common.ListMyBookings(c, middlewares.CallerRole(ctx), ctx.GetUint("id"))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			out := make([]*types.APIResponseBooking, 0, len(bookings))
			for i := range bookings {
				out = append(out, bookings[i].Response())
			}
			ctx.JSON(http.StatusOK, gin.H{"data": out, "count": len(out)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			booking, err := common.GetBooking(c, middlewares.CallerRole(ctx), ctx.GetUint("id"), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking.Response()})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			if err := common.CancelBooking(c, middlewares.CallerRole(ctx), ctx.GetUint("id"), params.ID); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"id": params.ID, "message": "booking canceled successfully"})
		})
	return g
}
