package main

import (
	"context"
	"ets/src/common"
	"ets/src/config"
	"ets/src/middlewares"
	"ets/src/models"
	"ets/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func abortWithError(ctx *gin.Context, err error) {
	if types.KindOf(err) == types.KindInternal {
		log.Printf("%s %s: %s\n", ctx.Request.Method, ctx.Request.URL.Path, err.Error())
	}
	ctx.JSON(types.HTTPStatus(err), gin.H{"error": types.Message(err)})
}

func storeContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), config.StoreTimeout)
}

func eventResponses(events []models.Event) []*types.APIResponseEvent {
	out := make([]*types.APIResponseEvent, 0, len(events))
	for i := range events {
		out = append(out, events[i].Response())
	}
	return out
}

// publicEventRoutes serves the browse surface. Guests see approved events
// only; an admin credential widens the listing to every status.
func publicEventRoutes(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			c, cancel := storeContext(ctx)
			defer cancel()
			events, err := common.ListEvents(c, middlewares.CallerRole(ctx))
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": eventResponses(events), "count": len(events)})
		}).
		GET("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			event, err := common.GetEvent(c, middlewares.CallerRole(ctx), ctx.GetUint("id"), params.ID)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event.Response()})
		})
	return g
}

func eventHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/events", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			event, err := common.CreateEvent(c, middlewares.CallerRole(ctx), ctx.GetUint("id"), &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": event.Response()})
		}).
		PUT("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
				return
			}
			var body types.UpdateEventRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			event, err := common.UpdateEvent(c, middlewares.CallerRole(ctx), ctx.GetUint("id"), params.ID, &body)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event.Response()})
		}).
		DELETE("/events/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			if err := common.DeleteEvent(c, middlewares.CallerRole(ctx), ctx.GetUint("id"), params.ID); err != nil {
				abortWithError(ctx, err)
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"id": params.ID, "message": "event deleted successfully"})
		}).
		PATCH("/events/:id/status", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
				return
			}
			var body types.SetEventStatusRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c, cancel := storeContext(ctx)
			defer cancel()
			event, deleted, err := common.SetEventStatus(c, middlewares.CallerRole(ctx), params.ID, body.Status)
			if err != nil {
				abortWithError(ctx, err)
				return
			}
			if deleted {
				ctx.JSON(http.StatusOK, gin.H{"id": event.ID, "deleted": true, "message": "event declined and deleted"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": event.Response(), "message": "event " + string(body.Status)})
		})
	return g
}
