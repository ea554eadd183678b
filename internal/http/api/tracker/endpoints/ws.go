package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sajda-app/sajda/internal/http/api"
	"github.com/sajda-app/sajda/internal/http/middleware"
	"github.com/sajda-app/sajda/internal/notify"
)

// ToastSocketModule mounts the websocket endpoint in-app toasts arrive on.
// The upgrade bypasses the JSON resolvers, so the current user is pulled from
// context by hand.
func ToastSocketModule(hub *notify.ToastHub) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.RAW(http.MethodGet, "/notifications/ws", func(ctx *gin.Context) {
			user, ok := middleware.GetCurrentUser(ctx)
			if !ok {
				ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			hub.Handler(user.ID)(ctx)
		})
	})
}
