package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"TravelPlanner_WebProject/internal/session"

	"github.com/gin-gonic/gin"
)

const UnexpectedError = "An unexpected error occurred. Please try again."

const homePath = "/"

// Recovery turns a panic into a logged error. When nothing has been written
// yet the user is sent home with a generic danger flash. A panic while
// loading home itself gets a plain 500 page so the redirect cannot loop.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error("Panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", RequestID(c),
			"error", fmt.Sprint(recovered),
		)

		if c.Writer.Written() {
			c.Abort()
			return
		}

		if c.Request.Method == http.MethodGet && c.Request.URL.Path == homePath {
			c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", []byte(
				"<!doctype html><title>Error</title><p>"+UnexpectedError+"</p>"))
			c.Abort()
			return
		}

		session.From(c).AddFlash(session.FlashDanger, UnexpectedError)
		if err := session.Save(c); err != nil {
			_ = c.Error(err)
		}
		c.Redirect(http.StatusSeeOther, homePath)
		c.Abort()
	})
}
