/**
* Name:			gate.go
* Description:	Route access control backed by the cookie session
* Workflow:		route table declares Access -> Gate admits or redirects to /login
 */
package middleware

import (
	"net/http"

	"TravelPlanner_WebProject/internal/session"

	"github.com/gin-gonic/gin"
)

// Access is the capability a route requires.
type Access int

const (
	Public Access = iota
	Authenticated
)

func (a Access) String() string {
	if a == Authenticated {
		return "authenticated"
	}
	return "public"
}

const (
	LoginPath     = "/login"
	LoginRequired = "Please login to access this page."
)

// Gate admits every request to a Public route. For an Authenticated route
// without a logged-in session it queues an info flash and redirects to the
// login page; the route handler never runs.
func Gate(access Access) gin.HandlerFunc {
	return func(c *gin.Context) {
		if access == Public {
			c.Next()
			return
		}

		sess := session.From(c)
		if sess.Authenticated() {
			c.Next()
			return
		}

		sess.AddFlash(session.FlashInfo, LoginRequired)
		if err := session.Save(c); err != nil {
			_ = c.Error(err)
		}
		c.Redirect(http.StatusSeeOther, LoginPath)
		c.Abort()
	}
}
