/**
* Name:			trip_handler.go
* Description:	Trip form and dashboard
* Workflow:		POST / -> Orchestrator (validate -> weather -> itinerary) -> dashboard
 */
package handler

import (
	"errors"
	"net/http"

	"TravelPlanner_WebProject/internal/middleware"
	"TravelPlanner_WebProject/internal/planner"
	"TravelPlanner_WebProject/internal/session"

	"github.com/gin-gonic/gin"
)

// Index godoc
// @Summary      Trip form
// @Tags         Trip
// @Produce      html
// @Success      200 {string} string "trip form"
// @Success      303 "redirect to /login when not logged in"
// @Router       / [get]
func (h *Handler) Index(c *gin.Context, sess *session.Session) {
	h.render(c, sess, http.StatusOK, "index.html", "Plan a trip", nil)
}

// PlanTrip godoc
// @Summary      Plan a trip
// @Description  Validates the dates, fetches the destination weather and generates a day-wise itinerary.
// @Tags         Trip
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        source      formData string true "departure city"
// @Param        destination formData string true "destination"
// @Param        date        formData string true "travel date (YYYY-MM-DD)"
// @Param        return      formData string true "return date (YYYY-MM-DD)"
// @Success      200 {string} string "dashboard with weather and itinerary"
// @Success      303 "redirect to / with a notice when the request is rejected"
// @Router       / [post]
func (h *Handler) PlanTrip(c *gin.Context, sess *session.Session) {
	var form planner.Form
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Failed to bind trip form", "error", err)
	}

	plan, err := h.planner.Plan(c.Request.Context(), form, nil)
	if err != nil {
		h.redirect(c, sess, "/", session.FlashDanger, rejectionNotice(err))
		return
	}

	h.render(c, sess, http.StatusOK, "dashboard.html", "Your itinerary", gin.H{"Plan": plan})
}

func rejectionNotice(err error) string {
	var rej *planner.Rejection
	if errors.As(err, &rej) && rej.Notice != "" {
		return rej.Notice
	}
	return middleware.UnexpectedError
}
