/**
* Name:			plan_socket.go
* Description:	Live trip planning over a WebSocket
* Workflow:		upgrade -> read trip JSON -> plan on a worker goroutine -> stream stage events -> result
 */
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"TravelPlanner_WebProject/internal/planner"
	"TravelPlanner_WebProject/internal/session"
	"TravelPlanner_WebProject/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventStage  = "stage"
	EventResult = "result"
	EventError  = "error"

	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// PlanEvent is one server-to-client message on /ws/plan.
type PlanEvent struct {
	Type        string            `json:"type" example:"stage"`
	Stage       string            `json:"stage,omitempty" example:"fetching_weather"`
	Notice      string            `json:"notice,omitempty"`
	Trip        *TripSummary      `json:"trip,omitempty"`
	Weather     *weather.Forecast `json:"weather,omitempty"`
	Itinerary   string            `json:"itinerary,omitempty"`
	ItineraryOK bool              `json:"itinerary_ok,omitempty"`
}

type TripSummary struct {
	Source      string `json:"source" example:"Mumbai"`
	Destination string `json:"destination" example:"Goa"`
	StartDate   string `json:"date" example:"2025-03-01"`
	EndDate     string `json:"return" example:"2025-03-04"`
	Days        int    `json:"days" example:"3"`
}

func (h *Handler) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
}

// checkOrigin admits same-host pages, clients that send no Origin, and the
// configured CORS origins.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if _, ok := h.origins[origin]; ok {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// PlanSocket godoc
// @Summary      Live trip planning WebSocket
// @Description  **Not a plain HTTP API.** Connect with `ws://` or `wss://` using the session cookie.
// @Description  Send a JSON trip `{"source","destination","date","return"}`; the server streams
// @Description  `stage` events, then a `result` or an `error` event. One plan runs at a time per connection.
// @Tags         Trip
// @Success      101 {object} handler.PlanEvent "Switching Protocols"
// @Success      303 "redirect to /login when not logged in"
// @Router       /ws/plan [get]
func (h *Handler) PlanSocket(c *gin.Context, sess *session.Session) {
	conn, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "user_id", sess.UserID, "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	h.logger.Info("Plan socket opened", "user_id", sess.UserID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events := make(chan PlanEvent, 8)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeEvents(conn, events, sess.UserID)
	}()

	var (
		workers sync.WaitGroup
		busy    atomic.Bool
	)

ReadLoop:
	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("Plan socket read failed", "user_id", sess.UserID, "error", err)
			}
			break ReadLoop
		}
		if messageType != websocket.TextMessage {
			events <- PlanEvent{Type: EventError, Notice: "Send the trip as a JSON text message."}
			continue
		}

		var form planner.Form
		if err := json.Unmarshal(message, &form); err != nil {
			events <- PlanEvent{Type: EventError, Notice: "Invalid trip request."}
			continue
		}
		if !busy.CompareAndSwap(false, true) {
			events <- PlanEvent{Type: EventError, Notice: "A plan is already in progress."}
			continue
		}

		workers.Add(1)
		go func() {
			defer workers.Done()
			defer busy.Store(false)
			h.streamPlan(ctx, form, events)
		}()
	}

	cancel()
	workers.Wait()
	close(events)
	<-writerDone
	h.logger.Info("Plan socket closed", "user_id", sess.UserID)
}

// streamPlan runs one plan and reports every stage on events.
func (h *Handler) streamPlan(ctx context.Context, form planner.Form, events chan<- PlanEvent) {
	observe := func(s planner.Stage) {
		events <- PlanEvent{Type: EventStage, Stage: string(s)}
	}

	plan, err := h.planner.Plan(ctx, form, observe)
	if err != nil {
		events <- PlanEvent{Type: EventError, Notice: rejectionNotice(err)}
		return
	}

	events <- PlanEvent{
		Type: EventResult,
		Trip: &TripSummary{
			Source:      plan.Trip.Source,
			Destination: plan.Trip.Destination,
			StartDate:   plan.Trip.StartDate(),
			EndDate:     plan.Trip.EndDate(),
			Days:        plan.Trip.Days,
		},
		Weather:     plan.Forecast,
		Itinerary:   plan.Itinerary.Display(),
		ItineraryOK: plan.Itinerary.OK(),
	}
}

// writeEvents is the connection's only writer. After a write failure it keeps
// draining so plan workers never block.
func (h *Handler) writeEvents(conn *websocket.Conn, events <-chan PlanEvent, userID string) {
	broken := false
	for ev := range events {
		if broken {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			h.logger.Warn("Plan socket write failed", "user_id", userID, "error", err)
			broken = true
			conn.Close()
		}
	}
}
