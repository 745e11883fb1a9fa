package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"flightpocket/internal/domain/entity"
	"flightpocket/internal/infrastructure/connectivity"
	"flightpocket/internal/usecase"
	"flightpocket/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmaxmax/go-sse"
)

// Handlers is the thin presentation surface over the offline core. Any UI
// (the reference one is a browser client) talks to these endpoints and the
// event stream; nothing here holds state of its own.
type Handlers struct {
	selector  *usecase.SourceSelector
	favorites *usecase.FavoritesManager
	queue     *usecase.RequestQueue
	monitor   *connectivity.Monitor
	sseServer *sse.Server
	logger    logger.Logger
}

// NewHandlers creates the REST handlers and wires the display-list event
// stream to the selector.
func NewHandlers(
	selector *usecase.SourceSelector,
	favorites *usecase.FavoritesManager,
	queue *usecase.RequestQueue,
	monitor *connectivity.Monitor,
	logger logger.Logger,
) *Handlers {
	h := &Handlers{
		selector:  selector,
		favorites: favorites,
		queue:     queue,
		monitor:   monitor,
		sseServer: sse.NewServer(),
		logger:    logger,
	}

	selector.OnChange(h.publishFlights)
	return h
}

// Register mounts all routes on the engine
func (h *Handlers) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	v1.GET("/flights", h.ListFlights)
	v1.GET("/favorites", h.ListFavorites)
	v1.POST("/favorites/toggle", h.ToggleFavorite)
	v1.POST("/requests", h.SubmitRequest)
	v1.GET("/status", h.Status)

	r.GET("/events", gin.WrapH(h.sseServer))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
}

// ListFlights handles GET /api/v1/flights
func (h *Handlers) ListFlights(c *gin.Context) {
	flights, err := h.selector.Current(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrFeedUnavailable) {
			// Fetch failure replaces the whole view
			c.JSON(http.StatusBadGateway, gin.H{"error": "flight feed unavailable"})
			return
		}
		h.logger.Error("Failed to build flight list", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list flights"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": flights, "online": h.monitor.IsOnline()})
}

// ListFavorites handles GET /api/v1/favorites
func (h *Handlers) ListFavorites(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.favorites.Favorites()})
}

// ToggleFavorite handles POST /api/v1/favorites/toggle
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	var flight entity.Flight
	if err := c.ShouldBindJSON(&flight); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorited, err := h.favorites.Toggle(c.Request.Context(), flight)
	if err != nil {
		if errors.Is(err, usecase.ErrNoFlightNumber) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "flightNumber is required"})
			return
		}
		h.logger.Error("Failed to toggle favorite", "flightNumber", flight.Number, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
		return
	}

	// The offline view is favorites-derived, so the display list may change
	h.selector.Announce()

	c.JSON(http.StatusOK, gin.H{
		"flightNumber": flight.Number,
		"favorited":    favorited,
	})
}

// SubmitRequestBody is the POST /api/v1/requests payload
type SubmitRequestBody struct {
	Name         string `json:"name" binding:"required"`
	FlightNumber string `json:"flightNumber" binding:"required"`
}

// SubmitRequest handles POST /api/v1/requests
func (h *Handlers) SubmitRequest(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.queue.Submit(c.Request.Context(), body.Name, body.FlightNumber)
	if err != nil {
		if errors.Is(err, usecase.ErrSyncUnavailable) {
			// Queued but auto-delivery cannot be promised; not fatal
			c.JSON(http.StatusAccepted, gin.H{
				"status":  string(result.Outcome),
				"id":      result.Request.ID,
				"warning": "request saved, but automatic delivery is unavailable",
			})
			return
		}
		h.logger.Error("Failed to submit request", "flightNumber", body.FlightNumber, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit request"})
		return
	}

	status := http.StatusOK
	if result.Outcome == usecase.SubmitQueued {
		status = http.StatusAccepted
	}
	c.JSON(status, gin.H{
		"status": string(result.Outcome),
		"id":     result.Request.ID,
	})
}

// Status handles GET /api/v1/status
func (h *Handlers) Status(c *gin.Context) {
	depth, err := h.queue.Depth(c.Request.Context())
	if err != nil {
		depth = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"online":     h.monitor.IsOnline(),
		"queueDepth": depth,
	})
}

func (h *Handlers) publishFlights() {
	flights, err := h.selector.Current(context.Background())

	payload := gin.H{"data": flights, "online": h.monitor.IsOnline()}
	if err != nil {
		payload = gin.H{"error": "flight feed unavailable", "online": h.monitor.IsOnline()}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	e := &sse.Message{}
	e.AppendData(data)
	h.sseServer.Publish(e)
}
