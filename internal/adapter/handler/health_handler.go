package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/credential-service/internal/adapter/handler/dto/response"
)

// ReadinessFunc reports whether the backing store can serve requests.
type ReadinessFunc func(ctx context.Context) error

type HealthHandler struct {
	ready ReadinessFunc
}

func NewHealthHandler(ready ReadinessFunc) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Live godoc
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	response.HealthResponse
//	@Router		/health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}

// Ready godoc
//
//	@Summary	Readiness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	response.HealthResponse
//	@Failure	503	{object}	response.HealthResponse
//	@Router		/health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, response.HealthResponse{Status: "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
