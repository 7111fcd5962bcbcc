// File: api/handlers/search.go

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/JingYiJun/ClassicIndex/internal/log"
	"github.com/JingYiJun/ClassicIndex/internal/models"
	"github.com/JingYiJun/ClassicIndex/internal/services"
)

const (
	MsgInvalidBody        = "invalid request body"
	MsgBackendUnreachable = "cannot reach backend service"
	MsgBackendFailed      = "backend request failed"
)

// Backend is the upstream search service as seen by the handlers
type Backend interface {
	Search(ctx context.Context, payload any) (*services.UpstreamResponse, error)
	Health(ctx context.Context) error
}

// SearchHandler relays searches to the backend. It keeps no state between requests.
type SearchHandler struct {
	Backend Backend
	logger  *log.Logger
}

func NewSearchHandler(backend Backend) *SearchHandler {
	return &SearchHandler{
		Backend: backend,
		logger:  log.ForService("proxy"),
	}
}

// HandleSearch forwards the JSON body to the backend's /search endpoint.
//
// Non-2xx backend answers are relayed as they are. Failures to talk to the
// backend are mapped to a 502 with a fixed message; the underlying error is
// only logged.
func (h *SearchHandler) HandleSearch(c *gin.Context) {
	logger := h.requestLogger(c)

	raw, err := c.GetRawData()
	if err != nil {
		logger.Warnf("reading request body: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgInvalidBody})
		return
	}

	// Any JSON value is accepted; numbers are kept exact for re-encoding
	var payload any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		logger.Debugf("invalid request payload: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgInvalidBody})
		return
	}
	if _, err := dec.Token(); err != io.EOF {
		logger.Debugf("trailing data after request payload")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: MsgInvalidBody})
		return
	}

	startTime := time.Now()
	upstream, err := h.Backend.Search(c.Request.Context(), payload)
	if err != nil {
		logger.Errorf("search failed after %s: %v", time.Since(startTime), err)
		if services.KindOf(err) == services.KindUnreachable {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: MsgBackendUnreachable})
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: MsgBackendFailed})
		return
	}

	if !upstream.OK() {
		logger.Warnf("backend answered %d", upstream.StatusCode)
		relayUpstreamError(c, upstream)
		return
	}

	logger.Infof("search completed in %s", time.Since(startTime))
	c.Data(http.StatusOK, "application/json; charset=utf-8", upstream.Body)
}

// relayUpstreamError passes a non-2xx backend answer through untouched, using
// the status reason text when the body is empty
func relayUpstreamError(c *gin.Context, upstream *services.UpstreamResponse) {
	body := upstream.Body
	contentType := upstream.ContentType
	if len(body) == 0 {
		body = []byte(http.StatusText(upstream.StatusCode))
		contentType = ""
	}
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	c.Data(upstream.StatusCode, contentType, body)
}

// HandleHealth reports the proxy as up and how the backend is doing
func (h *SearchHandler) HandleHealth(c *gin.Context) {
	backend := "reachable"
	if err := h.Backend.Health(c.Request.Context()); err != nil {
		h.requestLogger(c).Warnf("backend health check: %v", err)
		backend = "error"
		if services.KindOf(err) == services.KindUnreachable {
			backend = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().Format(time.RFC3339),
		"backend": backend,
	})
}

func (h *SearchHandler) requestLogger(c *gin.Context) *log.Logger {
	if id := c.GetString(requestIDKey); id != "" {
		return h.logger.With(map[string]string{"request_id": id})
	}
	return h.logger
}
