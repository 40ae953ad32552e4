package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"merchant-pulse/internal/adapter/http/dto"
	"merchant-pulse/internal/core/domain"
	"merchant-pulse/internal/core/ports"
	"merchant-pulse/pkg/apperror"
	"merchant-pulse/pkg/response"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"
)

// HeaderFeedID carries the id of the feed opened by a stream request.
const HeaderFeedID = "X-Feed-ID"

// streamBuffer bounds the messages queued between the feed and a slow client.
const streamBuffer = 64

// FeedHandler streams live feeds and analytics updates as Server-Sent Events.
type FeedHandler struct {
	feedSvc ports.FeedService
	log     zerolog.Logger
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(feedSvc ports.FeedService, log zerolog.Logger) *FeedHandler {
	return &FeedHandler{feedSvc: feedSvc, log: log}
}

// Stream handles GET /api/v1/feed. The stream ends when the client goes away,
// the feed is closed, or the feed reports a terminal error.
func (h *FeedHandler) Stream(c *gin.Context) {
	var q dto.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	msgs := make(chan domain.FeedMessage, streamBuffer)
	opts := q.ToOptions()
	opts.OnMessage = func(msg domain.FeedMessage) {
		select {
		case msgs <- msg:
		default:
			h.log.Warn().Str("type", msg.Type).Msg("Feed client too slow, dropping message")
		}
	}

	feed, err := h.feedSvc.Connect(c.Request.Context(), opts)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer feed.Close()

	writeStreamHeaders(c)
	c.Header(HeaderFeedID, feed.ID())
	c.Status(http.StatusOK)
	c.SSEvent("connected", gin.H{"feedId": feed.ID()})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-msgs:
			c.SSEvent(msg.Type, msg)
			c.Writer.Flush()
			if msg.Type == domain.FeedMessageError {
				return
			}
		case <-feed.Done():
			// Deliver whatever was queued before the feed exited.
			for {
				select {
				case msg := <-msgs:
					c.SSEvent(msg.Type, msg)
				default:
					c.Writer.Flush()
					return
				}
			}
		}
	}
}

// Control handles POST /api/v1/feed/:id/control.
func (h *FeedHandler) Control(c *gin.Context) {
	feed, ok := h.feedSvc.Lookup(c.Param("id"))
	if !ok {
		response.Error(c, apperror.ErrFeedNotFound())
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}
	var req dto.ControlRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.Error(c, apperror.Validation("malformed control message"))
		return
	}
	if err := binding.Validator.ValidateStruct(req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	feed.Send(body)
	response.Accepted(c, dto.ControlAcceptedResponse{FeedID: feed.ID(), Type: req.Type})
}

// Close handles DELETE /api/v1/feed/:id.
func (h *FeedHandler) Close(c *gin.Context) {
	feed, ok := h.feedSvc.Lookup(c.Param("id"))
	if !ok {
		response.Error(c, apperror.ErrFeedNotFound())
		return
	}
	feed.Close()
	response.NoContent(c)
}

// Updates handles GET /api/v1/updates: analytics bundles published by running
// feeds, for the dashboard or one merchant.
func (h *FeedHandler) Updates(c *gin.Context) {
	var q dto.UpdatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	updates := make(chan domain.TransactionData, streamBuffer)
	subID := h.feedSvc.Subscribe(q.MerchantID, func(data domain.TransactionData) {
		select {
		case updates <- data:
		default:
		}
	})
	defer h.feedSvc.Unsubscribe(q.MerchantID, subID)

	writeStreamHeaders(c)
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-updates:
			c.SSEvent("update", data)
			c.Writer.Flush()
		}
	}
}

func writeStreamHeaders(c *gin.Context) {
	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
}
