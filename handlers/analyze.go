package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"go-conceptgraph/graph"
	"go-conceptgraph/metrics"
	"go-conceptgraph/nlp"
	"go-conceptgraph/types"
)

// AnalyzeOptions bounds a single analyze request.
type AnalyzeOptions struct {
	MaxTextBytes int
	Timeout      time.Duration
}

// AnalyzeText extracts the concept graph of the posted text.
func AnalyzeText(c *gin.Context, recognizer nlp.Recognizer, collector *metrics.Collector, opts AnalyzeOptions) {
	var request types.AnalyzeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if request.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No text provided"})
		return
	}
	if opts.MaxTextBytes > 0 && len(request.Text) > opts.MaxTextBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("Text exceeds %d bytes", opts.MaxTextBytes),
		})
		return
	}

	ctx := c.Request.Context()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	result, err := graph.Extract(ctx, recognizer, request.Text, request.MainTopic)
	if err != nil {
		zap.S().Errorf("Error extracting graph with %s: %v", recognizer.Name(), err)
		if collector != nil {
			collector.RecognizerErrors.WithLabelValues(recognizer.Name()).Inc()
		}
		_ = c.Error(err)
		c.JSON(statusForError(err), gin.H{
			"error":   "Failed to analyze text",
			"details": err.Error(),
		})
		return
	}

	if collector != nil {
		collector.ObserveGraph(result)
	}
	c.JSON(http.StatusOK, result)
}

// Preflight answers cross-origin negotiation requests that reach the route.
func Preflight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// statusForError maps recognizer failures to an HTTP status.
func statusForError(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	switch status.Code(err) {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable, codes.ResourceExhausted:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, nlp.ErrMalformedResponse) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
