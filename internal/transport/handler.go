package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-photometry/internal/analyzer"
	"go-photometry/internal/config"
	apperrors "go-photometry/internal/errors"
	"go-photometry/internal/logger"
	"go-photometry/internal/service"
)

// AnalysisRequest is the POST body for both analysis endpoints.
type AnalysisRequest struct {
	Source string `json:"source" binding:"required"`
	// Mode selects an options profile: "default", "fast" or "strict".
	Mode string `json:"mode,omitempty"`
	// Channel selects the histogram to render: red, green, blue or
	// luminance. Only used by the chart endpoint.
	Channel string `json:"channel,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP surface over the photometry service
func NewHandler(svc service.PhotometryService, cfg *config.Config) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestSizeLimiter(cfg.MaxRequestBodySize))

	r.GET("/health", healthCheck)
	r.POST("/analyze", analyzeImage(svc, cfg))
	r.POST("/analyze/histogram", renderHistogram(svc, cfg))

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func analyzeImage(svc service.PhotometryService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx, cancel := contextWithTimeout(c, cfg.RequestTimeout)
		defer cancel()

		req, opts, ok := bindRequest(c)
		if !ok {
			return
		}

		logger.WithFields(logrus.Fields{
			"source": req.Source,
			"mode":   req.Mode,
			"ip":     c.ClientIP(),
		}).Info("Processing analysis request")

		resp, err := svc.AnalyzeSource(ctx, req.Source, opts)
		if err != nil {
			respondError(c, err)
			return
		}

		logger.WithFields(logrus.Fields{
			"source":   req.Source,
			"duration": time.Since(start),
		}).Debug("Analysis request served")
		c.JSON(http.StatusOK, resp)
	}
}

func renderHistogram(svc service.PhotometryService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := contextWithTimeout(c, cfg.RequestTimeout)
		defer cancel()

		req, opts, ok := bindRequest(c)
		if !ok {
			return
		}

		png, err := svc.RenderHistogram(ctx, req.Source, req.Channel, opts)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	}
}

func bindRequest(c *gin.Context) (AnalysisRequest, analyzer.AnalysisOptions, bool) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request format", Message: err.Error()})
		return req, analyzer.AnalysisOptions{}, false
	}

	var opts analyzer.AnalysisOptions
	switch req.Mode {
	case "", "default":
		opts = analyzer.DefaultOptions()
	case "fast":
		opts = analyzer.FastOptions()
	case "strict":
		opts = analyzer.StrictOptions()
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown analysis mode", Message: req.Mode})
		return req, opts, false
	}
	return req, opts, true
}

func respondError(c *gin.Context, err error) {
	status := apperrors.GetStatusCode(err)
	logger.WithError(err).WithFields(logrus.Fields{
		"status": status,
		"path":   c.Request.URL.Path,
	}).Error("Request failed")
	c.JSON(status, ErrorResponse{Error: http.StatusText(statusTextSafe(status)), Message: err.Error()})
}

// statusTextSafe maps the non-standard 499 onto something StatusText
// knows about for the error envelope.
func statusTextSafe(status int) int {
	if status == 499 {
		return http.StatusRequestTimeout
	}
	return status
}

func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}

// requestSizeLimiter rejects request bodies above the configured cap
// before JSON binding reads them.
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: "request body too large",
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
