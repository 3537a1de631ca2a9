package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
	"github.com/nguyentantai21042004/minutes-flow/internal/extractor"
	"github.com/nguyentantai21042004/minutes-flow/internal/feedback"
	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
	"github.com/nguyentantai21042004/minutes-flow/internal/templates"
)

// Deps are the read-only collaborators shared by every request.
type Deps struct {
	Templates  *templates.Registry
	Backends   *backend.Registry
	Extractor  extractor.Extractor
	Summarizer summarizer.Summarizer
	Feedback   feedback.Store
	Logger     logger.Logger
	// MaxUploadBytes caps request bodies. Zero means 20 MiB.
	MaxUploadBytes int64
}

// NewRouter wires the JSON API onto a gin engine.
func NewRouter(d Deps) *gin.Engine {
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = 20 << 20
	}
	h := &Handlers{deps: d}

	r := gin.New()
	r.MaxMultipartMemory = d.MaxUploadBytes
	r.Use(gin.Recovery(), requestID(), accessLog(d.Logger), limitBody(d.MaxUploadBytes))

	r.GET("/healthz", h.HandleHealth)

	api := r.Group("/api")
	api.GET("/templates", h.HandleTemplates)
	api.GET("/backends", h.HandleBackends)
	api.POST("/summaries", h.HandleSummarize)
	api.POST("/summaries/download", h.HandleDownload)
	api.POST("/feedback", h.HandleFeedback)
	api.GET("/feedback", h.HandleListFeedback)

	return r
}

// NewServer creates the HTTP server for addr.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
