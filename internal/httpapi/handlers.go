package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/minutes-flow/internal/backend"
	"github.com/nguyentantai21042004/minutes-flow/internal/extractor"
	"github.com/nguyentantai21042004/minutes-flow/internal/feedback"
	"github.com/nguyentantai21042004/minutes-flow/internal/summarizer"
	"github.com/nguyentantai21042004/minutes-flow/internal/templates"
)

// Handlers serves the API. Each request is independent; nothing is shared but Deps.
type Handlers struct {
	deps Deps
}

type errorResponse struct {
	Error string `json:"error"`
}

type templateResponse struct {
	templates.Template
	Label string `json:"label"`
}

type backendResponse struct {
	Kind  backend.Kind `json:"kind"`
	Label string       `json:"label"`
}

type summaryRequest struct {
	Template   string `form:"template" json:"template" binding:"required"`
	Backend    string `form:"backend" json:"backend" binding:"required"`
	Transcript string `form:"transcript" json:"transcript"`
}

type summaryResponse struct {
	summarizer.Result
	HTML string `json:"html"`
}

type downloadRequest struct {
	Text     string `form:"text" json:"text" binding:"required"`
	Format   string `form:"format" json:"format"`
	Template string `form:"template" json:"template"`
}

type feedbackRequest struct {
	Template string `json:"template"`
	Backend  string `json:"backend"`
	Comment  string `json:"comment" binding:"required"`
	Rating   int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleTemplates lists templates in display order.
func (h *Handlers) HandleTemplates(c *gin.Context) {
	list := h.deps.Templates.List()
	out := make([]templateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, templateResponse{Template: t, Label: t.Icon + " " + t.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handlers) HandleBackends(c *gin.Context) {
	kinds := h.deps.Backends.Kinds()
	out := make([]backendResponse, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, backendResponse{Kind: k, Label: k.Label()})
	}
	c.JSON(http.StatusOK, out)
}

// HandleSummarize accepts pasted text or one uploaded file and returns the summary.
func (h *Handlers) HandleSummarize(c *gin.Context) {
	ctx := c.Request.Context()

	var req summaryRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, bindStatus(err), err)
		return
	}

	kind, err := backend.ParseKind(req.Backend)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	transcript := strings.TrimSpace(req.Transcript)
	if fh, err := c.FormFile("file"); err == nil {
		transcript, err = h.extractUpload(c, fh)
		if err != nil {
			h.fail(c, statusFor(err), err)
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		h.fail(c, statusFor(err), fmt.Errorf("read upload: %w", err))
		return
	}

	result, err := h.deps.Summarizer.Summarize(ctx, summarizer.Request{
		Template:   req.Template,
		Backend:    kind,
		Transcript: transcript,
	})
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, summaryResponse{Result: result, HTML: renderMarkdown(result.Text)})
}

func (h *Handlers) extractUpload(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = extractor.DetectMIME(fh.Filename, data)
	}

	h.deps.Logger.Info(c.Request.Context(), "Extracting upload %s (%s, %d bytes)", fh.Filename, mimeType, len(data))
	return h.deps.Extractor.Extract(c.Request.Context(), data, mimeType)
}

// HandleDownload returns summary text as an attachment with a fixed file name.
func (h *Handlers) HandleDownload(c *gin.Context) {
	var req downloadRequest
	if err := c.ShouldBind(&req); err != nil {
		h.fail(c, bindStatus(err), err)
		return
	}

	format, err := summarizer.ParseFormat(req.Format)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	title := "Meeting Summary"
	if req.Template != "" {
		title += " - " + req.Template
	}

	artifact, err := summarizer.Export(title, req.Text, format)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Name))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (h *Handlers) HandleFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindStatus(err), err)
		return
	}

	fb, err := h.deps.Feedback.Record(c.Request.Context(), feedback.Feedback{
		Template: req.Template,
		Backend:  req.Backend,
		Comment:  req.Comment,
		Rating:   req.Rating,
	})
	if err != nil {
		h.fail(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusCreated, fb)
}

func (h *Handlers) HandleListFeedback(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.fail(c, http.StatusBadRequest, fmt.Errorf("invalid limit %q", v))
			return
		}
		limit = n
	}

	list, err := h.deps.Feedback.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	if list == nil {
		list = []feedback.Feedback{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) fail(c *gin.Context, status int, err error) {
	ctx := c.Request.Context()
	if status >= http.StatusInternalServerError {
		h.deps.Logger.Error(ctx, "%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	} else {
		h.deps.Logger.Warn(ctx, "%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

// statusFor maps per-request failures to HTTP statuses.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, extractor.ErrConversionUnavailable),
		errors.Is(err, extractor.ErrConversionFailed),
		errors.Is(err, extractor.ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	case errors.Is(err, templates.ErrNotFound),
		errors.Is(err, backend.ErrUnknownBackend),
		errors.Is(err, summarizer.ErrEmptyTranscript),
		errors.Is(err, feedback.ErrEmptyComment),
		errors.Is(err, feedback.ErrInvalidRating):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrRemoteGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func bindStatus(err error) int {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
