package http

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"web-summarizer/internal/domain/entity"
	"web-summarizer/internal/handler/http/respond"
	"web-summarizer/internal/observability/logging"
)

const maxMultipartMemory = 1 << 20

// URLSummarizer produces an extractive summary of the page at a URL.
type URLSummarizer interface {
	SummarizeURL(ctx context.Context, url string, sentenceCount int) (entity.Summary, error)
}

// SummarizeResponse is the body of a successful summarize call.
type SummarizeResponse struct {
	Summary string `json:"summary" example:"Dogs are great too. Cats are great."`
}

// SummarizeHandler serves POST /summarize/.
type SummarizeHandler struct {
	Svc URLSummarizer

	// DefaultSentences is used when the request has no sentence_count.
	DefaultSentences int
	// MaxSentences caps sentence_count. Zero means no cap.
	MaxSentences int
}

// ServeHTTP summarizes a web page
// @Summary      Summarize a web page
// @Description  Fetches the page, extracts its paragraph text and returns the highest scoring sentences in score order.
// @Tags         summarize
// @Accept       x-www-form-urlencoded
// @Accept       mpfd
// @Produce      json
// @Param        url             formData  string   true   "Absolute http(s) URL of the page"
// @Param        sentence_count  formData  integer  false  "Number of sentences to return (default 3)"
// @Success      200  {object}  SummarizeResponse
// @Failure      405  {object}  respond.ErrorBody  "Method not allowed"
// @Failure      413  {object}  respond.ErrorBody  "Request body too large"
// @Failure      422  {object}  respond.ErrorBody  "Invalid form input"
// @Failure      429  {object}  respond.ErrorBody  "Too many requests"
// @Header       429  {integer} Retry-After "Seconds until the client should retry"
// @Failure      500  {object}  respond.ErrorBody  "Fetching or summarizing failed"
// @Router       /summarize/ [post]
func (h SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		respond.Detail(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := parseForm(r); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Detail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respond.Detail(w, http.StatusUnprocessableEntity, "invalid form body: "+err.Error())
		return
	}

	url := strings.TrimSpace(r.PostFormValue("url"))
	if err := entity.ValidateURL(url); err != nil {
		respond.Error(w, http.StatusUnprocessableEntity, err)
		return
	}

	def := h.DefaultSentences
	if def <= 0 {
		def = entity.DefaultSentenceCount
	}
	n, err := entity.ParseSentenceCount(r.PostFormValue("sentence_count"), def, h.MaxSentences)
	if err != nil {
		respond.Error(w, http.StatusUnprocessableEntity, err)
		return
	}

	summary, err := h.Svc.SummarizeURL(r.Context(), url, n)
	if err != nil {
		logger := logging.WithRequestID(r.Context(), logging.FromContext(r.Context()))
		logger.Warn("summarize request failed",
			slog.String("url", respond.Sanitize(url)),
			slog.String("error_kind", entity.KindOf(err).String()),
			slog.String("error", respond.SanitizeError(err)))
		respond.Error(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, SummarizeResponse{Summary: summary.Text()})
}

// parseForm accepts url-encoded and multipart bodies. Query string values are
// ignored by PostFormValue.
func parseForm(r *http.Request) error {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		return r.ParseMultipartForm(maxMultipartMemory)
	}
	return r.ParseForm()
}
