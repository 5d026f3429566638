package summarize

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"web-summarizer/internal/domain/entity"
	"web-summarizer/internal/observability/logging"
	"web-summarizer/internal/observability/tracing"
	"web-summarizer/internal/usecase/fetch"
	"web-summarizer/internal/utils/text"
)

// Service summarizes web pages: it fetches a URL, extracts its text and
// ranks the sentences. It is safe for concurrent use.
type Service struct {
	Fetcher    fetch.ContentFetcher
	Summarizer *Summarizer
	Metrics    MetricsRecorder
}

// NewService creates a Service. A nil recorder disables metrics.
func NewService(fetcher fetch.ContentFetcher, summarizer *Summarizer, recorder MetricsRecorder) *Service {
	if recorder == nil {
		recorder = NoopMetrics{}
	}
	return &Service{
		Fetcher:    fetcher,
		Summarizer: summarizer,
		Metrics:    recorder,
	}
}

// SummarizeURL fetches url and returns its sentenceCount best sentences.
// Errors are *entity.Error values; entity.KindOf tells fetch, extraction,
// empty-input and tokenization failures apart.
func (s *Service) SummarizeURL(ctx context.Context, url string, sentenceCount int) (entity.Summary, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "summarize.url",
		trace.WithAttributes(
			attribute.String("summarize.url", url),
			attribute.Int("summarize.sentence_count", sentenceCount),
		))
	defer span.End()

	start := time.Now()
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx)).With(slog.String("url", url))

	content, err := s.fetch(ctx, url)
	if err != nil {
		s.finish(ctx, span, logger, start, entity.Summary{}, 0, err)
		return entity.Summary{}, err
	}

	summary, err := s.rank(ctx, content, sentenceCount)
	s.finish(ctx, span, logger, start, summary, text.CountRunes(content), err)
	return summary, err
}

// SummarizeText ranks the sentences of text without fetching anything.
func (s *Service) SummarizeText(ctx context.Context, content string, sentenceCount int) (entity.Summary, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "summarize.text",
		trace.WithAttributes(attribute.Int("summarize.sentence_count", sentenceCount)))
	defer span.End()

	start := time.Now()
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))

	summary, err := s.rank(ctx, content, sentenceCount)
	s.finish(ctx, span, logger, start, summary, text.CountRunes(content), err)
	return summary, err
}

func (s *Service) fetch(ctx context.Context, url string) (string, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "summarize.fetch")
	defer span.End()

	start := time.Now()
	content, err := s.Fetcher.FetchContent(ctx, url)
	s.Metrics.RecordFetch(time.Since(start), len(content), err)
	if err != nil {
		markSpan(span, err)
		if entity.KindOf(err) == entity.KindUnknown {
			err = entity.NewError(entity.KindFetch, "fetch content", err)
		}
		return "", err
	}

	span.SetAttributes(attribute.Int("content.bytes", len(content)))
	return content, nil
}

func (s *Service) rank(ctx context.Context, content string, sentenceCount int) (entity.Summary, error) {
	_, span := tracing.GetTracer().Start(ctx, "summarize.rank")
	defer span.End()

	start := time.Now()
	summary, err := s.Summarizer.Summarize(content, sentenceCount)
	s.Metrics.RecordRank(time.Since(start))
	if err != nil {
		markSpan(span, err)
		return entity.Summary{}, err
	}

	span.SetAttributes(
		attribute.Int("summary.sentences_total", summary.Stats.Sentences),
		attribute.Int("summary.sentences_scored", summary.Stats.Scored),
		attribute.Int("summary.sentences_selected", len(summary.Sentences)),
	)
	return summary, nil
}

func (s *Service) finish(ctx context.Context, span trace.Span, logger *slog.Logger, start time.Time,
	summary entity.Summary, documentRunes int, err error) {
	duration := time.Since(start)
	s.Metrics.RecordOutcome(duration, summary, documentRunes, err)
	logger = logging.WithTraceID(ctx, logger)

	if err != nil {
		markSpan(span, err)
		logger.Warn("summarization failed",
			slog.String("error_kind", entity.KindOf(err).String()),
			slog.Any("error", err),
			slog.Duration("duration", duration))
		return
	}

	logger.Info("summarization completed",
		slog.Int("sentences", summary.Stats.Sentences),
		slog.Int("scored", summary.Stats.Scored),
		slog.Int("selected", len(summary.Sentences)),
		slog.Int("document_runes", documentRunes),
		slog.Duration("duration", duration))
	logger.Debug("summary preview", slog.String("summary", text.Truncate(summary.Text(), 200)))
}

func markSpan(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String("error.kind", entity.KindOf(err).String()))
}
