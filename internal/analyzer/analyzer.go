package analyzer

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/gsocbuddy/gsoc-buddy/internal/ai"
	"github.com/gsocbuddy/gsoc-buddy/internal/utils"
	"go.uber.org/zap"
)

const (
	descriptionSnippetLen = 200
	defaultMaxLogLength   = 200
)

// hints suggests remediations for failure kinds the user can act on.
var hints = map[ai.ErrorKind]string{
	ai.KindModelNotFound:    "check the configured model name or list the models available to your API key",
	ai.KindPermissionDenied: "verify the Gemini API key is valid and has access to the configured model",
}

// IssueAnalyzer classifies GitHub issues with an AI generator and memoizes
// the results. Per-issue provider failures are captured as data on the
// returned Analysis, never raised.
type IssueAnalyzer struct {
	generator ai.Generator
	logger    *zap.Logger
	cache     *analysisCache
	maxLogLen int
	pace      time.Duration
}

// New creates an IssueAnalyzer. The generator is required: credential
// resolution happens when the generator itself is constructed, so a nil
// generator means no usable AI capability.
func New(generator ai.Generator, logger *zap.Logger, maxLogLength int, pace time.Duration) (*IssueAnalyzer, error) {
	if generator == nil {
		return nil, errors.New("an ai generator is required")
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &IssueAnalyzer{
		generator: generator,
		logger:    logger,
		cache:     newAnalysisCache(),
		maxLogLen: maxLogLength,
		pace:      pace,
	}, nil
}

// AnalyzeIssue classifies a single issue. Identical (title, description)
// pairs are served from cache without a second AI call. Failed analyses are
// not cached so the next call retries.
func (a *IssueAnalyzer) AnalyzeIssue(ctx context.Context, title, description string, labels []string) *Analysis {
	key := fingerprint(title, description)
	if cached, ok := a.cache.get(key); ok {
		a.logger.Debug("analysis served from cache", zap.String("title", title))
		return cached
	}

	prompt := buildPrompt(title, description, labels)

	a.logger.Debug("issue analysis request",
		zap.String("title", title),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		a.logger.Warn("issue analysis failed",
			zap.String("title", title),
			zap.Error(err),
		)
		return a.failureResult(title, err)
	}

	a.logger.Debug("issue analysis response",
		zap.String("title", title),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	result := parseResponse(raw)
	result.Raw = raw
	result.OriginalTitle = title
	result.OriginalDescription = utils.TruncateRunes(description, descriptionSnippetLen)
	result.Labels = append([]string(nil), labels...)

	a.cache.put(key, result)

	return result
}

// BatchAnalyze processes issues strictly in input order and always returns
// one result per input. A failure on one issue does not abort the batch.
func (a *IssueAnalyzer) BatchAnalyze(ctx context.Context, issues []Request) []*Analysis {
	results := make([]*Analysis, 0, len(issues))

	for i, issue := range issues {
		if i > 0 && a.pace > 0 {
			if err := utils.WaitFor(ctx, a.pace); err != nil {
				a.logger.Debug("batch pacing interrupted", zap.Error(err))
			}
		}

		// Copy so the per-batch position never leaks into the cached entry.
		result := *a.AnalyzeIssue(ctx, issue.Title, issue.Description, issue.Labels)
		result.Position = i + 1
		results = append(results, &result)
	}

	a.logger.Info("batch analysis finished",
		zap.Int("issues", len(issues)),
		zap.Int("cached_analyses", a.cache.len()),
	)

	return results
}

func (a *IssueAnalyzer) failureResult(title string, err error) *Analysis {
	failure := &Failure{
		Kind:    ai.KindGenericAPI,
		Message: err.Error(),
	}

	var provErr *ai.ProviderError
	if errors.As(err, &provErr) {
		failure.Kind = provErr.Kind
		failure.Message = provErr.Message
	} else if errors.Is(err, context.DeadlineExceeded) {
		failure.Kind = ai.KindTimeout
	}

	failure.Hint = hints[failure.Kind]

	result := newAnalysis()
	result.OriginalTitle = title
	result.Err = failure
	return result
}
