// Package aiparse turns free-form flight queries into structured search
// parameters using an OpenAI-compatible chat completion API. The model is the
// only non-deterministic boundary in the service, so every failure mode is
// classified: rate limits and upstream 5xx are retried with backoff, truncated
// completions are retried once with a larger token budget, and genuine parse
// failures surface as structured errors the HTTP layer can translate into
// clarification prompts.
package aiparse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/adapter/observability"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/domain"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/logger"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/retry"
	"github.com/stevenyi0526-glitch/AirEaseWeb-sub002/internal/infrastructure/timeutil"
)

const (
	// defaultMaxTokens is the completion budget for a parse call. Doubled on
	// the single truncation retry.
	defaultMaxTokens = 512

	// systemPrompt instructs the model to emit only the JSON object.
	systemPrompt = `You are a flight search query parser. Extract search parameters from the user's query and respond with ONLY a JSON object, no prose and no markdown.

Fields: origin (IATA code), destination (IATA code), departureDate (YYYY-MM-DD), timePreference (morning|afternoon|evening), passengers (int), cabinClass (economy|business|first), sortBy (best|price|duration|departure), stops (int, max stops), aircraftType, alliance, maxPrice (number), preferredAirlines (array of IATA codes).

Omit any field the query does not mention. Today's date is %s.`
)

// OriginResolver resolves a client geolocation to the nearest served airport.
// Used when the query names no origin.
type OriginResolver interface {
	NearestAirport(ctx context.Context, geo domain.GeoPoint) (domain.Airport, error)
}

// Parser parses natural-language flight queries.
type Parser struct {
	client   openai.Client
	model    string
	limiter  *rate.Limiter
	retryCfg retry.Config
	resolver OriginResolver
	now      func() time.Time
}

// Config holds Parser construction options.
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	RatePerSecond float64
}

// NewParser creates a Parser. The resolver may be nil, in which case queries
// without an origin fail with ErrLocationUnavailable regardless of geolocation.
func NewParser(cfg Config, resolver OriginResolver) *Parser {
	// Retries are handled by the retry package so the SDK's built-in retry
	// loop is disabled to keep backoff policy in one place.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Parser{
		client:   openai.NewClient(opts...),
		model:    cfg.Model,
		limiter:  rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		retryCfg: retry.AIParseConfig.WithRetryIf(isRetryable),
		resolver: resolver,
		now:      time.Now,
	}
}

// isRetryable classifies model API errors. Rate limits and upstream 5xx are
// transient; everything else (auth failures, bad requests) is permanent.
func isRetryable(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == 429 || apierr.StatusCode >= 500
	}
	return false
}

// completionStatus extracts the HTTP status for the metric label. Transport
// errors carry no status and report 0.
func completionStatus(err error) int {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode
	}
	return 0
}

// Parse converts a free-form query into fully-specified search parameters.
// geo is optional and only consulted when the query names no origin.
func (p *Parser) Parse(ctx context.Context, query string, geo *domain.GeoPoint) (domain.SearchParams, error) {
	if strings.TrimSpace(query) == "" {
		return domain.SearchParams{}, domain.WrapInvalidRequest("query is required")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return domain.SearchParams{}, err
	}

	content, err := retry.DoWithResult(ctx, func() (string, error) {
		return p.complete(ctx, query)
	}, p.retryCfg)
	if err != nil {
		observability.ObserveParse("error")
		return domain.SearchParams{}, fmt.Errorf("query parse: %w", err)
	}

	raw, err := decodeParams(content)
	if err != nil {
		observability.ObserveParse("unparseable")
		logger.Warn().Str("content", truncateForLog(content)).Msg("AI completion was not valid JSON")
		return domain.SearchParams{}, err
	}

	params, err := p.resolve(ctx, raw, geo)
	if err != nil {
		return domain.SearchParams{}, err
	}

	observability.ObserveParse("ok")
	return params, nil
}

// complete performs one chat completion. A completion cut off by the token
// limit is not a parse failure; it is retried once with a doubled budget
// before giving up.
func (p *Parser) complete(ctx context.Context, query string) (string, error) {
	content, truncated, err := p.completeOnce(ctx, query, defaultMaxTokens)
	if err != nil {
		return "", err
	}
	if truncated {
		observability.ObserveParse("truncated")
		logger.Debug().Msg("AI completion truncated, retrying with larger budget")
		content, truncated, err = p.completeOnce(ctx, query, 2*defaultMaxTokens)
		if err != nil {
			return "", err
		}
		if truncated {
			return "", fmt.Errorf("%w: completion truncated twice", domain.ErrUnparseableResponse)
		}
	}
	return content, nil
}

func (p *Parser) completeOnce(ctx context.Context, query string, maxTokens int64) (string, bool, error) {
	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(systemPrompt, timeutil.FormatDate(p.now()))),
			openai.UserMessage(query),
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		observability.ObserveExternal("openai", "chat_completion", completionStatus(err), time.Since(start))
		return "", false, err
	}
	observability.ObserveExternal("openai", "chat_completion", http.StatusOK, time.Since(start))
	if len(resp.Choices) == 0 {
		return "", false, fmt.Errorf("%w: no choices returned", domain.ErrUnparseableResponse)
	}

	choice := resp.Choices[0]
	return choice.Message.Content, choice.FinishReason == "length", nil
}

// wireParams is the JSON shape the model is instructed to emit.
type wireParams struct {
	Origin            string   `json:"origin"`
	Destination       string   `json:"destination"`
	DepartureDate     string   `json:"departureDate"`
	TimePreference    string   `json:"timePreference"`
	Passengers        int      `json:"passengers"`
	CabinClass        string   `json:"cabinClass"`
	SortBy            string   `json:"sortBy"`
	Stops             *int     `json:"stops"`
	AircraftType      string   `json:"aircraftType"`
	Alliance          string   `json:"alliance"`
	MaxPrice          *float64 `json:"maxPrice"`
	PreferredAirlines []string `json:"preferredAirlines"`
}

// decodeParams extracts the JSON object from the completion text. Models
// occasionally wrap output in markdown fences despite instructions.
func decodeParams(content string) (wireParams, error) {
	text := strings.TrimSpace(content)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw wireParams
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return wireParams{}, fmt.Errorf("%w: %v", domain.ErrUnparseableResponse, err)
	}
	return raw, nil
}

// resolve fills the gaps the model left. A missing destination cannot be
// guessed; a missing origin can be inferred from geolocation when available.
func (p *Parser) resolve(ctx context.Context, raw wireParams, geo *domain.GeoPoint) (domain.SearchParams, error) {
	if raw.Destination == "" {
		return domain.SearchParams{}, domain.ErrMissingDestination
	}

	origin := strings.ToUpper(raw.Origin)
	if origin == "" {
		if geo == nil || p.resolver == nil {
			return domain.SearchParams{}, domain.ErrLocationUnavailable
		}
		airport, err := p.resolver.NearestAirport(ctx, *geo)
		if err != nil {
			return domain.SearchParams{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
		}
		origin = airport.Code
	}

	params := domain.SearchParams{
		Origin:            origin,
		Destination:       strings.ToUpper(raw.Destination),
		DepartureDate:     raw.DepartureDate,
		TimePreference:    strings.ToLower(raw.TimePreference),
		Passengers:        raw.Passengers,
		CabinClass:        strings.ToLower(raw.CabinClass),
		SortBy:            domain.ParseSortOption(raw.SortBy),
		Stops:             raw.Stops,
		AircraftType:      raw.AircraftType,
		Alliance:          raw.Alliance,
		MaxPrice:          raw.MaxPrice,
		PreferredAirlines: raw.PreferredAirlines,
	}
	if params.DepartureDate == "" {
		// No date mentioned defaults to tomorrow
		params.DepartureDate = timeutil.FormatDate(p.now().AddDate(0, 0, 1))
	}
	if params.Passengers == 0 {
		params.Passengers = 1
	}
	return params, nil
}

func truncateForLog(s string) string {
	const max = 256
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
