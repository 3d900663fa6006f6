// README: Gemini-generated daily digest over the order history.
package insights

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/redis/go-redis/v9"
	"google.golang.org/api/option"

	"buensabor/internal/history"
)

var ErrUnavailable = errors.New("insights not configured")

const (
	cacheKeyPrefix = "insights:digest:"
	cacheTTL       = time.Hour
)

// SummarySource provides the day's aggregates the digest is written from.
type SummarySource interface {
	Summary(ctx context.Context, ts time.Time) (history.DailySummary, error)
}

type Service struct {
	client *genai.Client
	model  *genai.GenerativeModel
	cache  *redis.Client
	source SummarySource
}

// NewService initializes the Gemini client. apiKey empty returns a
// service that answers ErrUnavailable instead of failing startup.
func NewService(ctx context.Context, apiKey string, cache *redis.Client, source SummarySource) (*Service, error) {
	s := &Service{cache: cache, source: source}
	if apiKey == "" {
		return s, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-2.0-flash")
	model.SetTemperature(0.4)
	s.client = client
	s.model = model
	return s, nil
}

func (s *Service) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// DailyDigest returns a short natural-language summary of today's order
// activity, cached for an hour so a dashboard refresh storm does not
// fan out into model calls.
func (s *Service) DailyDigest(ctx context.Context) (string, error) {
	if s.model == nil || s.source == nil {
		return "", ErrUnavailable
	}

	day := time.Now().UTC().Format("2006-01-02")
	key := cacheKeyPrefix + day
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			return cached, nil
		}
	}

	summary, err := s.source.Summary(ctx, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("load summary: %w", err)
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(buildPrompt(summary)))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no response candidates from Gemini")
	}

	var digest strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			digest.WriteString(string(txt))
		}
	}
	out := strings.TrimSpace(digest.String())

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, cacheTTL).Err()
	}
	return out, nil
}

func buildPrompt(s history.DailySummary) string {
	return fmt.Sprintf(`You write the daily operations digest for "El Buen Sabor", a restaurant.
Today (%s) the order board observed:
- %d distinct orders
- %d delivered, %d cancelled
- $%.2f revenue from delivered orders

Write 2-3 sentences for the admin dashboard, in Spanish, plain text,
no markdown. Mention the cancellation rate only if it is notable.`,
		s.Day.Format("2006-01-02"), s.Orders, s.Delivered, s.Cancelled, s.Revenue)
}
