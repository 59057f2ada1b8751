// Package duckduckgo provides a web search adapter over the DuckDuckGo
// Instant Answer API.
package duckduckgo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/verity-labs/verity/internal/core/domain"
	"github.com/verity-labs/verity/internal/core/ports/driven"
	"github.com/verity-labs/verity/internal/logger"
)

// Ensure WebSearchService implements the interface.
var _ driven.WebSearchService = (*WebSearchService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "https://api.duckduckgo.com"
	DefaultMaxResults = domain.DefaultWebSearchResults
	DefaultTimeout    = domain.DefaultWebSearchTimeout

	// defaultRequestsPerSecond keeps the client well under the
	// provider's informal rate expectations.
	defaultRequestsPerSecond = 1
	defaultBurst             = 3
)

// Config holds configuration for the DuckDuckGo search service.
type Config struct {
	// BaseURL is the API base URL (default: https://api.duckduckgo.com).
	BaseURL string

	// MaxResults caps the number of evidence items returned.
	MaxResults int

	// Timeout bounds each provider request.
	Timeout time.Duration
}

// WebSearchService queries the DuckDuckGo Instant Answer API.
//
// Web evidence is best-effort: every failure path returns an empty
// slice rather than an error, so a provider outage never blocks the
// answer pipeline.
type WebSearchService struct {
	client     *http.Client
	baseURL    string
	maxResults int
	limiter    *rate.Limiter
}

// instantAnswerResponse is the subset of the Instant Answer payload we
// consume.
type instantAnswerResponse struct {
	Heading       string         `json:"Heading"`
	AbstractText  string         `json:"AbstractText"`
	AbstractURL   string         `json:"AbstractURL"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

// relatedTopic is either a leaf result or a named group of results.
type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

// New creates a DuckDuckGo search service.
func New(cfg Config) *WebSearchService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &WebSearchService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:    cfg.BaseURL,
		maxResults: cfg.MaxResults,
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurst),
	}
}

// Search returns up to the configured number of web evidence items.
func (s *WebSearchService) Search(ctx context.Context, query string) ([]domain.EvidenceItem, error) {
	if query == "" {
		return []domain.EvidenceItem{}, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		logger.Warn("Web search rate limiter interrupted: %v", err)
		return []domain.EvidenceItem{}, nil
	}

	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&skip_disambig=1",
		s.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		logger.Warn("Web search request construction failed: %v", err)
		return []domain.EvidenceItem{}, nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Web search request failed: %v", err)
		return []domain.EvidenceItem{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Web search returned status %d", resp.StatusCode)
		return []domain.EvidenceItem{}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("Web search response read failed: %v", err)
		return []domain.EvidenceItem{}, nil
	}

	var answer instantAnswerResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		logger.Warn("Web search response decode failed: %v", err)
		return []domain.EvidenceItem{}, nil
	}

	items := s.collectItems(&answer)
	logger.Debug("Web search for %q returned %d items", query, len(items))
	return items, nil
}

// collectItems flattens the instant answer into evidence items: the
// abstract first, then related topics in order, capped at maxResults.
func (s *WebSearchService) collectItems(answer *instantAnswerResponse) []domain.EvidenceItem {
	items := make([]domain.EvidenceItem, 0, s.maxResults)

	if answer.AbstractText != "" {
		items = append(items, domain.EvidenceItem{
			Kind:    domain.EvidenceWeb,
			Title:   answer.Heading,
			URL:     answer.AbstractURL,
			Snippet: answer.AbstractText,
		})
	}

	var walk func(topics []relatedTopic)
	walk = func(topics []relatedTopic) {
		for _, topic := range topics {
			if len(items) >= s.maxResults {
				return
			}
			if len(topic.Topics) > 0 {
				walk(topic.Topics)
				continue
			}
			if topic.Text == "" {
				continue
			}
			items = append(items, domain.EvidenceItem{
				Kind:    domain.EvidenceWeb,
				Title:   topic.Text,
				URL:     topic.FirstURL,
				Snippet: topic.Text,
			})
		}
	}
	walk(answer.RelatedTopics)

	return items
}
