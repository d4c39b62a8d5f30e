// Package insights asks Gemini for a short business summary of the dashboard.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/kasir/internal/dashboard"
)

// Fallback is returned whenever an insight cannot be produced.
const Fallback = "Error generating AI insights. Please check your API configuration."

var ErrNotConfigured = errors.New("gemini api key not set")

type Config struct {
	APIKey   string
	Model    string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

type Service struct {
	client   *http.Client
	apiKey   string
	model    string
	baseURL  string
	language string
}

func NewService(cfg Config) *Service {
	return &Service{
		client:   &http.Client{Timeout: cfg.Timeout},
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
	}
}

// Insights never fails: errors are logged and replaced by Fallback.
func (s *Service) Insights(ctx context.Context, stats []dashboard.Stat, recent []dashboard.Transaction) string {
	text, err := s.Generate(ctx, stats, recent)
	if err != nil {
		slog.Error("failed to generate insights", "error", err)
		return Fallback
	}

	return text
}

func (s *Service) Generate(ctx context.Context, stats []dashboard.Stat, recent []dashboard.Transaction) (string, error) {
	if s.apiKey == "" {
		return "", ErrNotConfigured
	}

	prompt, err := s.prompt(stats, recent)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, url.PathEscape(s.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	text := out.text()
	if text == "" {
		return "", errors.New("empty response from model")
	}

	return text, nil
}

func (s *Service) prompt(stats []dashboard.Stat, recent []dashboard.Transaction) (string, error) {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return "", fmt.Errorf("encoding stats: %w", err)
	}

	recentJSON, err := json.Marshal(recent)
	if err != nil {
		return "", fmt.Errorf("encoding transactions: %w", err)
	}

	var sb strings.Builder

	sb.WriteString("As a senior business analyst, provide a short, high-level summary of the current business status based on these stats:\n")
	fmt.Fprintf(&sb, "Stats: %s\n", statsJSON)
	fmt.Fprintf(&sb, "Recent Transactions: %s\n\n", recentJSON)
	sb.WriteString("Give 3 bullet points for:\n1. Key Strength\n2. Potential Risk\n3. Actionable Advice\n\n")
	sb.WriteString("Keep it professional and concise (max 150 words total).\n")

	if s.language != "" {
		fmt.Fprintf(&sb, "Answer in %s.\n", s.language)
	}

	return sb.String(), nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return strings.TrimSpace(sb.String())
}
