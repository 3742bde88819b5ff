package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sam-maryland/madness-mcp-server/internal/sim"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout = 10 * time.Second
)

// HTTPSource fetches a JSON roster from a URL
type HTTPSource struct {
	url        string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewHTTPSource creates a roster source backed by an HTTP endpoint
func NewHTTPSource(url string, logger *logrus.Logger) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger,
	}
}

// Name returns the URL the roster is fetched from
func (s *HTTPSource) Name() string {
	return s.url
}

// Entrants performs the GET request and decodes the roster
func (s *HTTPSource) Entrants(ctx context.Context) ([]sim.Entrant, error) {
	body, err := s.makeRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get roster from %s: %w", s.url, err)
	}

	entrants, err := decodeEntrants(body)
	if err != nil {
		s.logger.WithError(err).WithField("url", s.url).Error("Failed to decode roster")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"url":      s.url,
		"entrants": len(entrants),
	}).Debug("Roster fetched")

	return entrants, nil
}

func (s *HTTPSource) makeRequest(ctx context.Context) ([]byte, error) {
	s.logger.WithField("url", s.url).Debug("Making roster request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("HTTP request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read response body")
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(body),
		}).Error("Roster request failed")

		return nil, &RosterError{
			Type:       "http_error",
			Message:    fmt.Sprintf("roster request failed with status %d: %s", resp.StatusCode, string(body)),
			Source:     s.url,
			StatusCode: resp.StatusCode,
		}
	}

	return body, nil
}
