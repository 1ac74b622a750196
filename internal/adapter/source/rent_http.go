package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"propinvest/internal/domain/investment"
)

// HTTPRentEstimator asks a listing service for the typical monthly rent of a
// location: GET {baseURL}?searchString={location} -> {"monthly_rent": 17000}.
type HTTPRentEstimator struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewHTTPRentEstimator(baseURL string, timeout time.Duration, log *logrus.Logger) *HTTPRentEstimator {
	return &HTTPRentEstimator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type rentEstimateResponse struct {
	MonthlyRent *float64 `json:"monthly_rent"`
}

func (e *HTTPRentEstimator) buildURL(location string) (string, error) {
	u, err := url.Parse(e.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid rent api url: %w", err)
	}
	q := u.Query()
	q.Set("searchString", location)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (e *HTTPRentEstimator) EstimateRent(ctx context.Context, location string) (float64, error) {
	target, err := e.buildURL(location)
	if err != nil {
		return 0, investment.Unavailable("rent estimate", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, investment.Unavailable("rent estimate", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return 0, investment.Unavailable("rent estimate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, investment.Unavailable("rent estimate", fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, investment.Unavailable("rent estimate", fmt.Errorf("failed to read response: %v", err))
	}
	e.log.WithField("location", location).Debugf("rent api response: %s", string(body))

	var out rentEstimateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, investment.Unavailable("rent estimate", fmt.Errorf("failed to parse response: %v", err))
	}
	if out.MonthlyRent == nil || *out.MonthlyRent <= 0 {
		return 0, investment.Unavailable("rent estimate", fmt.Errorf("no rent for %q", location))
	}
	return *out.MonthlyRent, nil
}
