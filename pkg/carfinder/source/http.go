package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/query"
	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/retry"
)

// Remote fetches the catalog from another carfinder-compatible HTTP API.
// Filters are forwarded as query parameters so the remote may pre-filter.
type Remote struct {
	BaseURL    string
	policy     retry.Policy
	httpClient *http.Client
}

// NewRemote creates a client for the catalog API at baseURL.
func NewRemote(baseURL string, policy retry.Policy) *Remote {
	return &Remote{
		BaseURL: strings.TrimRight(baseURL, "/"),
		policy:  policy,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// remoteListing accepts both a bare array and the listing envelope of
// this service.
type remoteListing struct {
	Cars       []dal.Car `json:"cars"`
	TotalPages int       `json:"totalPages"`
}

// maxRemotePages bounds the walk over a misbehaving remote that never
// reports its last page.
const maxRemotePages = 1000

// List walks every page of the remote listing. A bare array response is
// taken as the whole catalog.
func (r *Remote) List(ctx context.Context, spec dal.FilterSpec) ([]dal.Car, error) {
	vars := query.Values(spec)
	vars.Set("per_page", strconv.Itoa(query.MaxPageSize))

	var cars []dal.Car
	for page := 1; page <= maxRemotePages; page++ {
		vars.Set("page", strconv.Itoa(page))
		listURL := r.BaseURL + "/cars?" + vars.Encode()

		var batch []dal.Car
		var totalPages int
		err := r.policy.Do(ctx, "fetch catalog", func(ctx context.Context) error {
			body, err := r.get(ctx, listURL)
			if err != nil {
				return err
			}
			batch, totalPages, err = decodeListing(body)
			return err
		})
		if err != nil {
			return nil, err
		}

		cars = append(cars, batch...)
		if page >= totalPages || len(batch) == 0 {
			break
		}
	}
	return cars, nil
}

func (r *Remote) Get(ctx context.Context, id int) (dal.Car, error) {
	carURL := fmt.Sprintf("%s/cars/%d", r.BaseURL, id)

	var car dal.Car
	err := r.policy.Do(ctx, "fetch car", func(ctx context.Context) error {
		body, err := r.get(ctx, carURL)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &car); err != nil {
			return fmt.Errorf("failed to decode car %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return dal.Car{}, err
	}
	return car, nil
}

func (r *Remote) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, retry.Stop(dal.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func decodeListing(body []byte) ([]dal.Car, int, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var cars []dal.Car
		if err := json.Unmarshal(body, &cars); err != nil {
			return nil, 0, fmt.Errorf("failed to decode catalog: %w", err)
		}
		return cars, 1, nil
	}
	var listing remoteListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, 0, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return listing.Cars, listing.TotalPages, nil
}
