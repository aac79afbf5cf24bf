package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const maxErrorBody = 1 << 10

// HTTPDirectory reads users from a hosted identity provider's backend API
// (GET /v1/users?user_id=...&limit=N and GET /v1/users?username=...).
type HTTPDirectory struct {
	baseURL   string
	secretKey string
	client    *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// HTTPOptions configures an HTTPDirectory.
type HTTPOptions struct {
	BaseURL           string
	SecretKey         string
	Timeout           time.Duration
	RequestsPerSecond int
	Client            *http.Client
}

type providerUser struct {
	ID              string  `json:"id"`
	Username        *string `json:"username"`
	ProfileImageURL string  `json:"profile_image_url"`
	ImageURL        string  `json:"image_url"`
}

func NewHTTPDirectory(log *slog.Logger, opts HTTPOptions) *HTTPDirectory {
	if log == nil {
		log = slog.Default()
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = opts.RequestsPerSecond
	}
	return &HTTPDirectory{
		baseURL:   strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		secretKey: opts.SecretKey,
		client:    client,
		limiter:   rate.NewLimiter(limit, burst),
		logger:    log.With(slog.String("service", "directory"), slog.String("provider", "http")),
	}
}

func (d *HTTPDirectory) ListByIDs(ctx context.Context, ids []string, limit int) ([]Record, error) {
	if err := checkBatch(ids, limit); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []Record{}, nil
	}
	query := url.Values{}
	for _, id := range ids {
		query.Add("user_id", id)
	}
	query.Set("limit", strconv.Itoa(effectiveLimit(limit)))
	return d.listUsers(ctx, query)
}

func (d *HTTPDirectory) ListByUsername(ctx context.Context, username string) ([]Record, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return []Record{}, nil
	}
	query := url.Values{}
	query.Add("username", username)
	return d.listUsers(ctx, query)
}

func (d *HTTPDirectory) listUsers(ctx context.Context, query url.Values) ([]Record, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRateLimited, err)
	}
	endpoint := d.baseURL + "/v1/users?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+d.secretKey)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	d.logger.Debug("directory request",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(started)),
	)
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var users []providerUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode directory response: %w", err)
	}
	records := make([]Record, 0, len(users))
	for _, u := range users {
		if strings.TrimSpace(u.ID) == "" {
			continue
		}
		image := u.ImageURL
		if image == "" {
			image = u.ProfileImageURL
		}
		records = append(records, Record{ID: u.ID, Username: u.Username, ProfileImageURL: image})
	}
	return records, nil
}
