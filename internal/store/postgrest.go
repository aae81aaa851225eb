package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/danielwaldman/cadence/internal/domain"
	"github.com/danielwaldman/cadence/internal/identity"
)

// PostgRESTConfig holds the connection settings for a PostgREST-style row
// store (Supabase exposes exactly this interface).
type PostgRESTConfig struct {
	BaseURL   string // e.g. https://xyzcompany.supabase.co
	APIKey    string // anon key, sent on every request
	Table     string
	TimeoutMs int
}

// PostgRESTStore implements ItemStore against a remote PostgREST table.
//
// Credentials expire, so no authenticated client is cached: each operation
// acquires a scoped request context with a freshly fetched bearer token and
// discards it when the operation completes.
type PostgRESTStore struct {
	cfg    PostgRESTConfig
	http   *http.Client
	tokens identity.TokenProvider
}

// NewPostgRESTStore creates a PostgRESTStore. The token provider is consulted
// once per operation.
func NewPostgRESTStore(cfg PostgRESTConfig, tokens identity.TokenProvider) *PostgRESTStore {
	if cfg.Table == "" {
		cfg.Table = "scheduled_items"
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 10000
	}
	return &PostgRESTStore{
		cfg:    cfg,
		http:   &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		tokens: tokens,
	}
}

// itemRow is the wire form of a scheduled item row.
type itemRow struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"user_id"`
	Date      string `json:"date"`
	Content   string `json:"content"`
	Platform  string `json:"platform"`
	CreatedAt string `json:"created_at,omitempty"`
}

func (s *PostgRESTStore) SelectRange(ctx context.Context, ident identity.Identity, from, to domain.Day) ([]domain.ScheduledItem, error) {
	if !ident.SignedIn() {
		return nil, ErrUnauthorized
	}

	params := url.Values{}
	params.Set("select", "*")
	params.Set("user_id", "eq."+ident.UserID)
	params.Add("date", "gte."+from.Key())
	params.Add("date", "lte."+to.Key())
	params.Set("order", "date.asc,created_at.asc")

	var rows []itemRow
	if err := s.do(ctx, http.MethodGet, params, nil, "", &rows); err != nil {
		return nil, err
	}

	items := make([]domain.ScheduledItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PostgRESTStore) Insert(ctx context.Context, ident identity.Identity, day domain.Day, content string, platform domain.Platform) (domain.ScheduledItem, error) {
	if err := validateInsert(ident, day, content, platform); err != nil {
		return domain.ScheduledItem{}, err
	}

	payload := []itemRow{{
		UserID:   ident.UserID,
		Date:     day.Key(),
		Content:  content,
		Platform: string(platform),
	}}

	var rows []itemRow
	if err := s.do(ctx, http.MethodPost, nil, payload, "return=representation", &rows); err != nil {
		return domain.ScheduledItem{}, err
	}
	if len(rows) != 1 {
		return domain.ScheduledItem{}, fmt.Errorf("%w: insert returned %d rows", ErrUnavailable, len(rows))
	}
	return rows[0].toItem()
}

func (s *PostgRESTStore) Delete(ctx context.Context, ident identity.Identity, id string) error {
	if !ident.SignedIn() {
		return ErrUnauthorized
	}

	params := url.Values{}
	params.Set("id", "eq."+id)
	params.Set("user_id", "eq."+ident.UserID)

	var rows []itemRow
	if err := s.do(ctx, http.MethodDelete, params, nil, "return=representation", &rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("scheduled item %s: %w", id, ErrNotFound)
	}
	return nil
}

// do performs one scoped request: fresh token, one call, decode into out.
func (s *PostgRESTStore) do(ctx context.Context, method string, params url.Values, body interface{}, prefer string, out interface{}) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: acquiring credential: %v", ErrUnauthorized, err)
	}

	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.cfg.BaseURL, s.cfg.Table)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("apikey", s.cfg.APIKey)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: store returned status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: store returned status %d: %s", ErrUnavailable, resp.StatusCode, string(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func (r itemRow) toItem() (domain.ScheduledItem, error) {
	day, err := domain.ParseDay(r.Date)
	if err != nil {
		return domain.ScheduledItem{}, fmt.Errorf("parsing row date: %w", err)
	}
	item := domain.ScheduledItem{
		ID:       r.ID,
		UserID:   r.UserID,
		Day:      day,
		Content:  r.Content,
		Platform: domain.Platform(r.Platform),
	}
	if r.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
			item.CreatedAt = t
		}
	}
	return item, nil
}
