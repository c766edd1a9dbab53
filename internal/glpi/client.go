package glpi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultPageSize is the record window per request.
	DefaultPageSize = 1000

	// requiredFields pins down every field the store consumes, so a GLPI
	// instance configured with a narrow default field set still returns them.
	requiredFields = "id,otherserial,name,computermodels_id,serial,computertypes_id,states_id,users_id,manufacturers_id,date_mod,date_creation,locations_id,comment"

	// rangeExceededMarker is GLPI's 400 body sentinel for paging past the end.
	rangeExceededMarker = "ERROR_RANGE_EXCEED_TOTAL"
)

type Config struct {
	APIURL    string
	AppToken  string
	UserToken string
	PageSize  int
}

// Client issues read-only requests against a GLPI REST endpoint.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config, httpClient *http.Client) *Client {
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}
}

// Session is an explicit handle on one GLPI session token. Callers open
// it, thread it through their fetches, and close it when done.
type Session struct {
	client *Client
	token  string
}

// Open exchanges the application credential for a session token.
func (c *Client) Open(ctx context.Context) (*Session, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.APIURL+"/initSession", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("App-Token", c.config.AppToken)
	if c.config.UserToken != "" {
		req.Header.Set("Authorization", "user_token "+c.config.UserToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AuthenticationError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthenticationError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &AuthenticationError{Status: resp.StatusCode, Body: string(body)}
	}

	return &Session{client: c, token: payload.SessionToken}, nil
}

// FetchComputers retrieves the complete remote record set. When the probe
// response advertises a total via Content-Range the pages are fetched by
// count; otherwise it pages sequentially until the server signals the end.
func (s *Session) FetchComputers(ctx context.Context) ([]Computer, error) {
	total, err := s.probeTotal(ctx)
	if err != nil {
		return nil, err
	}

	if total != nil {
		return s.fetchByCount(ctx, *total)
	}
	return s.fetchSequential(ctx)
}

// Close releases the remote session. Best-effort: the caller no longer
// needs the session, so nothing here is actionable.
func (s *Session) Close() {
	if s.token == "" {
		return
	}

	req, err := http.NewRequest(http.MethodGet, s.client.config.APIURL+"/killSession", nil)
	if err == nil {
		s.setHeaders(req)
		if resp, err := s.client.httpClient.Do(req); err == nil {
			resp.Body.Close()
		}
	}

	s.token = ""
}

// probeTotal requests a single-record window and reads the total from the
// Content-Range header. A nil result means the fallback strategy applies.
func (s *Session) probeTotal(ctx context.Context) (*int, error) {
	resp, body, err := s.getPage(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusBadRequest && strings.Contains(body, rangeExceededMarker) {
		// Empty remote inventory.
		zero := 0
		return &zero, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Status: resp.StatusCode, Body: body}
	}

	contentRange := resp.Header.Get("Content-Range")
	if contentRange == "" {
		return nil, nil
	}

	// Expected format is "items 0-0/123"; the total sits after the last slash.
	parts := strings.Split(contentRange, "/")
	total, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return nil, nil
	}

	return &total, nil
}

func (s *Session) fetchByCount(ctx context.Context, total int) ([]Computer, error) {
	var computers []Computer
	pageSize := s.client.config.PageSize

	for start := 0; start < total; start += pageSize {
		resp, body, err := s.getPage(ctx, start, start+pageSize-1)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &FetchError{Status: resp.StatusCode, Body: body}
		}

		page, err := decodePage(body)
		if err != nil {
			return nil, err
		}
		computers = append(computers, page...)
	}

	return computers, nil
}

func (s *Session) fetchSequential(ctx context.Context) ([]Computer, error) {
	var computers []Computer
	pageSize := s.client.config.PageSize

	for start := 0; ; start += pageSize {
		resp, body, err := s.getPage(ctx, start, start+pageSize-1)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusBadRequest && strings.Contains(body, rangeExceededMarker) {
			break
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &FetchError{Status: resp.StatusCode, Body: body}
		}

		page, err := decodePage(body)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}

		computers = append(computers, page...)

		if len(page) < pageSize {
			break
		}
	}

	return computers, nil
}

func (s *Session) getPage(ctx context.Context, start int, end int) (*http.Response, string, error) {
	url := fmt.Sprintf("%s/Computer?range=%d-%d&expand_dropdowns=true&get_hateoas=false&fields=%s",
		s.client.config.APIURL, start, end, requiredFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	s.setHeaders(req)

	resp, err := s.client.httpClient.Do(req)
	if err != nil {
		return nil, "", &FetchError{Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &FetchError{Status: resp.StatusCode, Body: err.Error()}
	}

	return resp, string(body), nil
}

func (s *Session) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("App-Token", s.client.config.AppToken)
	req.Header.Set("Session-Token", s.token)
}

func decodePage(body string) ([]Computer, error) {
	var page []Computer
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return nil, &FetchError{Body: "cannot decode page: " + err.Error()}
	}
	return page, nil
}
