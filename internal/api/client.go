package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/p6tools/p6view/internal/domain"
)

// Client provides access to the Schedule Foundation REST API.
type Client interface {
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	CreateProject(ctx context.Context, name, description, createdBy string) (*domain.Project, error)

	ListSchedules(ctx context.Context, projectID int) ([]*domain.Schedule, error)
	CreateSchedule(ctx context.Context, projectID int, name, description, createdBy string) (*domain.Schedule, error)
	DeleteSchedule(ctx context.Context, scheduleID int) error
	UploadScheduleFile(ctx context.Context, projectID int, path, scheduleName, description, createdBy string) (*domain.Schedule, error)

	// GetActivities fetches one page of activities plus the schedule's
	// WBS structure.
	GetActivities(ctx context.Context, scheduleID int, q ActivityQuery) (*ActivityPage, error)
	// GetAllActivities follows pagination until the full activity set
	// is assembled.
	GetAllActivities(ctx context.Context, scheduleID int, q ActivityQuery) (*ActivityPage, error)

	Health(ctx context.Context) error
	DebugStatus(ctx context.Context) (map[string]any, error)
}

// httpClient implements Client against the Flask backend.
type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client for the configured endpoint.
func NewClient(cfg Config) Client {
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

func (c *httpClient) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	var wire []projectJSON
	if err := c.getJSON(ctx, "/api/projects", nil, &wire); err != nil {
		return nil, err
	}
	projects := make([]*domain.Project, len(wire))
	for i, p := range wire {
		projects[i] = p.toDomain()
	}
	return projects, nil
}

func (c *httpClient) CreateProject(ctx context.Context, name, description, createdBy string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	body := map[string]string{
		"name":        name,
		"description": description,
		"created_by":  domain.CoalesceStr(createdBy, c.cfg.CreatedBy),
	}
	var wire projectJSON
	if err := c.postJSON(ctx, "/api/projects", body, &wire); err != nil {
		return nil, err
	}
	return wire.toDomain(), nil
}

func (c *httpClient) ListSchedules(ctx context.Context, projectID int) ([]*domain.Schedule, error) {
	var wire []scheduleJSON
	path := fmt.Sprintf("/api/projects/%d/schedules", projectID)
	if err := c.getJSON(ctx, path, nil, &wire); err != nil {
		return nil, err
	}
	schedules := make([]*domain.Schedule, len(wire))
	for i, s := range wire {
		schedules[i] = s.toDomain()
	}
	return schedules, nil
}

func (c *httpClient) CreateSchedule(ctx context.Context, projectID int, name, description, createdBy string) (*domain.Schedule, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: schedule name is required", ErrValidation)
	}
	body := map[string]string{
		"name":        name,
		"description": description,
		"created_by":  domain.CoalesceStr(createdBy, c.cfg.CreatedBy),
	}
	var wire scheduleJSON
	path := fmt.Sprintf("/api/projects/%d/schedules", projectID)
	if err := c.postJSON(ctx, path, body, &wire); err != nil {
		return nil, err
	}
	return wire.toDomain(), nil
}

func (c *httpClient) DeleteSchedule(ctx context.Context, scheduleID int) error {
	path := fmt.Sprintf("/api/schedules/%d/delete", scheduleID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// activitiesEnvelope is the success-flagged payload of the activities
// endpoint. A missing or false flag is an application failure even on
// a 200 status.
type activitiesEnvelope struct {
	Success      bool           `json:"success"`
	Error        string         `json:"error"`
	Activities   []activityJSON `json:"activities"`
	WBSStructure []wbsJSON      `json:"wbs_structure"`
	ProjectInfo  ProjectInfo    `json:"project_info"`
	Pagination   Pagination     `json:"pagination"`
}

func (c *httpClient) GetActivities(ctx context.Context, scheduleID int, q ActivityQuery) (*ActivityPage, error) {
	query := url.Values{}
	if q.Page > 0 {
		query.Set("page", strconv.Itoa(q.Page))
	}
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = c.cfg.PerPage
	}
	query.Set("per_page", strconv.Itoa(perPage))
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Status != "" && q.Status != domain.StatusAll {
		query.Set("status", q.Status)
	}
	if q.IncludeCodes {
		query.Set("include_codes", "true")
	}
	if q.IncludeUDFs {
		query.Set("include_udfs", "true")
	}

	var env activitiesEnvelope
	path := fmt.Sprintf("/api/schedules/%d/activities", scheduleID)
	if err := c.getJSON(ctx, path, query, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		msg := domain.CoalesceStr(env.Error, "server reported failure")
		return nil, fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}

	page := &ActivityPage{
		Activities:  make([]*domain.Activity, len(env.Activities)),
		WBS:         make([]*domain.WBSNode, len(env.WBSStructure)),
		ProjectInfo: env.ProjectInfo,
		Pagination:  env.Pagination,
	}
	for i, a := range env.Activities {
		page.Activities[i] = a.toDomain()
	}
	for i, w := range env.WBSStructure {
		page.WBS[i] = w.toDomain()
	}
	return page, nil
}

func (c *httpClient) Health(ctx context.Context) error {
	var status struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := c.getJSON(ctx, "/api/health", nil, &status); err != nil {
		return err
	}
	if status.Status != "healthy" {
		return fmt.Errorf("%w: server status %q", ErrRequestFailed, status.Status)
	}
	return nil
}

func (c *httpClient) DebugStatus(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, "/api/debug", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ── transport plumbing ──────────────────────────────────────────────────────

func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *httpClient) postJSON(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// doJSON performs one request with the configured timeout. Failures
// are terminal; retrying is the user's explicit call, never automatic.
func (c *httpClient) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	u := c.cfg.Endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, err)
	}
	return nil
}

func (c *httpClient) transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	// url.Error wrapping obscures the cause; unwrap for a cleaner
	// message when it is a plain connection failure.
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		err = netErr
	}
	return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
}

// serverError surfaces the server's error message verbatim when the
// body carries one, falling back to the HTTP status.
func serverError(status int, body []byte) error {
	var wire struct {
		Error string `json:"error"`
	}
	if err := sonic.Unmarshal(body, &wire); err == nil && wire.Error != "" {
		return fmt.Errorf("%w: %s", ErrRequestFailed, wire.Error)
	}
	return fmt.Errorf("%w: server returned status %d", ErrRequestFailed, status)
}
