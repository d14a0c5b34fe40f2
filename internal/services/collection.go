// Collection [Service] implementation over HTTP
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
)

const defaultBaseURL string = "http://localhost:3000"

// RequestIDHeader carries a per-request uuid for correlating client and service logs.
const RequestIDHeader = "X-Request-ID"

var _ Service = (*CollectionService)(nil)

// CollectionOpts contains configuration options for creating a [CollectionService].
type CollectionOpts struct {
	BaseURL    string
	HTTPClient *http.Client
	RateLimit  float64 // requests per second, 0 disables limiting
	Logger     *log.Logger
}

// CollectionService implements [Service] against the collection HTTP API.
type CollectionService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewCollectionService creates a new collection client.
func NewCollectionService(opts CollectionOpts) *CollectionService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	svc := &CollectionService{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
	if opts.RateLimit > 0 {
		svc.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return svc
}

// BaseURL returns the service root every path is resolved against.
func (c *CollectionService) BaseURL() string {
	return c.baseURL
}

// doRequest sends body as JSON and decodes the response into result.
//
// With lenient set, an empty or undecodable success body is not an error.
func (c *CollectionService) doRequest(ctx context.Context, method, endpoint string, body, result any, lenient bool) (err error) {
	ctx, span := tracer.Start(ctx, method+" "+endpoint)
	defer func() {
		if err != nil && err != errEmptyBody {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	span.SetAttributes(attribute.String("request.id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", endpoint, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("request", "method", method, "path", endpoint, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s %s: %w", shared.ErrAPIRequest, method, endpoint, shared.ErrNotFound)
		}
		return fmt.Errorf("%w: %s %s: status %d", shared.ErrAPIRequest, method, endpoint, resp.StatusCode)
	}

	if result == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if lenient {
			return nil
		}
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(data, result); err != nil {
		if lenient {
			return errEmptyBody
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// errEmptyBody marks a lenient decode that produced nothing usable.
var errEmptyBody = fmt.Errorf("empty body")

// ListParties calls GET /parties.
func (c *CollectionService) ListParties(ctx context.Context) ([]models.Party, error) {
	var parties []models.Party
	if err := c.doRequest(ctx, http.MethodGet, "/parties", nil, &parties, false); err != nil {
		return nil, err
	}
	if parties == nil {
		parties = []models.Party{}
	}
	return parties, nil
}

// CreateParty calls POST /parties with {name, date}.
func (c *CollectionService) CreateParty(ctx context.Context, in models.PartyInput) (*models.Party, error) {
	var party models.Party
	if err := c.doRequest(ctx, http.MethodPost, "/parties", in, &party, true); err != nil {
		if err == errEmptyBody {
			return nil, nil
		}
		return nil, err
	}
	if party.ID == 0 {
		return nil, nil
	}
	return &party, nil
}

// UpdateParty calls PATCH /parties/{id} with {name, date}.
func (c *CollectionService) UpdateParty(ctx context.Context, id int, in models.PartyInput) (*models.Party, error) {
	var party models.Party
	endpoint := fmt.Sprintf("/parties/%d", id)
	if err := c.doRequest(ctx, http.MethodPatch, endpoint, in, &party, true); err != nil {
		if err == errEmptyBody {
			return nil, nil
		}
		return nil, err
	}
	if party.ID == 0 {
		return nil, nil
	}
	return &party, nil
}

// DeleteParty calls DELETE /parties/{id}.
func (c *CollectionService) DeleteParty(ctx context.Context, id int) error {
	return c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/parties/%d", id), nil, nil, true)
}

// ListAttendees calls GET /people/party/{partyId}.
func (c *CollectionService) ListAttendees(ctx context.Context, partyID int) ([]models.Attendee, error) {
	var attendees []models.Attendee
	endpoint := fmt.Sprintf("/people/party/%d", partyID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &attendees, false); err != nil {
		return nil, err
	}
	if attendees == nil {
		attendees = []models.Attendee{}
	}
	return attendees, nil
}

// CreateAttendee calls POST /people with the attendee fields and no id.
func (c *CollectionService) CreateAttendee(ctx context.Context, fields models.AttendeeFields) (*models.Attendee, error) {
	var attendee models.Attendee
	if err := c.doRequest(ctx, http.MethodPost, "/people", fields, &attendee, true); err != nil {
		if err == errEmptyBody {
			return nil, nil
		}
		return nil, err
	}
	if attendee.ID == 0 {
		return nil, nil
	}
	return &attendee, nil
}

// UpdateAttendee calls PUT /people/{id} with the full record.
func (c *CollectionService) UpdateAttendee(ctx context.Context, a models.Attendee) (*models.Attendee, error) {
	var attendee models.Attendee
	endpoint := fmt.Sprintf("/people/%d", a.ID)
	if err := c.doRequest(ctx, http.MethodPut, endpoint, a, &attendee, true); err != nil {
		if err == errEmptyBody {
			return nil, nil
		}
		return nil, err
	}
	if attendee.ID == 0 {
		return nil, nil
	}
	return &attendee, nil
}

// DeleteAttendee calls DELETE /people/{id}.
func (c *CollectionService) DeleteAttendee(ctx context.Context, id int) error {
	return c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/people/%d", id), nil, nil, true)
}
