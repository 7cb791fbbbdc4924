package spotoption

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthimation/go-glitch/glitch"
	"go.uber.org/zap"
)

// Headers and credential fields
const (
	UserAgentHeader = "User-Agent"
	RequestIDHeader = "X-Request-ID"
	UserAgent       = "ResNext / SpotOption API Client"

	FieldAPIUsername = "api_username"
	FieldAPIPassword = "api_password"

	DefaultTimeout = 30 * time.Second

	maskedValue = "***"
)

// Client can make requests to the SpotOption API.
//
// HTTP 4xx and 5xx answers are not errors: SpotOption embeds its own status in
// the response envelope, so such bodies are parsed and mapped like any other.
// Check Succeeded and VendorErrors on the returned response.
type Client interface {
	// GetCountries - Country/view
	GetCountries(ctx context.Context) (*GetCountriesResponse, error)

	// GetCampaigns - Campaign/view filtered by campaign type
	GetCampaigns(ctx context.Context, req *GetCampaignsRequest) (*GetCampaignsResponse, error)

	// AddCustomer - Customer/add
	AddCustomer(ctx context.Context, req *AddCustomerRequest) (*AddCustomerResponse, error)

	// ValidateCustomer - Customer/validate by email and password
	ValidateCustomer(ctx context.Context, req *ValidateCustomerRequest) (*ValidateCustomerResponse, error)
}

// Option configures the client built by NewClient.
type Option func(*spotOptionClient)

// WithTransport makes the client use t instead of building its own.
func WithTransport(t Transport) Option {
	return func(s *spotOptionClient) { s.transport = t }
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(s *spotOptionClient) { s.httpClient = c }
}

// WithTimeout sets the timeout of the default transport's http.Client.
func WithTimeout(d time.Duration) Option {
	return func(s *spotOptionClient) { s.timeout = d }
}

// WithLogger logs every request/response pair at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *spotOptionClient) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *spotOptionClient) { s.metrics = m }
}

type spotOptionClient struct {
	url      string
	username string
	password string

	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *Metrics

	transportOnce sync.Once
	transport     Transport
}

// NewClient returns a new SpotOption client for the given endpoint and API credentials.
func NewClient(apiURL string, username string, password string, opts ...Option) Client {
	s := &spotOptionClient{
		url:      strings.TrimRight(apiURL, "?"),
		username: username,
		password: password,
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *spotOptionClient) GetCountries(ctx context.Context) (*GetCountriesResponse, error) {
	payload, err := s.request(ctx, CountriesFields())
	if err != nil {
		return nil, err
	}

	result, err := NewGetCountriesResponse(payload)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *spotOptionClient) GetCampaigns(ctx context.Context, req *GetCampaignsRequest) (*GetCampaignsResponse, error) {
	payload, err := s.request(ctx, req.Fields())
	if err != nil {
		return nil, err
	}

	result, err := NewGetCampaignsResponse(payload)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *spotOptionClient) AddCustomer(ctx context.Context, req *AddCustomerRequest) (*AddCustomerResponse, error) {
	if req == nil {
		return nil, glitch.NewDataError(ErrNilRequest, ErrorInvalidRequest, "AddCustomer requires a request")
	}

	payload, err := s.request(ctx, req.Fields())
	if err != nil {
		return nil, err
	}

	result, err := NewAddCustomerResponse(payload)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *spotOptionClient) ValidateCustomer(ctx context.Context, req *ValidateCustomerRequest) (*ValidateCustomerResponse, error) {
	if req == nil {
		return nil, glitch.NewDataError(ErrNilRequest, ErrorInvalidRequest, "ValidateCustomer requires a request")
	}

	payload, err := s.request(ctx, req.Fields())
	if err != nil {
		return nil, err
	}

	result, err := NewValidateCustomerResponse(payload)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// request signs fields, posts them and decodes whatever body comes back,
// regardless of the HTTP status.
func (s *spotOptionClient) request(ctx context.Context, fields url.Values) (*Payload, glitch.DataError) {
	module, command := fields.Get(FieldModule), fields.Get(FieldCommand)
	s.sign(fields)

	requestID := uuid.NewString()
	headers := http.Header{}
	headers.Set(UserAgentHeader, UserAgent)
	headers.Set(RequestIDHeader, requestID)

	logger := s.logger.With(
		zap.String("module", module),
		zap.String("command", command),
		zap.String("request_id", requestID),
	)

	start := time.Now()
	status, body, err := s.getTransport().PostForm(ctx, s.url, fields, headers)
	elapsed := time.Since(start)
	s.metrics.observe(module, command, status, err, elapsed)

	if err != nil {
		logger.Debug("spotoption request failed",
			zap.String("request", maskCredentials(fields).Encode()),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Debug("spotoption request",
		zap.String("request", maskCredentials(fields).Encode()),
		zap.Int("status", status),
		zap.Duration("latency", elapsed),
		zap.ByteString("response", body),
	)

	return ParsePayload(body)
}

// sign adds the API credentials to the request fields.
func (s *spotOptionClient) sign(fields url.Values) {
	fields.Set(FieldAPIUsername, s.username)
	fields.Set(FieldAPIPassword, s.password)
}

// getTransport builds the default transport on first use unless one was supplied.
func (s *spotOptionClient) getTransport() Transport {
	s.transportOnce.Do(func() {
		if s.transport != nil {
			return
		}
		s.transport = NewTransport(s.httpClient, s.timeout, s.beforeRequest, s.afterRequest)
	})
	return s.transport
}

func (s *spotOptionClient) beforeRequest(ctx context.Context, r *http.Request) context.Context {
	s.logger.Debug("spotoption http request",
		zap.String("method", r.Method),
		zap.String("url", r.URL.Redacted()),
		zap.String("request_id", r.Header.Get(RequestIDHeader)),
	)
	return ctx
}

func (s *spotOptionClient) afterRequest(ctx context.Context, r *http.Request, resp *http.Response) context.Context {
	if resp == nil {
		return ctx
	}
	s.logger.Debug("spotoption http response",
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", r.Header.Get(RequestIDHeader)),
	)
	return ctx
}

func maskCredentials(fields url.Values) url.Values {
	masked := make(url.Values, len(fields))
	for k, v := range fields {
		if k == FieldAPIPassword || k == "password" || k == FieldFilter+"[password]" {
			masked.Set(k, maskedValue)
			continue
		}
		masked[k] = v
	}
	return masked
}
