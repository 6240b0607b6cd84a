package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goliatone/go-obituary/pkg/model"
)

const (
	maxResponseBytes = 4 << 20
	tracerName       = "github.com/goliatone/go-obituary/pkg/generator"
)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for the round trip. The
// default is http.DefaultClient, so no timeout is imposed beyond the
// transport's own.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithContract replaces the response contract. Passing nil disables schema
// validation; the body must still decode into the expected shape.
func WithContract(contract *Contract) Option {
	return func(c *Client) {
		c.contract = contract
		c.contractSet = true
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(agent)
	}
}

// WithTracerProvider sets the provider used for the generator.submit span.
// The default is the global otel provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

// Client posts form input to a fixed endpoint URL.
type Client struct {
	endpoint    string
	httpClient  *http.Client
	contract    *Contract
	contractSet bool
	userAgent   string
	tracer      trace.Tracer
}

// New constructs a Client for endpoint. The URL must be absolute http(s).
func New(endpoint string, options ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, errors.New("generator: endpoint is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("generator: parse endpoint: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("generator: endpoint %q must use http or https", trimmed)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("generator: endpoint %q has no host", trimmed)
	}

	c := &Client{
		endpoint:   parsed.String(),
		httpClient: http.DefaultClient,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if !c.contractSet {
		contract, err := DefaultContract()
		if err != nil {
			return nil, err
		}
		c.contract = contract
	}
	return c, nil
}

// Endpoint reports the configured URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type response struct {
	Success  bool   `json:"success"`
	Obituary string `json:"obituary"`
	Error    string `json:"error"`
}

// Submit performs one POST with the form fields and returns the generated
// markup. Any error returned is a *Failure.
func (c *Client) Submit(ctx context.Context, in model.FormInput) (model.GeneratedContent, error) {
	if ctx == nil {
		return model.GeneratedContent{}, failure(KindTransport, errors.New("context is required"))
	}

	ctx, span := c.tracer.Start(ctx, "generator.submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("obituary.tone", string(in.Tone)),
			attribute.String("http.url", c.endpoint),
		),
	)
	defer span.End()

	content, err := c.roundTrip(ctx, in)
	if err != nil {
		var f *Failure
		if errors.As(err, &f) {
			span.SetAttributes(attribute.String("obituary.failure", string(f.Kind)))
			if f.Status != 0 {
				span.SetAttributes(attribute.Int("http.status_code", f.Status))
			}
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return content, err
	}
	span.SetStatus(codes.Ok, "generated")
	return content, nil
}

func (c *Client) roundTrip(ctx context.Context, in model.FormInput) (model.GeneratedContent, error) {
	body := in.Values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBufferString(body))
	if err != nil {
		return model.GeneratedContent{}, failure(KindTransport, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.GeneratedContent{}, failure(KindTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return model.GeneratedContent{}, &Failure{
			Kind:    KindStatus,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("server error: %d", resp.StatusCode),
		}
	}

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return model.GeneratedContent{}, failure(KindTransport, fmt.Errorf("read body: %w", err))
	}

	decoded, err := c.decode(payload)
	if err != nil {
		return model.GeneratedContent{}, &Failure{Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}
	if !decoded.Success {
		return model.GeneratedContent{}, &Failure{
			Kind:    KindRejected,
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(decoded.Error),
		}
	}
	if strings.TrimSpace(decoded.Obituary) == "" {
		return model.GeneratedContent{}, &Failure{
			Kind:    KindDecode,
			Status:  resp.StatusCode,
			Message: "response has no obituary",
		}
	}

	return model.GeneratedContent{HTML: decoded.Obituary}, nil
}

func (c *Client) decode(payload []byte) (response, error) {
	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return response{}, fmt.Errorf("decode body: %w", err)
	}
	if err := c.contract.ValidateResponse(raw); err != nil {
		return response{}, fmt.Errorf("response contract: %w", err)
	}

	var out response
	if err := json.Unmarshal(payload, &out); err != nil {
		return response{}, fmt.Errorf("decode body: %w", err)
	}
	return out, nil
}
