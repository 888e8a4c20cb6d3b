package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/theopenshift/openshift-web/internal/utils"
)

// TokenSource supplies the bearer token for one outbound call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// Client talks to the marketplace REST API.
type Client struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
	Tokens     TokenSource
}

const (
	RequestIDHeader = "X-Request-ID"
	maxErrorBody    = 64 << 10
)

var validate = validator.New()

// NewClient builds a client for baseURL. Outbound requests are traced through
// otelhttp.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q: scheme and host required", baseURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: parsed,
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		Tokens: tokens,
	}, nil
}

// doRequest builds, executes and decodes one authenticated request. A nil out
// discards the body.
func (c *Client) doRequest(ctx context.Context, method, reqPath string, query url.Values, body any, out any) error {
	token, err := c.Tokens.Token(ctx)
	if err != nil || token == "" {
		return ErrNoAccessToken
	}

	u := *c.BaseURL
	u.Path = path.Join(c.BaseURL.Path, reqPath)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	log := utils.Logger.WithFields(logrus.Fields{
		"method":     method,
		"path":       reqPath,
		"request_id": reqID,
	})

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.WithError(err).Warn("Marketplace API call failed")
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "duration": time.Since(start)})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.handleHTTPError(resp)
		log.WithError(apiErr).Warn("Marketplace API returned an error")
		return apiErr
	}
	log.Debug("Marketplace API call succeeded")

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &MalformedResponseError{Path: reqPath, Err: err}
	}
	if err := validateResponse(out); err != nil {
		return &MalformedResponseError{Path: reqPath, Err: err}
	}
	return nil
}

// handleHTTPError reads a non-2xx body and pulls out the message text.
func (c *Client) handleHTTPError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	raw := strings.TrimSpace(string(bodyBytes))

	msg := ""
	var eb errorBody
	if err := json.Unmarshal(bodyBytes, &eb); err == nil {
		msg = eb.text()
	} else if raw != "" && !strings.HasPrefix(raw, "<") {
		msg = raw
	}
	if msg == "" {
		msg = utils.GenericErrorMessage
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg, Body: raw}
}

// validateResponse runs struct validation over a decoded response: the value
// itself if it is a struct, every element if it is a slice of structs.
func validateResponse(out any) error {
	v := reflect.ValueOf(out)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Struct:
		return validate.Struct(v.Addr().Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			el := v.Index(i)
			for el.Kind() == reflect.Pointer {
				if el.IsNil() {
					return errors.New("null element in list")
				}
				el = el.Elem()
			}
			if el.Kind() != reflect.Struct {
				continue
			}
			if err := validate.Struct(el.Addr().Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}
