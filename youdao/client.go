// Package youdao holds the request signing and the signed form transport
// shared by the OCR and translation clients.
package youdao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"ocr-translate/apperr"
)

const (
	DefaultOCRURL       = "https://openapi.youdao.com/ocrapi"
	DefaultTranslateURL = "https://openapi.youdao.com/api"
	DefaultTimeout      = 45 * time.Second

	// SuccessCode is the errorCode value the vendor returns on success.
	SuccessCode = "0"
)

// Credentials identify the vendor application.
type Credentials struct {
	AppKey    string
	AppSecret string
}

// Client posts signed form requests. It is safe to reuse across calls.
type Client struct {
	creds      Credentials
	httpClient *http.Client
	now        func() time.Time
	newSalt    func() string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithClock overrides the source of curtime.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithSalt overrides nonce generation.
func WithSalt(newSalt func() string) Option {
	return func(c *Client) { c.newSalt = newSalt }
}

func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:      creds,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		now:        time.Now,
		newSalt:    newSalt,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// newSalt prefers a time-based UUID and falls back to a random one.
func newSalt() string {
	if id, err := uuid.NewUUID(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// SignedForm adds signType, curtime, appKey, salt and sign to fields.
// signInput is the payload the signature covers (the image text or the query).
func (c *Client) SignedForm(fields url.Values, signInput string) url.Values {
	form := url.Values{}
	for k, v := range fields {
		form[k] = append([]string(nil), v...)
	}
	curtime := strconv.FormatInt(c.now().Unix(), 10)
	salt := c.newSalt()
	form.Set("signType", SignType)
	form.Set("curtime", curtime)
	form.Set("appKey", c.creds.AppKey)
	form.Set("salt", salt)
	form.Set("sign", Sign(signInput, c.creds.AppKey, salt, curtime, c.creds.AppSecret))
	return form
}

// envelope is the part of every vendor response that reports success.
type envelope struct {
	ErrorCode json.RawMessage `json:"errorCode"`
}

// code normalises errorCode, which the vendor sends as a string but which
// some gateways relay as a number.
func (e envelope) code() (string, bool) {
	raw := bytes.TrimSpace(e.ErrorCode)
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

// PostForm signs fields, posts them to endpoint and decodes a successful
// response into out. op names the calling action in returned errors.
func (c *Client) PostForm(ctx context.Context, op, endpoint string, fields url.Values, signInput string, out any) error {
	if c.creds.AppKey == "" || c.creds.AppSecret == "" {
		return apperr.Precondition(op, "app key and app secret are required")
	}

	form := c.SignedForm(fields, signInput)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return apperr.Transport(op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperr.Transport(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.Transport(op, fmt.Errorf("failed to read response: %w", err))
	}
	log.Printf("%s: POST %s -> %d (%d bytes, %v)", op, endpoint, resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.Transport(op, fmt.Errorf("API returned status %d", resp.StatusCode))
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apperr.Remote(op, "", fmt.Sprintf("failed to decode response: %v", err))
	}
	code, ok := env.code()
	if !ok {
		return apperr.Remote(op, "", "response has no errorCode")
	}
	if code != SuccessCode {
		return apperr.Remote(op, code, "API error")
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apperr.Remote(op, "", fmt.Sprintf("failed to decode response: %v", err))
	}
	return nil
}
