// Package translate sends text to the Youdao translation API.
package translate

import (
	"context"
	"log"
	"net/url"

	"ocr-translate/apperr"
	"ocr-translate/youdao"
)

const (
	// MaxInputChars is the longest query the endpoint accepts. Longer input is cut.
	MaxInputChars = 5000

	// SourceAuto asks the vendor to detect the source language.
	SourceAuto = "auto"

	op = "translate"
)

// Result carries the translation and whether the input had to be truncated.
type Result struct {
	Text      string
	Truncated bool
	// SentChars is the number of characters actually sent.
	SentChars int
}

// Warning describes a non-fatal condition of the call, or "" if there was none.
func (r Result) Warning() string {
	if !r.Truncated {
		return ""
	}
	return "text is longer than 5000 characters and was truncated before translation"
}

type Client struct {
	api      *youdao.Client
	endpoint string
}

// New returns a Client posting to endpoint, or to youdao.DefaultTranslateURL when empty.
func New(api *youdao.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = youdao.DefaultTranslateURL
	}
	return &Client{api: api, endpoint: endpoint}
}

type response struct {
	Translation []string `json:"translation"`
}

// Translate translates text into the language identified by to.
func (c *Client) Translate(ctx context.Context, text, to string) (Result, error) {
	if to == "" {
		return Result{}, apperr.Precondition(op, "target language is required")
	}

	q, truncated := truncateInput(text)
	if truncated {
		log.Printf("Translate: input truncated to %d characters", MaxInputChars)
	}

	fields := url.Values{
		"from": {SourceAuto},
		"to":   {to},
		"q":    {q},
	}

	var resp response
	if err := c.api.PostForm(ctx, op, c.endpoint, fields, q, &resp); err != nil {
		return Result{}, err
	}
	if len(resp.Translation) == 0 {
		return Result{}, apperr.Remote(op, youdao.SuccessCode, "response has no translation")
	}

	return Result{Text: resp.Translation[0], Truncated: truncated, SentChars: len([]rune(q))}, nil
}

func truncateInput(text string) (string, bool) {
	runes := []rune(text)
	if len(runes) <= MaxInputChars {
		return text, false
	}
	return string(runes[:MaxInputChars]), true
}
