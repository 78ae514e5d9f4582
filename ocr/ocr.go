// Package ocr recognizes text in local image files through the Youdao OCR API.
package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"unicode"

	"ocr-translate/apperr"
	"ocr-translate/youdao"
)

const (
	// MaxImageSize is the largest image the OCR endpoint accepts.
	MaxImageSize = 2 * 1024 * 1024

	op = "recognize"
)

// Client recognizes text through the OCR endpoint.
type Client struct {
	api      *youdao.Client
	endpoint string
}

// New returns a Client posting to endpoint, or to youdao.DefaultOCRURL when empty.
func New(api *youdao.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = youdao.DefaultOCRURL
	}
	return &Client{api: api, endpoint: endpoint}
}

type line struct {
	Text string `json:"text"`
}

type region struct {
	Lines []line `json:"lines"`
}

type response struct {
	Result struct {
		Regions []region `json:"regions"`
	} `json:"Result"`
}

// Recognize checks the file size, reads the image at imagePath and returns its text.
// The size limit is enforced before anything is read or sent.
func (c *Client) Recognize(ctx context.Context, imagePath string) (string, error) {
	info, err := os.Stat(imagePath)
	if err != nil {
		return "", apperr.FileIO(op, err)
	}
	if info.Size() > MaxImageSize {
		return "", apperr.SizeLimit(op, info.Size(), MaxImageSize)
	}

	imageData, err := readImage(imagePath)
	if err != nil {
		return "", apperr.FileIO(op, err)
	}
	log.Printf("OCR: read %s (%d bytes)", imagePath, len(imageData))

	return c.RecognizeImage(ctx, imageData)
}

// RecognizeImage sends already loaded image bytes to the OCR endpoint.
func (c *Client) RecognizeImage(ctx context.Context, imageData []byte) (string, error) {
	if len(imageData) > MaxImageSize {
		return "", apperr.SizeLimit(op, int64(len(imageData)), MaxImageSize)
	}

	img := base64.StdEncoding.EncodeToString(imageData)
	fields := url.Values{
		"detectType": {"10012"},
		"imageType":  {"1"},
		"langType":   {"auto"},
		"img":        {img},
		"docType":    {"json"},
	}

	var resp response
	if err := c.api.PostForm(ctx, op, c.endpoint, fields, img, &resp); err != nil {
		return "", err
	}

	text := extractText(resp)
	log.Printf("OCR: %d regions, extracted %d characters", len(resp.Result.Regions), len(text))
	return text, nil
}

func readImage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// extractText joins every line of every region in document order.
func extractText(resp response) string {
	var b strings.Builder
	for _, r := range resp.Result.Regions {
		for _, l := range r.Lines {
			b.WriteString(l.Text)
			b.WriteByte('\n')
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}
