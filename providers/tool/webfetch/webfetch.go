// Package webfetch provides the fetch_url tool: an HTTP GET whose HTML
// response is converted to Markdown before being handed to the model.
package webfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/parley-ai/parley/providers/tool"
)

const (
	// DefaultTimeout bounds one fetch.
	DefaultTimeout = 30 * time.Second
	// MaxBodySize caps the response body (2MB); larger pages are rejected.
	MaxBodySize = 2 * 1024 * 1024

	userAgent = "parley-fetch-tool/1.0"
)

// Input names the URL to fetch.
type Input struct {
	URL string `json:"url" jsonschema:"description=URL to fetch with a GET request,required"`
}

// Output carries the final URL (after redirects) and the page as Markdown.
type Output struct {
	URL      string `json:"url"`
	Markdown string `json:"markdown"`
}

// NewFetchURLTool returns the fetch_url tool.
func NewFetchURLTool() *tool.Tool[Input, Output] {
	return tool.NewTool("fetch_url", "Perform a GET request to a URL and return the page as Markdown", Fetch)
}

// Fetch retrieves the page at input.URL and converts HTML bodies to
// Markdown. Partial URLs are normalised by prepending https://. Non-HTML
// bodies are returned as-is.
func Fetch(ctx context.Context, input Input) (Output, error) {
	target := strings.TrimSpace(input.URL)
	if target == "" {
		return Output{}, fmt.Errorf("url cannot be empty")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Output{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return Output{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Output{}, fmt.Errorf("fetching %s: status %d", target, res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxBodySize+1))
	if err != nil {
		return Output{}, err
	}
	if len(body) > MaxBodySize {
		return Output{}, fmt.Errorf("fetching %s: body exceeds %d bytes", target, MaxBodySize)
	}

	finalURL := res.Request.URL.String()

	if strings.Contains(res.Header.Get("Content-Type"), "text/html") {
		markdown, err := htmltomarkdown.ConvertString(string(body))
		if err != nil {
			return Output{}, fmt.Errorf("converting %s to markdown: %w", finalURL, err)
		}
		return Output{URL: finalURL, Markdown: markdown}, nil
	}

	return Output{URL: finalURL, Markdown: string(body)}, nil
}
