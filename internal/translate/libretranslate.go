// Package translate is a client for the LibreTranslate HTTP API.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseUrl = "https://libretranslate.de"

var ErrMissingTranslation = errors.New("response without translatedText")

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	ApiKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type LibreTranslateClient struct {
	baseUrl    string
	apiKey     string
	httpClient *http.Client
}

func NewLibreTranslateClient(baseUrl, apiKey string, timeout time.Duration) *LibreTranslateClient {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &LibreTranslateClient{
		baseUrl:    strings.TrimSuffix(baseUrl, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *LibreTranslateClient) Translate(ctx context.Context, text, source, target string) (string, error) {
	payload, err := json.Marshal(translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		ApiKey: c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseUrl+"/translate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("HTTP %d - %s - %s", resp.StatusCode, http.StatusText(resp.StatusCode), string(body))
	}

	var result translateResponse

	err = json.NewDecoder(resp.Body).Decode(&result)
	if err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.TranslatedText == "" {
		return "", ErrMissingTranslation
	}

	return result.TranslatedText, nil
}
