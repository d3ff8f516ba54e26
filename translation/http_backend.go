package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPBackend talks to an external inference endpoint hosting the NLLB model.
// The endpoint accepts a JSON body and answers with the translated text.
type HTTPBackend struct {
	url    string
	client *http.Client
}

func NewHTTPBackend(url string) *HTTPBackend {
	// No client timeout here: the Service enforces the bound through the
	// request context, which also aborts the in-flight request body read.
	return &HTTPBackend{url: url, client: &http.Client{}}
}

type translateRequest struct {
	Text       string `json:"text"`
	SourceLang string `json:"src_lang"`
	TargetLang string `json:"tgt_lang"`
}

type translateResponse struct {
	TranslationText string `json:"translation_text"`
	Error           string `json:"error,omitempty"`
}

func (b *HTTPBackend) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Text:       text,
		SourceLang: sourceCode,
		TargetLang: targetCode,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translator endpoint returned %d", resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("translator endpoint: %s", out.Error)
	}
	return out.TranslationText, nil
}
