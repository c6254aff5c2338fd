package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

var (
	ErrUnavailable = errors.New("llm: service unavailable")
	ErrTimeout     = errors.New("llm: response timed out")
)

const (
	DefaultBaseURL   = "http://localhost:11434"
	DefaultModel     = "qwen2.5:7b"
	generationWait   = 30 * time.Second
	availabilityWait = 5 * time.Second
)

// systemPrompt instructs the backing model to answer in Turkish and to
// self-report structured actions with the marker phrases the router scans
// for.
const systemPrompt = `Sen Kahya adında yardımcı bir AI asistanısın.
Kullanıcıya Türkçe olarak yanıt ver.
Kısa, öz ve yardımcı ol.

ÖNEMLİ: Eğer kullanıcı hatırlatıcı, not veya yapılacak isterse,
işlemi gerçekleştirdiğini kısa bir onay mesajıyla belirt:
"hatırlatıcı eklendi", "not kaydedildi" veya "todo eklendi".
Listeleme isterse "hatırlatıcılar", "notlar" veya "yapılacaklar"
başlığıyla yanıt ver. Bunlardan biri değilse normal sohbet yanıtı ver.`

// fallbackReplies are used when the local service is down so the chat
// surface always answers.
var fallbackReplies = []string{
	"Anlıyorum, size nasıl yardımcı olabilirim?",
	"Bu konuda daha fazla bilgi verebilir misiniz?",
	"İlginç bir soru. Bunu araştırmaya değer.",
	"Bu konuda size yardımcı olmaya çalışayım.",
	"Anladım, devam edin lütfen.",
	"Bu konuda ne düşünüyorsunuz?",
	"Size nasıl yardımcı olabilirim?",
	"Anlıyorum, başka bir şey sormak ister misiniz?",
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Client talks to a local Ollama-compatible generation endpoint. It is safe
// for concurrent use; the router dispatches every command on its own
// goroutine.
type Client struct {
	baseURL  string
	model    string
	http     *http.Client
	fallback atomic.Int64
}

func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		http:    &http.Client{},
	}
}

// IsAvailable probes the tags endpoint with a short timeout.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, availabilityWait)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the model names the local service reports.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, availabilityWait)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// GetResponse sends the message wrapped in the assistant system prompt and
// returns the model's reply. When the service is down it falls back to a
// canned conversational reply instead of failing.
func (c *Client) GetResponse(ctx context.Context, message string) (string, error) {
	if !c.IsAvailable(ctx) {
		return c.fallbackReply(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, generationWait)
	defer cancel()

	payload := generateRequest{
		Model:  c.model,
		Prompt: fmt.Sprintf("%s\n\nKullanıcı: %s\nKahya:", systemPrompt, message),
		Stream: false,
		Options: generateOptions{
			NumPredict:  200,
			Temperature: 0.7,
			TopP:        0.9,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", ErrTimeout, generationWait)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("llm: api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	reply := strings.TrimSpace(out.Response)
	if reply == "" {
		return "", errors.New("llm: empty response")
	}
	return reply, nil
}

// fallbackReply cycles deterministically through the canned replies.
func (c *Client) fallbackReply() string {
	n := c.fallback.Add(1) - 1
	return fallbackReplies[int(n%int64(len(fallbackReplies)))]
}
