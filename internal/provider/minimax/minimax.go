package minimax

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ai-gateway/chat-relay/internal/config"
	"github.com/ai-gateway/chat-relay/internal/logging"
	"github.com/ai-gateway/chat-relay/internal/metrics"
	"github.com/ai-gateway/chat-relay/internal/observability"
	"github.com/ai-gateway/chat-relay/internal/provider"
)

// Name identifies this provider in the selector, logs and metrics.
const Name = "MINIMAX"

// Client calls the MiniMax chat completions API.
type Client struct {
	cfg        config.MiniMax
	HTTPClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Collector
}

func New(cfg config.MiniMax, logger *slog.Logger, m *metrics.Collector) *Client {
	return &Client{cfg: cfg, HTTPClient: http.DefaultClient, logger: logger, metrics: m}
}

type chatRequest struct {
	Model       string                `json:"model"`
	Messages    provider.Conversation `json:"messages"`
	Temperature float64               `json:"temperature"`
	TopP        float64               `json:"top_p"`
}

// chatResponse keeps reply and usage raw so an unexpected type in either
// never fails the decode; see replyText and totalTokens.
type chatResponse struct {
	Reply   json.RawMessage `json:"reply"`
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	BaseResp *struct {
		StatusCode int    `json:"status_code"`
		StatusMsg  string `json:"status_msg"`
	} `json:"base_resp"`
	Usage json.RawMessage `json:"usage"`
}

// Reply sends the conversation upstream once and returns the assistant text.
// Every failure is an *provider.APIError and is logged before it is returned.
func (c *Client) Reply(ctx context.Context, messages provider.Conversation) (reply string, err error) {
	ctx, span := observability.Tracer().Start(ctx, "minimax.reply")
	span.SetAttributes(
		attribute.String("llm.model", c.cfg.Model),
		attribute.Int("llm.messages", len(messages)),
	)
	start := time.Now()
	defer func() {
		c.metrics.ObserveProvider(Name, time.Since(start), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logging.FromContext(ctx, c.logger).Error("minimax request failed", "error", err)
		}
		span.End()
	}()

	if c.cfg.APIKey == "" {
		return "", c.fail(config.APIKeyEnv+" environment variable is not set", 0, nil)
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		TopP:        c.cfg.TopP,
	})
	if err != nil {
		return "", c.fail("marshal request", 0, err)
	}

	data, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", c.fail("unmarshal response", 0, err)
	}
	c.metrics.AddTokens(Name, totalTokens(resp.Usage))

	return c.extract(&resp)
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, c.fail("new request", 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, c.fail("request failed", 0, err)
	}
	data, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail("API request failed: "+http.StatusText(resp.StatusCode), resp.StatusCode, nil)
	}
	if readErr != nil {
		return nil, c.fail("read response body", 0, readErr)
	}
	if closeErr != nil {
		return nil, c.fail("close response body", 0, closeErr)
	}
	return data, nil
}

// extract applies the reply precedence: an upstream error envelope first,
// then a top-level reply, then the first choice.
func (c *Client) extract(resp *chatResponse) (string, error) {
	if b := resp.BaseResp; b != nil && b.StatusCode != 0 {
		return "", c.fail(fmt.Sprintf("API error: %s (code: %d)", b.StatusMsg, b.StatusCode), b.StatusCode, nil)
	}
	if r := replyText(resp.Reply); r != "" {
		return r, nil
	}
	if len(resp.Choices) > 0 && resp.Choices[0].Message != nil {
		return resp.Choices[0].Message.Content, nil
	}
	return "", c.fail("invalid API response structure: no reply found", 0, nil)
}

func (c *Client) fail(msg string, code int, cause error) *provider.APIError {
	return &provider.APIError{Provider: Name, Message: msg, Code: code, Cause: cause}
}

// replyText returns reply when it is a non-empty string. Other types count
// as absent and let extraction fall through to choices.
func replyText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// totalTokens reads usage.total_tokens, accepting numbers and numeric
// strings. Anything else yields zero.
func totalTokens(raw json.RawMessage) int {
	var usage struct {
		TotalTokens json.Number `json:"total_tokens"`
	}
	if err := json.Unmarshal(raw, &usage); err != nil {
		return 0
	}
	if n, err := usage.TotalTokens.Int64(); err == nil {
		return int(n)
	}
	if f, err := usage.TotalTokens.Float64(); err == nil {
		return int(f)
	}
	return 0
}
