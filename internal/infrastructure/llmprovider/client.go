package llmprovider

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	openai "github.com/sashabaranov/go-openai"

	"todo-server/internal/config"
	"todo-server/internal/domain/llm"
	"todo-server/internal/infrastructure/metrics"
	"todo-server/internal/utils/platformerrors"
)

// Client implements the llm.Provider interface against any
// OpenAI-compatible chat completion endpoint.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Resty-backed provider client.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: resty.New().
			SetHeader("Content-Type", "application/json").
			SetTimeout(cfg.LLMTimeout),
		baseURL: normalizeBaseURL(cfg.LLMBaseURL),
		apiKey:  cfg.LLMAPIKey,
	}
}

// CreateChatCompletion posts the request to /chat/completions.
func (c *Client) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	started := time.Now()

	var completion openai.ChatCompletionResponse
	request := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&completion)
	if strings.TrimSpace(c.apiKey) != "" {
		request.SetHeader("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := request.Post(c.endpoint("/chat/completions"))
	duration := time.Since(started).Seconds()
	if err != nil {
		metrics.RecordProviderRequest(req.Model, "error", duration)
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"chat completion request failed",
			err,
			"1c2d3e4f-5a6b-4c7d-8e9f-0a1b2c3d4e5f",
		)
	}
	if resp.IsError() {
		metrics.RecordProviderRequest(req.Model, "error", duration)
		return nil, c.errorFromResponse(ctx, resp)
	}

	metrics.RecordProviderRequest(req.Model, "success", duration)
	metrics.RecordTokenUsage(completion.Model, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	return &completion, nil
}

func (c *Client) endpoint(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return c.baseURL + "/" + path
}

func (c *Client) errorFromResponse(ctx context.Context, resp *resty.Response) error {
	message := "chat completion request failed"
	if body := strings.TrimSpace(resp.String()); body != "" {
		message = message + ": " + body
	}
	return platformerrors.NewError(
		ctx,
		platformerrors.LayerInfrastructure,
		platformerrors.ErrorTypeExternal,
		message,
		nil,
		"2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f6a",
	)
}

func normalizeBaseURL(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}

var _ llm.Provider = (*Client)(nil)
