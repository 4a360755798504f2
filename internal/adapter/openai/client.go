// Package openai implements the summarizer port over the OpenAI chat
// completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"

	"sea-news-bot/internal/domain/model"
	"sea-news-bot/internal/domain/ports"
)

const defaultEndpoint = "https://api.openai.com/v1/chat/completions"

const (
	englishSystemPrompt = "You are a helpful assistant that creates concise news summaries."

	chineseSystemPrompt = `你是一个专业的中文新闻摘要助手。你必须用中文回答，不允许输出任何英文。

要求：
1. 必须用中文生成2-3个完整的句子
2. 每个句子必须是正确的中文语法，包含完整的主谓宾结构
3. 每个句子必须以中文句号"。"结尾
4. 使用正式的中文新闻报道语言
5. 确保摘要完整表达文章的主要内容
6. 严禁输出任何英文内容`

	chineseRetrySystemPrompt = `你必须用纯中文回答！不允许输出任何英文！
1. 只能输出中文
2. 必须生成至少两个完整的中文句子
3. 每个中文句子都必须以"。"结尾
4. 使用正式的中文新闻语言
5. 禁止输出任何英文内容`
)

// Client implements ports.Summarizer using the OpenAI chat completions API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
	pause      time.Duration
	logger     ports.Logger
}

var _ ports.Summarizer = (*Client)(nil)

// New creates an OpenAI summarizer. pause is the delay between the English
// and Chinese completion calls, rate limiting the API.
func New(apiKey, model string, timeout, pause time.Duration, logger ports.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		model:      model,
		endpoint:   defaultEndpoint,
		pause:      pause,
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	PresencePenalty  float64       `json:"presence_penalty,omitempty"`
	FrequencyPenalty float64       `json:"frequency_penalty,omitempty"`
}

// Summarize produces an English and a Chinese summary of the content. The
// Chinese summary is validated for completeness and retried once with a
// stricter prompt before failing.
func (c *Client) Summarize(ctx context.Context, content string) (model.Summaries, error) {
	if c.apiKey == "" || c.model == "" {
		return model.Summaries{}, fmt.Errorf("openai client not configured")
	}

	content = strings.TrimSpace(htmlToText(content))
	if content == "" {
		return model.Summaries{}, fmt.Errorf("article content is empty")
	}

	english, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: englishSystemPrompt},
			{Role: "user", Content: "Please provide a concise summary (around 2-3 sentences) of the following news article:\n\n" + content},
		},
		MaxTokens:   150,
		Temperature: 0.7,
	})
	if err != nil {
		return model.Summaries{}, fmt.Errorf("english summary: %w", err)
	}

	c.sleep(ctx)

	chinese, err := c.complete(ctx, chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: chineseSystemPrompt},
			{Role: "user", Content: buildChineseUserPrompt(content)},
		},
		MaxTokens:        500,
		Temperature:      0.7,
		PresencePenalty:  0.1,
		FrequencyPenalty: 0.1,
	})
	if err != nil {
		return model.Summaries{}, fmt.Errorf("chinese summary: %w", err)
	}

	if !isCompleteChineseSummary(chinese) {
		c.logger.Warn(ctx, "chinese summary incomplete or not chinese, retrying")
		c.sleep(ctx)

		chinese, err = c.complete(ctx, chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: chineseRetrySystemPrompt},
				{Role: "user", Content: "请用纯中文总结这篇新闻（至少两句话，必须是中文，必须以中文句号结尾）：\n\n" + content},
			},
			MaxTokens:   500,
			Temperature: 0.7,
		})
		if err != nil {
			return model.Summaries{}, fmt.Errorf("chinese summary retry: %w", err)
		}
		if !strings.HasSuffix(chinese, "。") {
			chinese += "。"
		}
	}

	if !containsChinese(chinese) {
		return model.Summaries{}, fmt.Errorf("chinese summary contains no chinese characters")
	}

	c.logger.Info(ctx, "summaries generated",
		"english_len", len(english), "chinese_len", len(chinese))

	return model.Summaries{English: english, Chinese: chinese}, nil
}

func buildChineseUserPrompt(content string) string {
	return `请严格按照以下要求生成中文新闻摘要：

1. 第一句：用中文描述主要事件或核心信息，以句号结尾。
2. 第二句：用中文补充重要细节或影响，以句号结尾。
3. 如果需要第三句：用中文补充额外重要信息，以句号结尾。
4. 只输出中文，不要输出任何英文。

新闻内容：
` + content
}

func (c *Client) complete(ctx context.Context, request chatRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("empty choices in response")
	}

	text := strings.TrimSpace(payload.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty completion text")
	}
	return text, nil
}

func (c *Client) sleep(ctx context.Context) {
	if c.pause <= 0 {
		return
	}
	select {
	case <-time.After(c.pause):
	case <-ctx.Done():
	}
}

// isCompleteChineseSummary checks that the text has at least two sentences
// terminated by 。, ends with 。, is at least 50 characters long and actually
// contains Chinese characters.
func isCompleteChineseSummary(text string) bool {
	sentences := 0
	for _, s := range strings.Split(text, "。") {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	if sentences < 2 {
		return false
	}
	if !strings.HasSuffix(text, "。") {
		return false
	}
	if utf8.RuneCountInString(text) < 50 {
		return false
	}
	return containsChinese(text)
}

func containsChinese(text string) bool {
	for _, r := range text {
		if r >= 0x4e00 && r <= 0x9fff {
			return true
		}
	}
	return false
}

// htmlToText strips markup from crawled content before prompting; plain text
// passes through unchanged.
func htmlToText(input string) string {
	if input == "" || !strings.Contains(input, "<") {
		return input
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input
	}

	var builder strings.Builder
	extractText(node, &builder)
	return builder.String()
}

func extractText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
	case html.ElementNode:
		if node.Data == "br" || node.Data == "p" || node.Data == "li" {
			builder.WriteRune('\n')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}

	if node.Type == html.ElementNode && (node.Data == "p" || node.Data == "li") {
		builder.WriteRune('\n')
	}
}
