package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodChinese = "该地区领导人于周二举行会议，讨论经济合作议题。会议就多项贸易协定达成初步共识，预计将对区域发展产生积极影响。"

type recordedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens int `json:"max_tokens"`
}

func chatResponse(text string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": text}},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func newTestClient(t *testing.T, responses []string) (*Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recordedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests = append(requests, req)

		require.Less(t, calls, len(responses), "more requests than prepared responses")
		fmt.Fprint(w, responses[calls])
		calls++
	}))
	t.Cleanup(server.Close)

	client := New("sk-test", "gpt-3.5-turbo", 5*time.Second, 0, nopLogger{})
	client.endpoint = server.URL
	return client, &requests
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

func TestSummarizeHappyPath(t *testing.T) {
	client, requests := newTestClient(t, []string{
		chatResponse("Leaders met to discuss trade. A deal is expected soon."),
		chatResponse(goodChinese),
	})

	summaries, err := client.Summarize(context.Background(), "Article body about a regional trade meeting.")
	require.NoError(t, err)

	assert.Equal(t, "Leaders met to discuss trade. A deal is expected soon.", summaries.English)
	assert.Equal(t, goodChinese, summaries.Chinese)

	require.Len(t, *requests, 2)
	english := (*requests)[0]
	chinese := (*requests)[1]
	assert.Equal(t, 150, english.MaxTokens)
	assert.Equal(t, "system", english.Messages[0].Role)
	assert.Contains(t, english.Messages[1].Content, "Article body about a regional trade meeting.")
	assert.Equal(t, 500, chinese.MaxTokens)
	assert.Contains(t, chinese.Messages[0].Content, "不允许输出任何英文")
}

func TestSummarizeRetriesIncompleteChinese(t *testing.T) {
	client, requests := newTestClient(t, []string{
		chatResponse("An English summary."),
		chatResponse("This is English, not Chinese."),
		chatResponse(goodChinese),
	})

	summaries, err := client.Summarize(context.Background(), "Body.")
	require.NoError(t, err)
	assert.Equal(t, goodChinese, summaries.Chinese)

	require.Len(t, *requests, 3)
	retry := (*requests)[2]
	assert.Contains(t, retry.Messages[0].Content, "纯中文")
}

func TestSummarizeAppendsPeriodAfterRetry(t *testing.T) {
	// Retry output missing the trailing full stop gets one appended.
	client, _ := newTestClient(t, []string{
		chatResponse("An English summary."),
		chatResponse("too short"),
		chatResponse("领导人举行了会议。会议取得了进展"),
	})

	summaries, err := client.Summarize(context.Background(), "Body.")
	require.NoError(t, err)
	assert.Equal(t, "领导人举行了会议。会议取得了进展。", summaries.Chinese)
}

func TestSummarizeFailsWithoutChineseCharacters(t *testing.T) {
	client, _ := newTestClient(t, []string{
		chatResponse("An English summary."),
		chatResponse("not chinese"),
		chatResponse("still not chinese"),
	})

	_, err := client.Summarize(context.Background(), "Body.")
	assert.ErrorContains(t, err, "no chinese characters")
}

func TestSummarizeServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client := New("sk-test", "gpt-3.5-turbo", 5*time.Second, 0, nopLogger{})
	client.endpoint = server.URL

	_, err := client.Summarize(context.Background(), "Body.")
	assert.ErrorContains(t, err, "unexpected status 429")
}

func TestSummarizeEmptyContent(t *testing.T) {
	client := New("sk-test", "gpt-3.5-turbo", 5*time.Second, 0, nopLogger{})
	_, err := client.Summarize(context.Background(), "   ")
	assert.ErrorContains(t, err, "empty")
}

func TestSummarizeStripsHTML(t *testing.T) {
	client, requests := newTestClient(t, []string{
		chatResponse("Summary."),
		chatResponse(goodChinese),
	})

	_, err := client.Summarize(context.Background(), "<p>First paragraph.</p><p>Second paragraph.</p>")
	require.NoError(t, err)

	prompt := (*requests)[0].Messages[1].Content
	assert.NotContains(t, prompt, "<p>")
	assert.Contains(t, prompt, "First paragraph.")
	assert.Contains(t, prompt, "Second paragraph.")
}

func TestIsCompleteChineseSummary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"valid two sentences", goodChinese, true},
		{"single sentence", "这是一条很长很长很长很长很长很长很长的摘要内容。", false},
		{"missing trailing period", "领导人举行会议。会议取得进展", false},
		{"too short", "开会。散会。", false},
		{"under fifty characters despite byte length", "领导人于本周开会讨论了。达成协议。", false},
		{"no chinese", "Hello there. This is English. It is long enough to pass length.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCompleteChineseSummary(tt.text))
		})
	}
}
