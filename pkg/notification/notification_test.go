package notification

import (
	"encoding/json"
	"io"
	gohttp "net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/pkg/http"
)

type captureTransport struct {
	req  *gohttp.Request
	body []byte
	code int
}

func (c *captureTransport) RoundTrip(req *gohttp.Request) (*gohttp.Response, error) {
	c.req = req
	if req.Body != nil {
		c.body, _ = io.ReadAll(req.Body)
	}
	code := c.code
	if code == 0 {
		code = 200
	}
	return &gohttp.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader("ok")),
		Header:     gohttp.Header{},
	}, nil
}

type stubAlert struct {
	channels []string
}

func (s *stubAlert) Via() []string { return s.channels }
func (s *stubAlert) ToSlack() SlackData {
	return SlackData{Text: "order order-1 placed"}
}

func TestSlackChannelPostsWebhookPayload(t *testing.T) {
	capture := &captureTransport{}
	http.DefaultClient.Transport = capture
	defer http.ResetTransport()

	SetSlackWebhook("https://hooks.slack.example/T00/B00")
	defer SetSlackWebhook("")

	errs := Send("ops@vastra.shop", &stubAlert{channels: []string{"slack"}})
	require.Empty(t, errs)

	require.NotNil(t, capture.req)
	assert.Equal(t, "https://hooks.slack.example/T00/B00", capture.req.URL.String())

	var payload map[string]any
	require.NoError(t, json.Unmarshal(capture.body, &payload))
	assert.Equal(t, "order order-1 placed", payload["text"])
}

func TestSlackChannelWithoutWebhookFails(t *testing.T) {
	SetSlackWebhook("")

	errs := Send("ops@vastra.shop", &stubAlert{channels: []string{"slack"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "webhook URL not configured")
}

func TestUnknownChannelIsReported(t *testing.T) {
	errs := Send("ops@vastra.shop", &stubAlert{channels: []string{"pigeon"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `unknown channel "pigeon"`)
}

func TestChannelWithoutImplementationIsReported(t *testing.T) {
	// stubAlert has no ToMail, so the mail channel must fail cleanly.
	errs := Send("ops@vastra.shop", &stubAlert{channels: []string{"mail"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "does not implement Mailable")
}
