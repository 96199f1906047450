package slackapi

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// MessageOption adds an extra field to the chat.postMessage request body.
// The channel, text, and thread_ts keys are owned by SendMessage and always
// override any same-named option.
type MessageOption func(body map[string]interface{})

// WithField sets an arbitrary body field, e.g. "unfurl_links" or "icon_emoji".
func WithField(key string, value interface{}) MessageOption {
	return func(body map[string]interface{}) {
		body[key] = value
	}
}

// MessageResponse is the decoded chat.postMessage response. OK is a pointer
// so a response that omits the field entirely is distinguishable from an
// explicit false.
type MessageResponse struct {
	OK      *bool  `json:"ok,omitempty"`
	Error   string `json:"error,omitempty"`
	Channel string `json:"channel,omitempty"`
	TS      string `json:"ts,omitempty"`
}

// SendMessage posts text to the thread's channel. When the thread already has
// a timestamp the message attaches as a reply; otherwise the timestamp of the
// first successful post is recorded on the thread.
//
// A missing token or a thread without a channel is a logged no-op returning
// (nil, nil) — the token check runs first, and neither case touches the
// network.
func (c *Client) SendMessage(thread *Thread, text string, opts ...MessageOption) (*MessageResponse, error) {
	if c.token == "" {
		c.logger.Warn().Msg("no Slack token configured, skipping message send")
		return nil, nil
	}
	if thread.Channel == "" {
		c.logger.Warn().Msg("thread has no channel, skipping message send")
		return nil, nil
	}

	body := map[string]interface{}{}
	for _, opt := range opts {
		opt(body)
	}
	body["channel"] = thread.Channel
	body["text"] = text
	if thread.TS != "" {
		body["thread_ts"] = thread.TS
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &APIError{Phase: PhaseSendMessage, Err: err}
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/chat.postMessage", bytes.NewReader(payload))
	if err != nil {
		return nil, &APIError{Phase: PhaseSendMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Phase: PhaseSendMessage, Err: err}
	}
	if resp == nil {
		return nil, nil
	}
	defer resp.Body.Close()

	var out MessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &APIError{Phase: PhaseSendMessage, Err: err}
	}
	if out.OK != nil && !*out.OK {
		return nil, apiReported(out.Error)
	}

	if thread.TS == "" && out.TS != "" {
		thread.TS = out.TS
	}
	return &out, nil
}
