package slackapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// captureServer decodes each chat.postMessage body into got and responds ok
// with the given ts.
func captureServer(t *testing.T, got *map[string]interface{}, ts string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "ts": ts})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSendMessageBody(t *testing.T) {
	tests := []struct {
		name   string
		thread Thread
		text   string
		opts   []MessageOption
		want   map[string]interface{}
	}{
		{
			name:   "fresh thread",
			thread: Thread{Channel: "C123"},
			text:   "hi",
			want: map[string]interface{}{
				"channel": "C123",
				"text":    "hi",
			},
		},
		{
			name:   "existing thread adds thread_ts",
			thread: Thread{Channel: "C123", TS: "123.45"},
			text:   "hi",
			want: map[string]interface{}{
				"channel":   "C123",
				"text":      "hi",
				"thread_ts": "123.45",
			},
		},
		{
			name:   "extra fields pass through",
			thread: Thread{Channel: "C123"},
			text:   "hi",
			opts:   []MessageOption{WithField("unfurl_links", false)},
			want: map[string]interface{}{
				"channel":      "C123",
				"text":         "hi",
				"unfurl_links": false,
			},
		},
		{
			name:   "channel and text override same-named options",
			thread: Thread{Channel: "C123"},
			text:   "hi",
			opts: []MessageOption{
				WithField("channel", "C999"),
				WithField("text", "spoofed"),
			},
			want: map[string]interface{}{
				"channel": "C123",
				"text":    "hi",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			srv := captureServer(t, &got, "111.22")

			client := New(Config{Token: "xoxb-test", BaseURL: srv.URL})
			thread := tt.thread
			if _, err := client.SendMessage(&thread, tt.text, tt.opts...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for k, want := range tt.want {
				if got[k] != want {
					t.Errorf("body[%q] = %v, want %v", k, got[k], want)
				}
			}
			for k := range got {
				if _, ok := tt.want[k]; !ok {
					t.Errorf("unexpected body field %q = %v", k, got[k])
				}
			}
		})
	}
}

func TestSendMessageRecordsTSOnce(t *testing.T) {
	var got map[string]interface{}
	srv := captureServer(t, &got, "111.22")
	client := New(Config{Token: "xoxb-test", BaseURL: srv.URL})

	thread := &Thread{Channel: "C123"}
	if _, err := client.SendMessage(thread, "first"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thread.TS != "111.22" {
		t.Fatalf("expected TS recorded from first reply, got %q", thread.TS)
	}

	// every later send keeps the original root timestamp
	if _, err := client.SendMessage(thread, "second"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if thread.TS != "111.22" {
		t.Errorf("TS was overwritten, got %q", thread.TS)
	}
	if got["thread_ts"] != "111.22" {
		t.Errorf("expected second message threaded under 111.22, got %v", got["thread_ts"])
	}
}

func TestSendMessageMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	t.Cleanup(srv.Close)

	client := New(Config{Token: "xoxb-test", BaseURL: srv.URL})
	thread := &Thread{Channel: "C123"}

	_, err := client.SendMessage(thread, "hi")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), string(PhaseSendMessage)) {
		t.Errorf("error %q missing send-message phase annotation", err.Error())
	}
}

func TestSendMessageMissingOKField(t *testing.T) {
	// a response without an ok field is not a failure
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ts": "55.66"}`))
	}))
	t.Cleanup(srv.Close)

	client := New(Config{Token: "xoxb-test", BaseURL: srv.URL})
	thread := &Thread{Channel: "C123"}

	resp, err := client.SendMessage(thread, "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || resp.TS != "55.66" {
		t.Fatalf("expected decoded response, got %+v", resp)
	}
	if thread.TS != "55.66" {
		t.Errorf("expected TS recorded, got %q", thread.TS)
	}
}
