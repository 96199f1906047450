package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// APICall records a single Slack API call made to the mock server.
type APICall struct {
	Method string
	Params map[string]string
}

// MockSlackServer wraps an httptest.Server that responds to Slack API methods
// with canned responses and records every call for later assertion.
type MockSlackServer struct {
	Server *httptest.Server

	mu      sync.Mutex
	calls   []APICall
	options MockSlackOptions
}

// MockSlackOptions configures canned responses for the mock server.
type MockSlackOptions struct {
	// chat.postMessage — ts returned on success
	MessageTS string

	// files.getUploadURLExternal — file id returned in the ticket
	UploadFileID string

	// OmitTicketFields drops upload_url and file_id from the ticket response.
	OmitTicketFields bool

	// ErrorResponses maps a method name to an error string; a mapped method
	// responds with {"ok": false, "error": <string>}.
	ErrorResponses map[string]string

	// Custom handler overrides (optional)
	PostMessageHook func(params map[string]string)
}

// NewMockSlackServer creates and starts a mock Slack API server.
func NewMockSlackServer(opts MockSlackOptions) *MockSlackServer {
	m := &MockSlackServer{options: opts}

	mux := http.NewServeMux()
	mux.HandleFunc("/chat.postMessage", m.handleChatPostMessage)
	mux.HandleFunc("/files.getUploadURLExternal", m.handleGetUploadURL)
	mux.HandleFunc("/files.completeUploadExternal", m.handleCompleteUpload)
	mux.HandleFunc("/upload/", m.handleRawUpload)

	m.Server = httptest.NewServer(mux)
	return m
}

// Close shuts down the mock server.
func (m *MockSlackServer) Close() {
	m.Server.Close()
}

// URL returns the base URL, suitable for slackapi.Config.BaseURL.
func (m *MockSlackServer) URL() string {
	return m.Server.URL
}

// Calls returns a copy of all recorded API calls.
func (m *MockSlackServer) Calls() []APICall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]APICall, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns all recorded calls matching the given method name.
func (m *MockSlackServer) CallsFor(method string) []APICall {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []APICall
	for _, c := range m.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears all recorded calls.
func (m *MockSlackServer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockSlackServer) record(method string, params map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, APICall{Method: method, Params: params})
}

func (m *MockSlackServer) parseForm(r *http.Request) map[string]string {
	_ = r.ParseMultipartForm(1 << 20)
	params := make(map[string]string)
	if r.MultipartForm != nil {
		for k, v := range r.MultipartForm.Value {
			if len(v) > 0 {
				params[k] = v[0]
			}
		}
	}
	return params
}

func (m *MockSlackServer) parseJSONBody(r *http.Request) map[string]string {
	var body map[string]interface{}
	_ = json.NewDecoder(r.Body).Decode(&body)
	params := make(map[string]string)
	for k, v := range body {
		params[k] = fmt.Sprint(v)
	}
	return params
}

// errorFor responds with an ok:false body when the method has a configured
// error, and reports whether it did so.
func (m *MockSlackServer) errorFor(w http.ResponseWriter, method string) bool {
	msg, ok := m.options.ErrorResponses[method]
	if !ok {
		return false
	}
	writeJSON(w, map[string]interface{}{
		"ok":    false,
		"error": msg,
	})
	return true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (m *MockSlackServer) handleChatPostMessage(w http.ResponseWriter, r *http.Request) {
	params := m.parseJSONBody(r)
	params["authorization"] = r.Header.Get("Authorization")
	m.record("chat.postMessage", params)

	if m.options.PostMessageHook != nil {
		m.options.PostMessageHook(params)
	}
	if m.errorFor(w, "chat.postMessage") {
		return
	}

	ts := m.options.MessageTS
	if ts == "" {
		ts = "1234567890.000100"
	}
	writeJSON(w, map[string]interface{}{
		"ok":      true,
		"channel": params["channel"],
		"ts":      ts,
	})
}

func (m *MockSlackServer) handleGetUploadURL(w http.ResponseWriter, r *http.Request) {
	params := m.parseForm(r)
	m.record("files.getUploadURLExternal", params)

	if m.errorFor(w, "files.getUploadURLExternal") {
		return
	}
	if m.options.OmitTicketFields {
		writeJSON(w, map[string]interface{}{
			"ok": true,
		})
		return
	}

	fileID := m.options.UploadFileID
	if fileID == "" {
		fileID = "F000000001"
	}
	writeJSON(w, map[string]interface{}{
		"ok":         true,
		"upload_url": m.Server.URL + "/upload/" + fileID,
		"file_id":    fileID,
	})
}

func (m *MockSlackServer) handleRawUpload(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	m.record("upload", map[string]string{
		"path": r.URL.Path,
		"body": string(body),
	})

	fmt.Fprint(w, "OK")
}

func (m *MockSlackServer) handleCompleteUpload(w http.ResponseWriter, r *http.Request) {
	params := m.parseForm(r)
	m.record("files.completeUploadExternal", params)

	if m.errorFor(w, "files.completeUploadExternal") {
		return
	}

	fileID := m.options.UploadFileID
	if fileID == "" {
		fileID = "F000000001"
	}
	writeJSON(w, map[string]interface{}{
		"ok": true,
		"files": []map[string]interface{}{
			{"id": fileID},
		},
	})
}
