package slackapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the production Slack Web API root.
const DefaultBaseURL = "https://slack.com/api"

// Config carries the dependencies for a Client. The zero value of every
// field has a sensible default; in particular an empty Token produces a
// client whose operations are logged no-ops rather than failures.
type Config struct {
	// Token is the bot OAuth token. Optional: when empty, SendMessage and
	// UploadFile log a warning and return (nil, nil) without touching the
	// network.
	Token string
	// BaseURL overrides the Slack API root. Intended for testing.
	BaseURL string
	// HTTPClient overrides the transport. Defaults to http.DefaultClient,
	// so timeout and cancellation behavior is whatever the caller injects.
	HTTPClient *http.Client
	// Logger overrides the package-global zerolog logger.
	Logger *zerolog.Logger
}

// Client posts messages and uploads files to the Slack Web API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a Client from the given Config, filling in defaults.
func New(cfg Config) *Client {
	c := &Client{
		token:      cfg.Token,
		baseURL:    cfg.BaseURL,
		httpClient: cfg.HTTPClient,
		logger:     log.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if cfg.Logger != nil {
		c.logger = *cfg.Logger
	}
	return c
}

// NewFromEnv creates a Client whose token is read from the SLACK_TOKEN
// environment variable.
func NewFromEnv() *Client {
	return New(Config{Token: os.Getenv("SLACK_TOKEN")})
}

// postMultipart sends fields as a multipart form to url and decodes the JSON
// response into out. Transport and decode failures come back as plain errors
// for the caller to annotate with a phase.
func (c *Client) postMultipart(url string, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
