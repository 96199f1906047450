package slackapi

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// UploadTicket is the decoded files.getUploadURLExternal response. It is
// consumed within the same UploadFile call and never retained.
type UploadTicket struct {
	OK        *bool  `json:"ok,omitempty"`
	Error     string `json:"error,omitempty"`
	UploadURL string `json:"upload_url,omitempty"`
	FileID    string `json:"file_id,omitempty"`
}

// UploadedFile is one entry in a completed upload's file list.
type UploadedFile struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

// UploadResponse is the decoded files.completeUploadExternal response.
type UploadResponse struct {
	OK    *bool          `json:"ok,omitempty"`
	Error string         `json:"error,omitempty"`
	Files []UploadedFile `json:"files,omitempty"`
}

// UploadFile pushes the file at localPath to Slack via the external upload
// flow: request an upload URL, POST the raw bytes to it, then finalize
// against the channel named by extra["channels"]. Extra fields are forwarded
// on the upload-URL request; token, filename, and length always win over
// same-named extras.
//
// A missing token is a logged no-op returning (nil, nil) with zero network
// calls.
func (c *Client) UploadFile(localPath string, extra map[string]string) (*UploadResponse, error) {
	if c.token == "" {
		c.logger.Warn().Msg("no Slack token configured, skipping file upload")
		return nil, nil
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return nil, &APIError{Phase: PhaseUploadFile, Err: err}
	}

	fields := map[string]string{}
	for k, v := range extra {
		fields[k] = v
	}
	fields["token"] = c.token
	fields["filename"] = filepath.Base(localPath)
	fields["length"] = strconv.FormatInt(info.Size(), 10)

	var ticket UploadTicket
	if err := c.postMultipart(c.baseURL+"/files.getUploadURLExternal", fields, &ticket); err != nil {
		return nil, &APIError{Phase: PhaseUploadFile, Err: err}
	}
	if ticket.OK != nil && !*ticket.OK {
		return nil, apiReported(ticket.Error)
	}
	if ticket.UploadURL == "" && ticket.FileID == "" {
		return nil, &APIError{Phase: PhaseParseResponse, Message: "response is missing upload_url and file_id"}
	}

	if err := c.postRawFile(ticket.UploadURL, localPath, info.Size()); err != nil {
		return nil, &APIError{Phase: PhaseUploadFile, Err: err}
	}

	filesJSON, err := json.Marshal([]map[string]string{{"id": ticket.FileID}})
	if err != nil {
		return nil, &APIError{Phase: PhaseUploadFile, Err: err}
	}
	complete := map[string]string{
		"token": c.token,
		"files": string(filesJSON),
	}
	if channels, ok := extra["channels"]; ok {
		complete["channel_id"] = channels
	}

	var out UploadResponse
	if err := c.postMultipart(c.baseURL+"/files.completeUploadExternal", complete, &out); err != nil {
		return nil, &APIError{Phase: PhaseUploadFile, Err: err}
	}
	if out.OK != nil && !*out.OK {
		return nil, apiReported(out.Error)
	}
	return &out, nil
}

// postRawFile POSTs the file bytes to the upload URL. No auth headers; the
// response body is drained but not validated.
func (c *Client) postRawFile(url, localPath string, length int64) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	req, err := http.NewRequest(http.MethodPost, url, f)
	if err != nil {
		return err
	}
	req.ContentLength = length

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, err = io.Copy(io.Discard, resp.Body)
	return err
}
