// Package meetingclient talks to the meeting processing service: multipart
// uploads and the meetings collection. It is a separate collaborator from
// the auth service and currently requires no credentials.
package meetingclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meetingmind/meetingmind/internal/config"
	"github.com/meetingmind/meetingmind/internal/model"
)

// unknownErrorDetail is the fallback when an error response carries no
// detail field.
const unknownErrorDetail = "Unknown error"

// Client issues requests against the meetings API base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the given base URL (e.g. http://localhost:8000).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	Filename string `json:"filename"`
	Detail   string `json:"detail"`
}

// Upload sends one file as the multipart field "file" and returns the
// server-echoed filename. A declined upload (non-2xx with a JSON body)
// becomes *model.RemoteRejection carrying the detail field, defaulted here
// at the boundary; anything undecodable or unreachable becomes
// *model.TransportFailure.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", &model.TransportFailure{Err: fmt.Errorf("build multipart: %w", err)}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &model.TransportFailure{Err: fmt.Errorf("read file: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return "", &model.TransportFailure{Err: fmt.Errorf("finish multipart: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return "", &model.TransportFailure{Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	log := config.Logger.WithField("request_id", uuid.NewString())
	log.Debugf("POST %s/upload (%s)", c.baseURL, filename)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debugf("upload failed: %v", err)
		return "", &model.TransportFailure{Err: err}
	}
	defer resp.Body.Close()

	// The page decoded the body before looking at the status, so an error
	// response that is not JSON counts as a transport failure, not a
	// rejection. Keep that ordering.
	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Debugf("upload response decode failed: %v", err)
		return "", &model.TransportFailure{Err: fmt.Errorf("decode response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := out.Detail
		if detail == "" {
			detail = unknownErrorDetail
		}
		log.Debugf("upload rejected: status=%d detail=%q", resp.StatusCode, detail)
		return "", &model.RemoteRejection{Message: detail}
	}
	echoed := out.Filename
	if echoed == "" {
		echoed = filename
	}
	return echoed, nil
}

// Meetings fetches the full collection. The caller replaces whatever it was
// showing; there is no incremental variant.
func (c *Client) Meetings(ctx context.Context) ([]model.Meeting, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/meetings", nil)
	if err != nil {
		return nil, &model.TransportFailure{Err: err}
	}

	log := config.Logger.WithField("request_id", uuid.NewString())
	log.Debugf("GET %s/meetings", c.baseURL)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debugf("meetings fetch failed: %v", err)
		return nil, &model.TransportFailure{Err: err}
	}
	defer resp.Body.Close()

	var list model.MeetingList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		log.Debugf("meetings decode failed: %v", err)
		return nil, &model.TransportFailure{Err: fmt.Errorf("decode response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debugf("meetings rejected: status=%d", resp.StatusCode)
		return nil, &model.RemoteRejection{Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return list.Meetings, nil
}
