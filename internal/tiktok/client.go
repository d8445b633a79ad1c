package tiktok

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"vesper/internal/config"
)

// maxTitleLen is the platform's title limit for direct posts.
const maxTitleLen = 150

// HTTPDoer describes the HTTP client used by the TikTok service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client drives the Content Posting API v2 direct-post flow:
// initialize upload, send the file to the returned upload URL, then
// optionally poll publish status.
type Client struct {
	baseURL       string
	accessToken   string
	privacyLevel  string
	initTimeout   time.Duration
	uploadTimeout time.Duration
	http          HTTPDoer
}

// NewClient builds a client from configuration. The HTTP doer may be nil, in
// which case http.DefaultClient is used.
func NewClient(cfg *config.Config, doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		baseURL:       cfg.TikTok.BaseURL,
		accessToken:   cfg.TikTok.AccessToken,
		privacyLevel:  cfg.TikTok.PrivacyLevel,
		initTimeout:   time.Duration(cfg.TikTok.InitTimeoutSeconds) * time.Second,
		uploadTimeout: time.Duration(cfg.TikTok.UploadTimeoutSeconds) * time.Second,
		http:          doer,
	}
}

// InitResponse is the subset of the init payload the publish flow needs.
type InitResponse struct {
	PublishID string `json:"publish_id"`
	UploadURL string `json:"upload_url"`
}

type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type initRequest struct {
	PostInfo   postInfo   `json:"post_info"`
	SourceInfo sourceInfo `json:"source_info"`
}

type postInfo struct {
	Title          string `json:"title"`
	PrivacyLevel   string `json:"privacy_level"`
	DisableDuet    bool   `json:"disable_duet"`
	DisableComment bool   `json:"disable_comment"`
	DisableStitch  bool   `json:"disable_stitch"`
}

type sourceInfo struct {
	Source          string `json:"source"`
	VideoSize       int64  `json:"video_size"`
	ChunkSize       int64  `json:"chunk_size"`
	TotalChunkCount int    `json:"total_chunk_count"`
}

// Publish runs the full direct-post flow for a composed video and returns the
// platform's publish identifier.
func (c *Client) Publish(ctx context.Context, filePath, caption string) (string, error) {
	initData, err := c.InitDirectPost(ctx, filePath, caption)
	if err != nil {
		return "", err
	}
	if initData.UploadURL == "" {
		return "", errors.New("tiktok did not return an upload url")
	}
	if err := c.Upload(ctx, initData.UploadURL, filePath); err != nil {
		return "", err
	}
	return initData.PublishID, nil
}

// InitDirectPost registers the upload and returns the publish id and upload URL.
func (c *Client) InitDirectPost(ctx context.Context, filePath, caption string) (*InitResponse, error) {
	if c.accessToken == "" {
		return nil, errors.New("tiktok access token is not configured")
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat video file: %w", err)
	}
	size := info.Size()

	body := initRequest{
		PostInfo: postInfo{
			Title:        truncateTitle(caption),
			PrivacyLevel: c.privacyLevel,
		},
		SourceInfo: sourceInfo{
			Source:          "FILE_UPLOAD",
			VideoSize:       size,
			ChunkSize:       size,
			TotalChunkCount: 1,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal init request: %w", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, c.initTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(initCtx, http.MethodPost, c.baseURL+"/post/publish/video/init/", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build init request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("init direct post: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("tiktok init returned %d", resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode init response: %w", err)
	}
	if envelope.Error.Code != "" && envelope.Error.Code != "ok" {
		return nil, fmt.Errorf("tiktok init failed: %s", envelope.Error.Message)
	}

	var initData InitResponse
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &initData); err != nil {
			return nil, fmt.Errorf("decode init data: %w", err)
		}
	}
	return &initData, nil
}

// Upload sends the video bytes to the upload URL returned by init.
func (c *Client) Upload(ctx context.Context, uploadURL, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open video file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat video file: %w", err)
	}
	size := info.Size()

	uploadCtx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(uploadCtx, http.MethodPut, uploadURL, file)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Range", fmt.Sprintf("bytes 0-%d/%d", size-1, size))
	req.Header.Set("Content-Type", "video/mp4")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("tiktok upload returned %d", resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// StatusResponse reports the platform-side state of a publish request.
type StatusResponse struct {
	Status     string `json:"status"`
	FailReason string `json:"fail_reason"`
}

// CheckPublishStatus polls the platform for the state of a publish id.
func (c *Client) CheckPublishStatus(ctx context.Context, publishID string) (*StatusResponse, error) {
	if c.accessToken == "" {
		return nil, errors.New("tiktok access token is not configured")
	}

	payload, err := json.Marshal(map[string]string{"publish_id": publishID})
	if err != nil {
		return nil, fmt.Errorf("marshal status request: %w", err)
	}

	statusCtx, cancel := context.WithTimeout(ctx, c.initTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(statusCtx, http.MethodPost, c.baseURL+"/post/publish/status/fetch/", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch publish status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("tiktok status returned %d", resp.StatusCode)
	}

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	if envelope.Error.Code != "" && envelope.Error.Code != "ok" {
		return nil, fmt.Errorf("tiktok status failed: %s", envelope.Error.Message)
	}

	var status StatusResponse
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &status); err != nil {
			return nil, fmt.Errorf("decode status data: %w", err)
		}
	}
	return &status, nil
}

func truncateTitle(caption string) string {
	runes := []rune(caption)
	if len(runes) <= maxTitleLen {
		return caption
	}
	return string(runes[:maxTitleLen])
}
