package imagehost

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "example.com/socialhub/internal/init"
)

// Client defines the operations the handlers need from an image host.
type Client interface {
	Upload(ctx context.Context, file string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Cloudinary implements Client against the Cloudinary HTTP API.
type Cloudinary struct {
	BaseURL      string
	CloudName    string
	APIKey       string
	APISecret    string
	UploadPreset string
	HTTPClient   *http.Client
}

// New builds a Cloudinary client from the application config.
func New(cfg *config.Config) *Cloudinary {
	return &Cloudinary{
		BaseURL:      defaultBaseURL,
		CloudName:    cfg.CloudinaryCloudName,
		APIKey:       cfg.CloudinaryAPIKey,
		APISecret:    cfg.CloudinaryAPISecret,
		UploadPreset: cfg.CloudinaryUploadPreset,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload sends the base64-encoded file as an unsigned multipart upload and
// returns the hosted image URL.
func (c *Cloudinary) Upload(ctx context.Context, file string) (string, error) {
	var body strings.Builder
	form := multipart.NewWriter(&body)
	if err := form.WriteField("file", file); err != nil {
		return "", err
	}
	if err := form.WriteField("upload_preset", c.UploadPreset); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.BaseURL, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, string(errText))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	return result.SecureURL, nil
}

// Destroy issues a signed deletion request for the given public id.
func (c *Cloudinary) Destroy(ctx context.Context, publicID string) error {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("api_key", c.APIKey)
	form.Set("timestamp", timestamp)
	form.Set("signature", Signature(publicID, timestamp, c.APISecret))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.BaseURL, c.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("image destroy request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errText, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("image host returned %d: %s", resp.StatusCode, string(errText))
	}
	return nil
}

// Signature is the hex SHA-1 over the signed parameter string followed by the
// API secret, the scheme Cloudinary expects for authenticated requests.
func Signature(publicID, timestamp, apiSecret string) string {
	base := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, apiSecret)
	sum := sha1.Sum([]byte(base))
	return hex.EncodeToString(sum[:])
}

// PublicIDFromURL derives the public id from a hosted image URL: the last
// path segment with its extension removed.
func PublicIDFromURL(imgURL string) string {
	segments := strings.Split(imgURL, "/")
	last := segments[len(segments)-1]
	if dot := strings.LastIndex(last, "."); dot > 0 {
		last = last[:dot]
	}
	return last
}
