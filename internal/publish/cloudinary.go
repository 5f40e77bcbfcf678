package publish

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// uploadTimeout bounds the whole multipart POST.
const uploadTimeout = 120 * time.Second

// defaultBaseURL is Cloudinary's upload API root.
const defaultBaseURL = "https://api.cloudinary.com/v1_1"

// Cloudinary publishes files through Cloudinary's unsigned upload endpoint.
type Cloudinary struct {
	cloudName    string
	uploadPreset string
	folder       string
	client       *resty.Client
}

// CloudinaryOption is a function that configures a Cloudinary publisher.
type CloudinaryOption func(*Cloudinary)

// WithBaseURL sets a custom upload API root. Used by tests to point the
// publisher at a local server.
func WithBaseURL(url string) CloudinaryOption {
	return func(c *Cloudinary) {
		c.client.SetBaseURL(url)
	}
}

// NewCloudinary creates a Cloudinary publisher. Missing cloud name or
// upload preset is not an error here: the server is allowed to boot
// unconfigured, and Publish fails fast instead.
func NewCloudinary(cloudName, uploadPreset, folder string, opts ...CloudinaryOption) *Cloudinary {
	c := &Cloudinary{
		cloudName:    cloudName,
		uploadPreset: uploadPreset,
		folder:       folder,
		client:       resty.New().SetBaseURL(defaultBaseURL).SetTimeout(uploadTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// uploadResponse is the subset of Cloudinary's upload response we use.
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Publish uploads the file as an unsigned video upload and returns its
// secure URL. Each upload gets a fresh opaque public id under the
// configured folder so repeated uploads never collide.
func (c *Cloudinary) Publish(ctx context.Context, filePath string) (string, error) {
	if c.cloudName == "" || c.uploadPreset == "" {
		return "", ErrNotConfigured
	}

	u := uuid.New()
	publicID := fmt.Sprintf("%s/%s", c.folder, hex.EncodeToString(u[:]))

	var result uploadResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetFile("file", filePath).
		SetFormData(map[string]string{
			"upload_preset": c.uploadPreset,
			"public_id":     publicID,
			"resource_type": "video",
		}).
		SetResult(&result).
		Post(fmt.Sprintf("/%s/video/upload", c.cloudName))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUploadFailed, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode(), resp.String())
	}

	if result.SecureURL == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingSecureURL, resp.String())
	}

	return result.SecureURL, nil
}
