// Package publish uploads produced videos to the hosting provider and
// returns their public URLs. The default backend is Cloudinary's unsigned
// upload API; an S3 backend is available for deployments that host their
// own media.
package publish

import "errors"

// Static errors for publish operations.
var (
	// ErrNotConfigured is returned when the deployment-level upload
	// identifiers are missing. It is checked before any network I/O.
	ErrNotConfigured = errors.New("publish: missing CLOUDINARY_CLOUD_NAME or CLOUDINARY_UPLOAD_PRESET")
	// ErrUploadFailed is returned when the hosting endpoint answers with a
	// non-success HTTP status.
	ErrUploadFailed = errors.New("publish: upload request failed")
	// ErrMissingSecureURL is returned when the upload succeeded server-side
	// but the response lacks the secure_url field, so no usable result can
	// be reported.
	ErrMissingSecureURL = errors.New("publish: response missing secure_url")
)
