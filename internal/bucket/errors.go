package bucket

import "errors"

var (
	// ErrBucketNotFound indicates the requested bucket kind is not configured.
	ErrBucketNotFound = errors.New("bucket not found")
	// ErrProvisionFailed is returned when one or more buckets could not be ensured.
	ErrProvisionFailed = errors.New("bucket provisioning failed")
)
