package bucket

import (
	"slices"
	"strconv"
	"strings"
)

// Kind names a logical namespace in the object store.
type Kind string

const (
	KindResume Kind = "resume"
	KindImage  Kind = "image"
)

const (
	// ResumeMaxBytes caps resume uploads at 5 MiB.
	ResumeMaxBytes int64 = 5 * 1024 * 1024
	// ImageMaxBytes caps image uploads at 10 MiB.
	ImageMaxBytes int64 = 10 * 1024 * 1024
)

// Policy describes a bucket together with the admission rules for its objects.
type Policy struct {
	Kind             Kind     `json:"kind"`
	Name             string   `json:"bucket"`
	Public           bool     `json:"public"`
	AllowedMIMETypes []string `json:"allowedMimeTypes"`
	MaxSizeBytes     int64    `json:"maxSizeBytes"`

	// Messages returned to clients when an upload violates the policy.
	TypeMessage string `json:"-"`
	SizeMessage string `json:"-"`
}

// ResumePolicy returns the policy for the resume bucket with the given physical name.
func ResumePolicy(name string) Policy {
	return Policy{
		Kind: KindResume,
		Name: name,
		AllowedMIMETypes: []string{
			"application/pdf",
			"application/msword",
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		MaxSizeBytes: ResumeMaxBytes,
		TypeMessage:  "Invalid file type. Please upload PDF or Word document.",
		SizeMessage:  "File size exceeds 5MB limit",
	}
}

// ImagePolicy returns the policy for the image bucket with the given physical name.
func ImagePolicy(name string) Policy {
	return Policy{
		Kind:             KindImage,
		Name:             name,
		AllowedMIMETypes: []string{"image/jpeg", "image/png", "image/webp", "image/gif"},
		MaxSizeBytes:     ImageMaxBytes,
		TypeMessage:      "Invalid file type. Please upload JPEG, PNG, WebP, or GIF images.",
		SizeMessage:      "File size exceeds 10MB limit",
	}
}

// AllowsType reports whether contentType is on the allowlist. Matching is
// exact, as declared by the client.
func (p Policy) AllowsType(contentType string) bool {
	return slices.Contains(p.AllowedMIMETypes, contentType)
}

// AllowsSize reports whether size is within the cap. A file exactly at the
// cap is accepted.
func (p Policy) AllowsSize(size int64) bool {
	return size <= p.MaxSizeBytes
}

// Tags renders the policy as object-store bucket tags.
func (p Policy) Tags() map[string]string {
	return map[string]string{
		"folio-kind":          string(p.Kind),
		"folio-allowed-types": strings.Join(p.AllowedMIMETypes, " "),
		"folio-max-bytes":     strconv.FormatInt(p.MaxSizeBytes, 10),
		"folio-public":        strconv.FormatBool(p.Public),
	}
}
