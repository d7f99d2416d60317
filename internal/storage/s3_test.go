package storage

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sarvaliya/folio/internal/bucket"
	"github.com/sarvaliya/folio/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", endpointURL(config.StorageConfig{Endpoint: "localhost:9000"}))
	assert.Equal(t, "https://s3.example", endpointURL(config.StorageConfig{Endpoint: "s3.example", UseSSL: true}))
	assert.Equal(t, "https://already.example", endpointURL(config.StorageConfig{Endpoint: "https://already.example"}))
}

func TestTagSetIsSortedAndComplete(t *testing.T) {
	set := tagSet(bucket.ImagePolicy("images").Tags())

	keys := make([]string, 0, len(set))
	for _, tag := range set {
		keys = append(keys, aws.ToString(tag.Key))
	}
	assert.Equal(t, []string{"folio-allowed-types", "folio-kind", "folio-max-bytes", "folio-public"}, keys)
	assert.Equal(t, "image/jpeg image/png image/webp image/gif", aws.ToString(set[0].Value))
	assert.Equal(t, "10485760", aws.ToString(set[2].Value))
}
