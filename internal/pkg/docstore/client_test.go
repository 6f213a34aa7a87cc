package docstore

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOfflineClient builds a client without the bucket connectivity check.
// Presigning is pure request signing, so no S3 endpoint is needed.
func newOfflineClient(t *testing.T) *Client {
	t.Helper()

	cfg := &Config{
		AccessKeyID:     "test-access-key",
		SecretAccessKey: "test-secret-key",
		Region:          "eu-central-1",
		BucketName:      "propnest-docs-test",
		EndpointURL:     "http://localhost:9000",
		Enabled:         true,
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID, cfg.SecretAccessKey, "",
		)),
	)
	require.NoError(t, err)

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.EndpointURL)
		o.UsePathStyle = true
	})

	return &Client{
		s3Client:  s3Client,
		presigner: s3.NewPresignClient(s3Client),
		config:    cfg,
	}
}

func TestLoadConfig_DisabledByDefault(t *testing.T) {
	t.Setenv("S3_DOCS_ENABLED", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.IsEnabled())
}

func TestLoadConfig_EnabledRequiresCredentials(t *testing.T) {
	t.Setenv("S3_DOCS_ENABLED", "true")
	t.Setenv("S3_ACCESS_KEY_ID", "")
	t.Setenv("S3_SECRET_ACCESS_KEY", "")
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Enabled(t *testing.T) {
	t.Setenv("S3_DOCS_ENABLED", "true")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_BUCKET_NAME", "propnest-docs")
	t.Setenv("S3_REGION", "eu-central-1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, "propnest-docs", cfg.GetBucketName())
	assert.Equal(t, "eu-central-1", cfg.Region)
}

func TestGetObjectKey(t *testing.T) {
	cfg := &Config{}

	key := cfg.GetObjectKey("prop-uuid", "doc-uuid", "contract.pdf")
	assert.Equal(t, "documents/prop-uuid/doc-uuid/contract.pdf", key)

	// Path components in the file name are stripped
	key = cfg.GetObjectKey("prop-uuid", "doc-uuid", "../../etc/passwd")
	assert.Equal(t, "documents/prop-uuid/doc-uuid/passwd", key)
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		fileName string
		want     string
	}{
		{"contract.pdf", "application/pdf"},
		{"expose.DOCX", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"floorplan.png", "image/png"},
		{"unknown.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ContentTypeFor(tt.fileName), tt.fileName)
	}
}

func TestPresignUpload(t *testing.T) {
	client := newOfflineClient(t)

	url, err := client.PresignUpload(context.Background(), "documents/p1/d1/contract.pdf", "application/pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:9000/propnest-docs-test/documents/p1/d1/contract.pdf"), url)
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=")
}

func TestPresignDownload(t *testing.T) {
	client := newOfflineClient(t)

	url, err := client.PresignDownload(context.Background(), "documents/p1/d1/contract.pdf", "contract.pdf")
	require.NoError(t, err)

	assert.Contains(t, url, "/propnest-docs-test/documents/p1/d1/contract.pdf")
	assert.Contains(t, url, "response-content-disposition=")
	assert.Contains(t, url, "X-Amz-Signature=")
}

func TestNewClient_Disabled(t *testing.T) {
	_, err := NewClient(&Config{Enabled: false})
	assert.ErrorIs(t, err, ErrDisabled)
}
