package s3

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"policyparser/internal/config"
)

func TestAttachment(t *testing.T) {
	assert.Equal(t, `attachment; filename=report.xlsx`, attachment("reports/run-1/report.xlsx"))
	assert.Equal(t, `attachment; filename="my report.csv"`, attachment("reports/run-1/my report.csv"))
}

func TestReportStore_PresignedURL(t *testing.T) {
	store, err := NewReportStore(context.Background(), &config.S3Config{
		Region:    "ap-south-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "test",
		SecretKey: "secret",
	})
	require.NoError(t, err)

	url, err := store.GetPresignedURL(context.Background(), "reports-bucket", "reports/run-1/report.csv", 600)
	require.NoError(t, err)
	assert.Contains(t, url, "http://localhost:9000/reports-bucket/reports/run-1/report.csv?")
	assert.Contains(t, url, "X-Amz-Expires=600")
}
