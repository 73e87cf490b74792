package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedGetters(t *testing.T) {
	c := map[string]string{
		"PORT":      "9090",
		"BAD_INT":   "nine",
		"ENABLED":   "yes",
		"DISABLED":  "off",
		"ORIGINS":   "https://a.test, ,https://b.test",
		"MAX_BYTES": "1048576",
		"EMPTY":     "",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, 7, GetInt(c, "BAD_INT", 7))
	assert.Equal(t, int64(1048576), GetInt64(c, "MAX_BYTES", 0))
	assert.True(t, GetBool(c, "ENABLED", false))
	assert.False(t, GetBool(c, "DISABLED", true))
	assert.True(t, GetBool(c, "MISSING", true))
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(nil, "ORIGINS"))
}

func TestLoadDefaults(t *testing.T) {
	s := Load(map[string]string{"READ_TIMEOUT_SECONDS": "5"})

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, 5*time.Second, s.ReadTimeout)
	assert.Equal(t, 180*time.Second, s.WriteTimeout)
	assert.Equal(t, "public", s.LegacyAssetFolder)
	assert.Equal(t, int64(5*1024*1024), s.UploadMaxBytes)
	assert.Equal(t, "#2563eb", s.Theme.Primary)
}

func TestLoadUploadCapFallsBackWhenNotPositive(t *testing.T) {
	for _, v := range []string{"0", "-1"} {
		s := Load(map[string]string{"UPLOAD_MAX_BYTES": v})
		assert.Equal(t, int64(5*1024*1024), s.UploadMaxBytes, "UPLOAD_MAX_BYTES=%s", v)
	}
	assert.Equal(t, int64(2048), Load(map[string]string{"UPLOAD_MAX_BYTES": "2048"}).UploadMaxBytes)
}

func TestMergeKeepsExistingValues(t *testing.T) {
	merged := Merge(map[string]string{"PORT": "1"}, map[string]string{"PORT": "2", "UPLOAD_BUCKET": "media"})

	assert.Equal(t, "1", merged["PORT"])
	assert.Equal(t, "media", merged["UPLOAD_BUCKET"])
}

type fakeLister struct {
	pages [][]types.Parameter
	calls int
}

func (f *fakeLister) GetParametersByPath(_ context.Context, _ *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	page := f.pages[f.calls]
	f.calls++
	out := &ssm.GetParametersByPathOutput{Parameters: page}
	if f.calls < len(f.pages) {
		out.NextToken = aws.String("next")
	}
	return out, nil
}

func TestLoadSSMParameters(t *testing.T) {
	lister := &fakeLister{pages: [][]types.Parameter{
		{{Name: aws.String("/site/prod/upload_bucket"), Value: aws.String("media")}},
		{{Name: aws.String("/site/prod/admin_jwt_secret"), Value: aws.String("s3cret")}},
	}}

	params, err := LoadSSMParameters(context.Background(), lister, "/site/prod")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"UPLOAD_BUCKET":    "media",
		"ADMIN_JWT_SECRET": "s3cret",
	}, params)
	assert.Equal(t, 2, lister.calls)
}

func TestDatabaseSettings(t *testing.T) {
	s := Load(map[string]string{
		"DB_HOST":          "db.internal",
		"DB_USER":          "site",
		"DB_PASSWORD":      "pw",
		"DB_NAME":          "sections",
		"DB_REPLICA_HOSTS": "replica-1.internal,replica-2.internal",
	})

	assert.Equal(t, "host=db.internal user=site password=pw dbname=sections port=5432 sslmode=require", s.Database.DSN(s.Database.Host))
	assert.Equal(t, []string{"replica-1.internal", "replica-2.internal"}, s.Database.ReplicaHosts)
}
