package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"alcyxob/workout-tracker/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	mu      sync.Mutex
	name    string
	objects map[string]string
	putErr  error
}

func newFakeBucket(name string) *fakeBucket {
	return &fakeBucket{name: name, objects: make(map[string]string)}
}

func (f *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(v))}, nil
}

func (f *fakeBucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = string(body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeBucket) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeBucket) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if aws.ToString(in.Bucket) != f.name {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestS3Store(t *testing.T) {
	bucket := newFakeBucket("fitness")
	s := NewS3Store(bucket, "fitness", "/kv/")
	require.NoError(t, s.CheckBucket(context.Background()))
	testStoreContract(t, s)

	_, ok := bucket.objects["kv/@fitness:workout_progress.json"]
	assert.True(t, ok, "objects are written under the prefix")
}

func TestS3Store_NoPrefix(t *testing.T) {
	bucket := newFakeBucket("fitness")
	s := NewS3Store(bucket, "fitness", "")
	require.NoError(t, s.Set(context.Background(), "k", "v"))
	assert.Equal(t, "v", bucket.objects["k.json"])
}

func TestS3Store_Errors(t *testing.T) {
	bucket := newFakeBucket("fitness")
	bucket.putErr = assert.AnError

	s := NewS3Store(bucket, "other", "")
	assert.Error(t, s.CheckBucket(context.Background()))
	assert.ErrorIs(t, s.Set(context.Background(), "k", "v"), assert.AnError)
}

// isolateAWSEnv keeps the developer's own AWS setup out of credential resolution.
func isolateAWSEnv(t *testing.T) {
	t.Helper()
	missing := filepath.Join(t.TempDir(), "missing")
	t.Setenv("AWS_CONFIG_FILE", missing)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", missing)
	for _, name := range []string{"AWS_PROFILE", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "AWS_SESSION_TOKEN"} {
		t.Setenv(name, "")
	}
}

func TestNewS3Client_Credentials(t *testing.T) {
	isolateAWSEnv(t)
	ctx := context.Background()

	t.Run("static keys when configured", func(t *testing.T) {
		client, err := NewS3Client(ctx, config.S3Config{Region: "us-east-1", AccessKeyID: "AKID", SecretAccessKey: "secret"})
		require.NoError(t, err)
		creds := client.Options().Credentials
		assert.True(t, aws.IsCredentialsProvider(creds, credentials.StaticCredentialsProvider{}))

		v, err := creds.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "AKID", v.AccessKeyID)
	})

	t.Run("default chain without keys", func(t *testing.T) {
		client, err := NewS3Client(ctx, config.S3Config{Region: "us-east-1"})
		require.NoError(t, err)
		creds := client.Options().Credentials
		require.NotNil(t, creds)
		assert.False(t, aws.IsCredentialsProvider(creds, credentials.StaticCredentialsProvider{}))
	})
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		cfg  config.S3Config
		want string
	}{
		{config.S3Config{}, ""},
		{config.S3Config{Endpoint: "minio:9000", UseSSL: false}, "http://minio:9000"},
		{config.S3Config{Endpoint: "minio:9000", UseSSL: true}, "https://minio:9000"},
		{config.S3Config{Endpoint: "http://localhost:9000", UseSSL: true}, "http://localhost:9000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, endpointURL(tt.cfg), tt.cfg.Endpoint)
	}
}
