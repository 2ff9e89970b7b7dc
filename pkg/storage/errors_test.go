package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	base := errors.New("api error")

	tests := []struct {
		name string
		code string
		want error
	}{
		{name: "missing bucket", code: "NoSuchBucket", want: ErrBucketNotFound},
		{name: "missing key", code: "NoSuchKey", want: ErrObjectNotFound},
		{name: "access denied", code: "AccessDenied", want: ErrAccessDenied},
		{name: "all access disabled", code: "AllAccessDisabled", want: ErrAccessDenied},
		{name: "bucket not empty", code: "BucketNotEmpty", want: ErrBucketNotEmpty},
		{name: "owned by you", code: "BucketAlreadyOwnedByYou", want: ErrBucketAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(tt.code, base)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, base)
		})
	}
}

func TestClassify_UnknownCodeKeepsError(t *testing.T) {
	base := errors.New("throttled")
	assert.Same(t, base, Classify("SlowDown", base))
	assert.NoError(t, Classify("NoSuchBucket", nil))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "N/A", FormatBytes(-1))
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "500.0 MB", FormatBytes(500*1024*1024))
}

func TestObjectKeys_EmptyIsNotNil(t *testing.T) {
	keys := ObjectKeys(nil)
	assert.NotNil(t, keys)
	assert.Empty(t, keys)
	assert.Equal(t, []string{"a", "b"}, ObjectKeys([]Object{{Key: "a"}, {Key: "b"}}))
	assert.Equal(t, []string{"x"}, BucketNames([]Bucket{{Name: "x"}}))
}
