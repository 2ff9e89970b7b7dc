// File: pkg/storage/model.go
package storage

import (
	"fmt"
	"time"

	"bucketctl/pkg/common"
)

type Bucket struct {
	Name      string
	Provider  common.Provider
	Location  string
	CreatedAt time.Time
}

type Object struct {
	Key          string
	Bucket       string
	Provider     common.Provider
	Size         int64
	LastModified time.Time
	ETag         string
}

// Extracts the bucket names in listing order
func BucketNames(buckets []Bucket) []string {
	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}
	return names
}

// Extracts the object keys in listing order, never returning nil
func ObjectKeys(objects []Object) []string {
	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		keys = append(keys, o.Key)
	}
	return keys
}

func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "N/A"
	}
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	sizes := []string{"KB", "MB", "GB", "TB", "PB", "EB"}
	if exp >= len(sizes) {
		return fmt.Sprintf("%d B", bytes)
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), sizes[exp])
}
