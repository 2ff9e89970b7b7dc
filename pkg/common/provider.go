// File: pkg/common/provider.go
package common

type Provider string

const (
	AWS   Provider = "AWS"
	GCP   Provider = "GCP"
	MinIO Provider = "MINIO"
)
