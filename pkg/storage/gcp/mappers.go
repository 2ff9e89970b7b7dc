// File: pkg/storage/gcp/mappers.go
package gcp

import (
	"errors"
	"net/http"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

type operation int

const (
	opListBuckets operation = iota
	opCreateBucket
	opDeleteBucket
	opListObjects
	opPutObject
	opGetObject
	opDeleteObject
	opCopyObject
)

func mapBucketAttributes(attrs *gcpstorage.BucketAttrs) storage.Bucket {
	if attrs == nil {
		return storage.Bucket{}
	}
	return storage.Bucket{
		Name:      attrs.Name,
		Provider:  common.GCP,
		Location:  attrs.Location,
		CreatedAt: attrs.Created,
	}
}

// Maps GCP SDK object attributes to the domain model
func mapObjectAttributes(attrs *gcpstorage.ObjectAttrs) storage.Object {
	if attrs == nil {
		return storage.Object{}
	}
	return storage.Object{
		Key:          attrs.Name,
		Bucket:       attrs.Bucket,
		Provider:     common.GCP,
		Size:         attrs.Size,
		LastModified: attrs.Updated,
		ETag:         attrs.Etag,
	}
}

// GCS reports most failures as bare HTTP status codes, whose meaning depends on the call
func convertGCPError(op operation, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gcpstorage.ErrBucketNotExist):
		return storage.Classify("NoSuchBucket", err)
	case errors.Is(err, gcpstorage.ErrObjectNotExist):
		return storage.Classify("NoSuchKey", err)
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.Code {
	case http.StatusForbidden, http.StatusUnauthorized:
		return storage.Classify("AccessDenied", err)
	case http.StatusNotFound:
		if op == opGetObject || op == opDeleteObject {
			return storage.Classify("NoSuchKey", err)
		}
		return storage.Classify("NoSuchBucket", err)
	case http.StatusConflict:
		switch op {
		case opDeleteBucket:
			return storage.Classify("BucketNotEmpty", err)
		case opCreateBucket:
			return storage.Classify("BucketAlreadyExists", err)
		}
	}
	return err
}
