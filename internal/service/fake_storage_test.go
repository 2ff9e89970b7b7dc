package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"bucketctl/pkg/common"
	"bucketctl/pkg/storage"
)

type createCall struct {
	name   string
	region string
}

// fakeStorage keeps buckets in memory and counts every call by method name
type fakeStorage struct {
	mu       sync.Mutex
	provider common.Provider
	buckets  map[string]map[string][]byte
	errs     map[string]error
	calls    map[string]int
	created  []createCall
	putTypes map[string]string
}

func newFakeStorage(buckets map[string][]string) *fakeStorage {
	f := &fakeStorage{
		provider: common.AWS,
		buckets:  make(map[string]map[string][]byte),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
		putTypes: make(map[string]string),
	}
	for name, keys := range buckets {
		f.buckets[name] = make(map[string][]byte)
		for _, k := range keys {
			f.buckets[name][k] = []byte("content of " + k)
		}
	}
	return f
}

func (f *fakeStorage) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

func (f *fakeStorage) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStorage) mutations() int {
	return f.count("CreateBucket") + f.count("DeleteBucket") + f.count("PutObject") +
		f.count("DeleteObject") + f.count("CopyObject")
}

func (f *fakeStorage) remoteCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeStorage) ProviderName() common.Provider { return f.provider }

func (f *fakeStorage) ListBuckets(context.Context) ([]storage.Bucket, error) {
	if err := f.record("ListBuckets"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(f.buckets))
	for name := range f.buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]storage.Bucket, 0, len(names))
	for _, name := range names {
		out = append(out, storage.Bucket{Name: name, Provider: f.provider})
	}
	return out, nil
}

func (f *fakeStorage) CreateBucket(_ context.Context, name, location string) error {
	if err := f.record("CreateBucket"); err != nil {
		return err
	}
	f.created = append(f.created, createCall{name: name, region: location})
	f.buckets[name] = make(map[string][]byte)
	return nil
}

func (f *fakeStorage) DeleteBucket(_ context.Context, name string) error {
	if err := f.record("DeleteBucket"); err != nil {
		return err
	}
	if _, ok := f.buckets[name]; !ok {
		return storage.ErrBucketNotFound
	}
	delete(f.buckets, name)
	return nil
}

func (f *fakeStorage) ListObjects(_ context.Context, bucket string) ([]storage.Object, error) {
	if err := f.record("ListObjects"); err != nil {
		return nil, err
	}
	objs, ok := f.buckets[bucket]
	if !ok {
		return nil, storage.ErrBucketNotFound
	}
	keys := make([]string, 0, len(objs))
	for k := range objs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]storage.Object, 0, len(keys))
	for _, k := range keys {
		out = append(out, storage.Object{Key: k, Bucket: bucket, Provider: f.provider, Size: int64(len(objs[k]))})
	}
	return out, nil
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, body io.Reader, _ int64, contentType string) error {
	if err := f.record("PutObject"); err != nil {
		return err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.buckets[bucket][key] = data
	f.putTypes[key] = contentType
	return nil
}

func (f *fakeStorage) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	if err := f.record("GetObject"); err != nil {
		return nil, err
	}
	data, ok := f.buckets[bucket][key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, bucket, key string) error {
	if err := f.record("DeleteObject"); err != nil {
		return err
	}
	delete(f.buckets[bucket], key)
	return nil
}

func (f *fakeStorage) CopyObject(_ context.Context, srcBucket, srcKey, destBucket, destKey string) error {
	if err := f.record("CopyObject"); err != nil {
		return err
	}
	f.buckets[destBucket][destKey] = f.buckets[srcBucket][srcKey]
	return nil
}

func (f *fakeStorage) Close() error { return nil }
