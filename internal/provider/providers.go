// File: internal/provider/providers.go
package provider

// This file explicitly imports all provider implementation packages.
// The blank identifier (_) ensures that the init() function of each package runs,
// allowing them to register themselves with the central provider registry.
//
// To add a new provider, implement the Storage interface in pkg/storage/<name>,
// register it from its init() function, and add the import here.

import (
	_ "bucketctl/pkg/storage/aws"
	_ "bucketctl/pkg/storage/gcp"
	_ "bucketctl/pkg/storage/minio"
)
