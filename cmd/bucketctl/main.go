// File: cmd/bucketctl/main.go
package main

import (
	"os"

	// Explicitly import provider implementations to ensure their init() functions run and they register themselves
	_ "bucketctl/internal/provider"
)

func main() {
	os.Exit(Execute())
}
