// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider selects the single provider a command runs against, overriding the configured default
	Provider      = "provider"
	ProviderShort = "p"

	// Providers (plural) lets bucket listing fan out over several providers at once
	Providers = "providers"

	// Config points at an alternative configuration file
	Config = "config"

	// Location flags are used to specify the geographical location or region for resource creation.
	Location      = "location"
	LocationShort = "l"

	// Name creates a bucket under an explicit name instead of a generated one
	Name      = "name"
	NameShort = "n"

	// Bucket flags are used to specify the target bucket for object-level operations
	Bucket      = "bucket"
	BucketShort = "b"

	// Key names the uploaded object; defaults to the upload source's base name
	Key      = "key"
	KeyShort = "k"

	// To is the destination bucket of a copy
	To = "to"

	DestKey = "dest-key"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"
)
