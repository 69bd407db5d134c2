package manifest

import "errors"

var (
	// ErrUnsupportedVersion is returned for manifests outside SupportedVersions.
	ErrUnsupportedVersion = errors.New("unsupported manifest version")

	// ErrUnknownBuffer is returned when a stream or the index names an undeclared buffer.
	ErrUnknownBuffer = errors.New("unknown buffer")

	// ErrInvalidManifest is returned for structurally invalid manifests.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrUnknownEncoding is returned for manifest files that are neither TOML nor YAML.
	ErrUnknownEncoding = errors.New("unknown manifest encoding")
)
