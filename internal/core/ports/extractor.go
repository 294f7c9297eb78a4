package ports

// Extractor defines the interface for materializing artifacts into INPUT.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type Extractor interface {
	// Extract unpacks the gzip-compressed tarball into INPUT/<name>/,
	// replacing any previous contents of that directory.
	Extract(tarball, name string) error

	// ExtractStash replaces INPUT/<name>/ with a copy of the stashed tree at dir.
	ExtractStash(dir, name string) error
}
