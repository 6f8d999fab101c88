package domain

import "fmt"

// SourceKind identifies where ingested assets come from.
// It is a closed set: values outside the declared constants fail
// ParseSourceKind with ErrUnknownSource instead of reaching the
// command builder.
type SourceKind string

const (
	// SourceFilesystem ingests an asset folder already on disk.
	SourceFilesystem SourceKind = "filesystem"

	// SourceFab ingests purchases from the Fab marketplace.
	SourceFab SourceKind = "fab"

	// SourceUAS ingests purchases from the Unity Asset Store.
	SourceUAS SourceKind = "uas"
)

// AllSourceKinds returns the supported kinds in display order.
func AllSourceKinds() []SourceKind {
	return []SourceKind{SourceFilesystem, SourceFab, SourceUAS}
}

// ParseSourceKind maps a raw discriminant to a SourceKind.
// Unrecognised values return ErrUnknownSource carrying the value.
func ParseSourceKind(raw string) (SourceKind, error) {
	switch kind := SourceKind(raw); kind {
	case SourceFilesystem, SourceFab, SourceUAS:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, raw)
	}
}

// IsMarketplace reports whether the kind requires a dependency sync
// before the main ingestion command runs.
func (k SourceKind) IsMarketplace() bool {
	return k == SourceFab || k == SourceUAS
}

// DisplayName returns the human-readable name for CLI/TUI listings.
func (k SourceKind) DisplayName() string {
	switch k {
	case SourceFilesystem:
		return "Local Filesystem"
	case SourceFab:
		return "Fab"
	case SourceUAS:
		return "Unity Asset Store"
	default:
		return string(k)
	}
}

// SourceInfo describes one source kind for catalogue listings.
type SourceInfo struct {
	// Kind is the discriminant used in configs and built commands.
	Kind SourceKind

	// DisplayName is the human-readable name.
	DisplayName string

	// RequiresSync is true for marketplace kinds that need a
	// dependency sync before ingestion.
	RequiresSync bool
}

// Catalogue returns a SourceInfo for every supported kind, in display
// order.
func Catalogue() []SourceInfo {
	kinds := AllSourceKinds()
	infos := make([]SourceInfo, len(kinds))
	for i, k := range kinds {
		infos[i] = SourceInfo{
			Kind:         k,
			DisplayName:  k.DisplayName(),
			RequiresSync: k.IsMarketplace(),
		}
	}
	return infos
}
