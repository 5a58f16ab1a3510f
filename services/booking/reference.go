package booking

import "strings"

const referencePrefix = "SOL-"

// FormatReference derives the human-readable booking reference from the
// persisted booking identifier. The mapping is deterministic, so the
// reference for a given booking ID is stable and reproducible.
func FormatReference(id string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(cleaned) > 8 {
		cleaned = cleaned[:8]
	}
	for len(cleaned) < 8 {
		cleaned = "0" + cleaned
	}
	return referencePrefix + cleaned
}
