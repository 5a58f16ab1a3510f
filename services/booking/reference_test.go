package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatReference(t *testing.T) {
	assert.Equal(t, "SOL-9B2D1E8A", FormatReference("9b2d1e8a-0000-4000-8000-000000000000"))

	// Deterministic for the same ID.
	assert.Equal(t,
		FormatReference("9b2d1e8a-0000-4000-8000-000000000000"),
		FormatReference("9b2d1e8a-0000-4000-8000-000000000000"))

	// Short identifiers pad to a fixed width.
	assert.Equal(t, "SOL-000000AB", FormatReference("ab"))
	assert.Equal(t, "SOL-00000000", FormatReference(""))

	// Always prefix plus eight characters.
	assert.Len(t, FormatReference("f47ac10b-58cc-4372-a567-0e02b2c3d479"), 12)
}
