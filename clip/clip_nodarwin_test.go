//go:build !darwin

package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasteboardNotCompiledIn(t *testing.T) {
	_, err := New(WithBackendName(BackendPasteboard))
	var pe *PlatformError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, BackendPasteboard, pe.Backend)
	assert.ErrorIs(t, err, ErrClipboard)
}
