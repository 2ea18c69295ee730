//go:build !darwin

package clip

import "runtime"

func newPasteboardBackend(*config) (Backend, error) {
	return nil, &PlatformError{Platform: runtime.GOOS, Backend: BackendPasteboard}
}
