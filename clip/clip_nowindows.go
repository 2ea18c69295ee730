//go:build !windows

package clip

import "runtime"

func newWin32Backend(*config) (Backend, error) {
	return nil, &PlatformError{Platform: runtime.GOOS, Backend: BackendWin32}
}
