//go:build !unix

package adapter

import "os"

// deviceID reports that no device ID is available on this platform, which
// degrades --one-file-system to a no-op.
func deviceID(_ os.FileInfo) (uint64, bool) {
	return 0, false
}
