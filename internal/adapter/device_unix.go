//go:build unix

package adapter

import (
	"os"
	"syscall"
)

// deviceID extracts the device ID from file stat info on Unix systems.
func deviceID(info os.FileInfo) (uint64, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}

	// Dev is a different integer type across Unix flavours.
	return uint64(stat.Dev), true //nolint:unconvert
}
