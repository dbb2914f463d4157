// Released under an MIT license. See LICENSE.

//go:build unix

package autoload

import (
	"golang.org/x/sys/unix"
)

func readable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}
