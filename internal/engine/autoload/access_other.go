// Released under an MIT license. See LICENSE.

//go:build !unix

package autoload

import (
	"os"
)

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}

	_ = f.Close()

	return true
}
