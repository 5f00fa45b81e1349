//go:build !windows

package config

import (
	"os"

	"golang.org/x/sys/unix"
)

var statFn = os.Stat

var accessFn = unix.Access

func checkWritable(dir string) error {
	return accessFn(dir, unix.W_OK)
}
