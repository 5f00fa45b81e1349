//go:build windows

package config

import "os"

var statFn = os.Stat

// checkWritable probes with a temp file; ACLs make mode bits meaningless on Windows.
func checkWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".gdi-probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
