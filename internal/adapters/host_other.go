//go:build !linux

package adapters

import "runtime"

func hostMachine() (string, error) {
	return runtime.GOARCH, nil
}
