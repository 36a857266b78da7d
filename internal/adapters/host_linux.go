//go:build linux

package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"golang.org/x/sys/unix"
)

func hostMachine() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("uname failed").
			WithCause(err)
	}
	return unix.ByteSliceToString(uts.Machine[:]), nil
}
