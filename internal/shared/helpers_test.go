package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandError(t *testing.T) {
	base := errors.New("exit status 1")

	err := CommandError([]byte("  E: Unable to locate package foo\n"), base)
	assert.Equal(t, "E: Unable to locate package foo: exit status 1", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Equal(t, base, CommandError(nil, base))
}

func TestShellJoin(t *testing.T) {
	plain, err := ShellJoin([]string{"jhbuild", "-f", "/snap/glade/current/etc/jhbuildrc", "build"})
	require.NoError(t, err)
	assert.Equal(t, "jhbuild -f /snap/glade/current/etc/jhbuildrc build", plain)

	spaced, err := ShellJoin([]string{"echo", "hello world"})
	require.NoError(t, err)
	assert.Equal(t, "echo 'hello world'", spaced)
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"b", "a"}, UniqueStrings([]string{"b", " a", "", "b", "a"}))
	assert.Nil(t, UniqueStrings(nil))
}

func TestNonEmptyLines(t *testing.T) {
	assert.Equal(t, []string{"glib", "gtk+"}, NonEmptyLines("glib\n\n  gtk+ \n"))
}
