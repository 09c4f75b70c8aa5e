package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Egor213/LogTrail/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buildLog = `[2025-05-01_0900hr_00sec]
"""
make started with nvcc
"""
[2025-06-01_0000hr_00sec]
"""
deploy done
"""
[2025-05-10_1230hr_15sec]
"""
make finished, nvcc warnings
"""
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("APP_CONFIG_PATH", filepath.Join(dir, "missing.yaml"))
	t.Setenv("LOG_LEVEL", "error")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name:    "month filter from stdin",
			args:    []string{"--date", "2025-05"},
			want:    []string{"[2025-05-01_0900hr_00sec]", "[2025-05-10_1230hr_15sec]"},
			notWant: []string{"deploy done"},
		},
		{
			name:    "keywords and latest",
			args:    []string{"-k", "MAKE", "-k", "nvcc", "--latest"},
			want:    []string{"make finished, nvcc warnings"},
			notWant: []string{"make started"},
		},
		{
			name:    "entries in requested order",
			args:    []string{"-n", "3,1", "--format", "json"},
			want:    []string{`"deploy done"`, `"make started with nvcc"`},
			notWant: []string{"make finished"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := execute(t, buildLog, tc.args...)
			require.NoError(t, err)
			for _, s := range tc.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRootCmd_EntriesOrder(t *testing.T) {
	out, err := execute(t, buildLog, "-n", "3,1")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "deploy done"), strings.Index(out, "make started"))
}

func TestRootCmd_FileArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.log")
	require.NoError(t, os.WriteFile(path, []byte(buildLog), 0o600))

	out, err := execute(t, "", path, "--date", "05-06")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, `"""`)/2)
}

func TestRootCmd_InvalidDate(t *testing.T) {
	_, err := execute(t, buildLog, "--date", "sometime")
	assert.ErrorIs(t, err, filter.ErrInvalidDateSpec)
}

func TestRootCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "", filepath.Join(t.TempDir(), "nope.log"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
