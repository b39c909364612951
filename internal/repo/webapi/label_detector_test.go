package webapi

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/baiqizhang/CopyCat-Server/pkg/types/errs"
	"github.com/stretchr/testify/require"
)

func script(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not available on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}

	path := filepath.Join(t.TempDir(), "detect.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))

	return path
}

func TestDetect_ReturnsScriptOutput(t *testing.T) {
	path := script(t, "#!/bin/sh\necho '[\"'\"$1\"'\", \"'\"$2\"'\"]'\n")
	d := NewLabelDetectorWebAPI("sh", path, "key", time.Second)

	out, err := d.Detect(context.Background(), "http://img/1.jpg")
	require.NoError(t, err)
	require.JSONEq(t, `["key", "http://img/1.jpg"]`, string(out))
}

func TestDetect_MalformedOutput(t *testing.T) {
	path := script(t, "#!/bin/sh\necho 'label: dog'\n")
	d := NewLabelDetectorWebAPI("sh", path, "key", time.Second)

	_, err := d.Detect(context.Background(), "http://img/1.jpg")
	require.ErrorIs(t, err, errs.ErrDetectorOutput)
}

func TestDetect_ScriptFails(t *testing.T) {
	path := script(t, "#!/bin/sh\necho 'quota exceeded' >&2\nexit 3\n")
	d := NewLabelDetectorWebAPI("sh", path, "key", time.Second)

	_, err := d.Detect(context.Background(), "http://img/1.jpg")
	require.ErrorContains(t, err, "quota exceeded")
}

func TestDetect_Timeout(t *testing.T) {
	path := script(t, "#!/bin/sh\nsleep 5\necho '[]'\n")
	d := NewLabelDetectorWebAPI("sh", path, "key", 100*time.Millisecond)

	start := time.Now()
	_, err := d.Detect(context.Background(), "http://img/1.jpg")
	require.Error(t, err)
	require.Less(t, time.Since(start), 4*time.Second)
}

func TestDetect_TimeoutKillsChildren(t *testing.T) {
	path := script(t, "#!/bin/sh\n(sleep 5; echo '[]')\nwait\n")
	d := NewLabelDetectorWebAPI("sh", path, "key", 200*time.Millisecond)

	start := time.Now()
	_, err := d.Detect(context.Background(), "http://img/1.jpg")
	require.Error(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
}
