package log

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLog_FormatsFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Info(CatDoc, "loaded", "path", "a.css", "bytes", 12)

	line := buf.String()
	require.Contains(t, line, "[INFO] [doc] loaded path=a.css bytes=12")
	require.True(t, len(line) > 0 && line[len(line)-1] == '\n')
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Warn(CatCollapse, "depth", "limit")
	require.Contains(t, buf.String(), "limit=<missing>")
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	require.Empty(t, buf.String())

	ErrorErr(CatUI, "shown", nil)
	require.Contains(t, buf.String(), "error=<nil>")

	buf.Reset()
	SetEnabled(false)
	Error(CatUI, "muted")
	require.Empty(t, buf.String())
}

func TestLog_NoLoggerIsNoop(t *testing.T) {
	Reset()
	require.NotPanics(t, func() {
		Info(CatConfig, "nothing")
		SetEnabled(true)
	})
	require.Nil(t, NewListener(context.Background()))
}

func TestLog_InitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(Reset)

	Info(CatWatcher, "started")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[watcher] started")
}

func TestLog_ListenerReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx)
	require.NotNil(t, listener)

	Info(CatCache, "hit", "key", "x")

	done := make(chan LogEvent, 1)
	go func() {
		if ev, ok := listener.Listen()().(LogEvent); ok {
			done <- ev
		}
	}()

	select {
	case ev := <-done:
		require.Contains(t, ev.Payload, "[cache] hit key=x")
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for log event")
	}
}
