package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true, false).Info("hidden")
	New(&buf, true, false).Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("quiet logger output: %q", buf.String())
	}
	buf.Reset()
	New(&buf, false, true).Debug("dbg", "k", 1)
	if !strings.Contains(buf.String(), "dbg") || !strings.Contains(buf.String(), "k=1") {
		t.Fatalf("verbose logger output: %q", buf.String())
	}
}
