package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Debug("hidden")
	log.Warn("platform not verified")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written without verbose: %q", out)
	}
	if !strings.Contains(out, "warn\tplatform not verified") {
		t.Errorf("warning missing: %q", out)
	}

	buf.Reset()
	log = New(&buf, true)
	log.Debug("shown")
	_ = log.Sync()
	if !strings.Contains(buf.String(), "debug\tshown") {
		t.Errorf("debug line missing with verbose: %q", buf.String())
	}
}
