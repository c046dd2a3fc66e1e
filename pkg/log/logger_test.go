package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	logger := New("test")
	SetLevel(Warning)

	logger.Infof("hidden %d", 1)
	logger.Warningf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "[test]") {
		t.Errorf("Expected warning with module name, got %q", out)
	}
}

func TestSetVerbosity(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer func() {
		SetSink(os.Stdout)
		SetLevel(Notice)
	}()

	var logger core.Logger = New("verbosity")

	SetLevel(Notice)
	SetVerbosity(false, true)
	logger.Debugf("debug line")

	if !strings.Contains(buf.String(), "debug line") {
		t.Errorf("Expected -vv to enable debug output, got %q", buf.String())
	}
}
