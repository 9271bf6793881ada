package logger

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestL_DefaultsToNop(t *testing.T) {
	Set(nil)
	if L() == nil {
		t.Fatal("L() returned nil")
	}
	// Must not panic.
	L().Info("ignored")
}

func TestInit_WritesToFile(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	path := filepath.Join(t.TempDir(), "logs", "blueline.log")
	if err := Init(path, true); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	L().Debug("mode change", zap.String("to", "insert"))
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	if !strings.Contains(string(data), `"to":"insert"`) {
		t.Errorf("log file missing structured field, got %q", string(data))
	}
}

func TestFromContext(t *testing.T) {
	Set(nil)
	custom := zap.NewExample()

	ctx := NewContext(context.Background(), custom)
	if FromContext(ctx) != custom {
		t.Error("FromContext did not return the attached logger")
	}
	if FromContext(context.Background()) != L() {
		t.Error("FromContext without logger should fall back to L()")
	}
}
