package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/socialnet/api/internal/common/constants"
)

func TestWithFields_SortsFieldsAndAddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "debug")

	ctx := context.WithValue(context.Background(), constants.TraceIDKey, "t-1")
	log.WithFields(ctx, Fields{"user_id": 7, "action": "like_toggled"}).Info("liked post")

	out := buf.String()
	if !strings.Contains(out, "[INFO] [api] [trace_id=t-1 action=like_toggled user_id=7]") {
		t.Errorf("unexpected prefix: %q", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "liked post") {
		t.Errorf("expected message at the end: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "api", "warn")

	log.Info("hidden")
	log.Warnf("shown %d", 1)
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown 1") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	log.SetLevel("debug")
	if !log.ShouldLog(DEBUG) {
		t.Error("expected debug enabled after SetLevel")
	}
}

func TestParseLevel_DefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got != INFO {
		t.Errorf("expected INFO, got %v", got)
	}
	if got := parseLevel(" critical "); got != CRITICAL {
		t.Errorf("expected CRITICAL, got %v", got)
	}
}
