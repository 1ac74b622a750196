package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %v, want warn", log.GetLevel())
	}

	log.Info("dropped")
	log.WithField("location", "pune").Warn("kept")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not a single JSON entry: %v; raw=%s", err, buf.String())
	}
	if entry["msg"] != "kept" || entry["location"] != "pune" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	if got := New("loud", nil).GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("level = %v, want info", got)
	}
}
