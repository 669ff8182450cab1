package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Level(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug").Level)
	assert.Equal(t, logrus.InfoLevel, New("loud").Level)
}

func TestNew_JSONFieldNames(t *testing.T) {
	log := New("info")
	var buf bytes.Buffer
	log.Out = &buf

	log.WithField("operation", "test").Info("ping")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ping", entry["message"])
	assert.Equal(t, "info", entry["severity"])
	assert.Equal(t, "test", entry["operation"])
	assert.Contains(t, entry, "timestamp")
}
