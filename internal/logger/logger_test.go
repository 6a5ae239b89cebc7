package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithContextCarriesRequestID(t *testing.T) {
	ctx := context.WithValue(context.Background(), ContextKeyRequestID, "req-123")

	entry := WithContext(ctx)
	assert.Equal(t, "req-123", entry.Data["request_id"])

	// Without a stored id there is no request_id field
	entry = WithContext(context.Background())
	_, ok := entry.Data["request_id"]
	assert.False(t, ok)
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")

	SetLevel("debug")
	assert.Equal(t, logrus.DebugLevel, Logger.GetLevel())

	SetLevel("warn")
	assert.Equal(t, logrus.WarnLevel, Logger.GetLevel())

	// Unknown levels fall back to info
	SetLevel("bogus")
	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
}
