package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLoggerRecords(t *testing.T) {
	mock := &MockLogger{}
	mock.Info("Inserted expense", Field{Key: FieldMerchant, Value: "COFFEE BAR"})
	mock.Warn("Ambiguous learned match")

	require.Len(t, mock.Entries, 2)
	assert.Equal(t, "Inserted expense", mock.Entries[0].Message)
	assert.True(t, mock.HasEntry("INFO", "Inserted expense"))
	assert.True(t, mock.HasEntry("WARN", "Ambiguous learned match"))
	assert.False(t, mock.HasEntry("ERROR", "Inserted expense"))
}

func TestNewLogrusAdapterLevels(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	adapted := NewLogrusAdapterFromLogger(logger)
	require.NotNil(t, adapted)

	// Invalid level strings fall back to info instead of failing startup.
	assert.NotNil(t, NewLogrusAdapter("chatty", "text"))
	assert.NotNil(t, NewLogrusAdapter("debug", "json"))
}

func TestWithFieldsReturnsDerivedLogger(t *testing.T) {
	mock := &MockLogger{}
	derived := mock.WithFields(Field{Key: FieldSource, Value: "rogers"})
	assert.NotNil(t, derived)
}
