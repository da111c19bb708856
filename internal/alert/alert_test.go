package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopDiscards(t *testing.T) {
	assert.NoError(t, Noop{}.Notify("anything"))
}

func TestMemoryRecords(t *testing.T) {
	m := &Memory{}
	assert.NoError(t, m.Notify("first"))
	assert.NoError(t, m.Notify("second"))
	assert.Equal(t, []string{"first", "second"}, m.Messages)
}
