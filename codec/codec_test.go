package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecs_Compatible(t *testing.T) {
	payload := benchPayload()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, _ := ByName(name)

			data, err := c.Marshal(payload)
			require.NoError(t, err)
			assert.JSONEq(t, string(MustMarshal(JSON{}, payload)), string(data))

			indented, err := c.MarshalIndent(payload, "", "  ")
			require.NoError(t, err)
			assert.Contains(t, string(indented), "\n  \"run_id\"")

			var back benchReport
			require.NoError(t, c.Unmarshal(data, &back))
			assert.Equal(t, payload, back)
		})
	}
}

func TestMustMarshal_Panics(t *testing.T) {
	assert.Panics(t, func() { MustMarshal(nil, make(chan int)) })
}
