package observability

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	func() {
		defer RecoverPanic(logger, "worker")
		panic("kaboom")
	}()

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "PANIC recovered", entry["message"])
	assert.Equal(t, "kaboom", entry["panic"])
	assert.Equal(t, "worker", entry["context"])
	assert.NotEmpty(t, entry["stack"])
}

func TestRecoverToError(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})

	run := func(fail bool) (err error) {
		defer RecoverToError(logger, "api server", &err)
		if fail {
			panic(errors.New("bad state"))
		}
		return nil
	}

	require.NoError(t, run(false))

	err := run(true)
	require.Error(t, err)
	assert.Equal(t, "panic in api server: bad state", err.Error())
}
