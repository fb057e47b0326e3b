package sockets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetErrorMessage(t *testing.T) {
	underlying := errors.New("executable file not found in $PATH")
	err := &NetError{Tool: "ss", Err: underlying}
	assert.Contains(t, err.Error(), "failed to get network connections")
	assert.Contains(t, err.Error(), "ss")
	assert.ErrorIs(t, err, underlying)
}

func TestRunToolMissingBinary(t *testing.T) {
	_, err := runTool("portreap-no-such-tool-xyz")
	require.Error(t, err)

	var netErr *NetError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "portreap-no-such-tool-xyz", netErr.Tool)
}
