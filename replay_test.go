package reprise

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMustDecode_PopulatesTarget(t *testing.T) {
	var action counterAction
	MustDecode(t, JSON, "{\n  \"total\": 7\n}", &action)
	require.Equal(t, 7, action.Total)
}

func TestMustDecodeArgs_ReturnsDecodedArguments(t *testing.T) {
	action := &counterAction{}

	args := MustDecodeArgs(t, JSON, action, "-3")
	require.Equal(t, -3, args)

	args = MustDecodeArgs[int, int](t, YAML, action, "12")
	require.Equal(t, 12, args)
}
