package expand_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260118-go-quick-regex/internal/command/expand"
)

func TestCaptures(t *testing.T) {
	caps := expand.Captures([]string{"john", "smith"}, []int{1, 9, -1})
	require.Len(t, caps, 3)
	assert.Equal(t, "john smith", *caps[0])
	assert.Nil(t, caps[1])
	assert.Equal(t, "smith", *caps[2])

	caps = expand.Captures(nil, nil)
	require.Len(t, caps, 1)
	assert.Empty(t, *caps[0])
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "groups", args: []string{"--template", "${2^}, ${1^}", "john", "smith"}, want: "Smith, John\n"},
		{name: "whole match", args: []string{"--template", "[${0^^}]", "a", "b"}, want: "[A B]\n"},
		{name: "unset fallback", args: []string{"--template", "${1|2}", "--unset", "1", "x", "y"}, want: "y\n"},
		{name: "ternary", args: []string{"--template", "${3?yes:no}", "--unset", "3", "a", "b", "c"}, want: "no\n"},
		{name: "out of range passes through", args: []string{"--template", "${5}", "a"}, want: "${5}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			root := &cli.Command{
				Name:     "quick-regex",
				Writer:   &out,
				Commands: []*cli.Command{expand.Command},
			}

			err := root.Run(context.Background(), append([]string{"quick-regex", "expand"}, tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
