package show_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260118-go-quick-regex/internal/command/show"
)

func TestCommand(t *testing.T) {
	t.Setenv("QUICK_REGEX_STREAM", "true")

	var out bytes.Buffer
	root := &cli.Command{
		Name:   "quick-regex",
		Writer: &out,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "no-case"},
			&cli.StringFlag{Name: "log-level"},
		},
		Commands: []*cli.Command{show.Command},
	}

	err := root.Run(context.Background(), []string{"quick-regex", "--no-case", "--log-level", "debug", "config"})
	require.NoError(t, err)

	yaml := out.String()
	assert.Contains(t, yaml, "no-case: true")
	assert.Contains(t, yaml, "log-level: debug")
	assert.Contains(t, yaml, "stream: true")
	assert.Contains(t, yaml, "match-timeout: 0s")
}
