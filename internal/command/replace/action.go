package replace

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260118-go-quick-regex/internal/command"
	"github.com/lwmacct/260118-go-quick-regex/internal/config"
	"github.com/lwmacct/260118-go-quick-regex/pkg/cfgm"
)

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), config.AppName, cfgm.WithEnvPrefix(config.EnvPrefix))
	if err != nil {
		return cli.Exit(errorText(os.Stderr, "Error in configuration:", err.Error()), 1)
	}
	command.SetupLogger(cmd.Root().ErrWriter, cfg.SlogLevel())

	opts := Options{
		Match:       cmd.String("match"),
		Replace:     cmd.String("replace"),
		HasReplace:  cmd.IsSet("replace"),
		Input:       cmd.String("input"),
		HasInput:    cmd.IsSet("input"),
		InputFile:   cmd.String("input-file"),
		OutputFile:  cmd.String("output-file"),
		Test:        cmd.Bool("test"),
		Grep:        cmd.Bool("grep"),
		ReverseGrep: cmd.Bool("reverse-grep"),
	}
	if cmd.NArg() > 0 {
		return cli.Exit(errorText(os.Stderr, "Error in arguments:", fmt.Sprintf("unexpected argument %q", cmd.Args().First())), 1)
	}

	return Run(ctx, *cfg, opts, Streams{
		In:  cmd.Root().Reader,
		Out: cmd.Root().Writer,
		Err: cmd.Root().ErrWriter,
	})
}
