// Package show 提供 config 子命令：输出合并后的生效配置。
package show

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260118-go-quick-regex/internal/config"
	"github.com/lwmacct/260118-go-quick-regex/pkg/cfgm"
)

// Command 配置命令
var Command = &cli.Command{
	Name:   "config",
	Usage:  "以 YAML 输出生效配置（默认值、配置文件、环境变量与全局 flags 合并后）",
	Action: action,
}

func action(_ context.Context, cmd *cli.Command) error {
	// 全局 flags 由根命令继承，cmd 的查找会沿父命令进行
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), config.AppName, cfgm.WithEnvPrefix(config.EnvPrefix))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	data, err := cfgm.MarshalYAML(*cfg)
	if err != nil {
		return err
	}
	_, err = cmd.Root().Writer.Write(data)

	return err
}
