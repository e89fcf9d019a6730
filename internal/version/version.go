// Package version 保存构建信息，通过 -ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/260118-go-quick-regex/internal/version.Version=v1.2.3"
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

var (
	// AppRawName 应用原始名称。
	AppRawName = "quick-regex"
	// Version 版本号。
	Version = "dev"
	// Commit 构建时的 git 提交。
	Commit = ""
)

// GetVersion 返回带提交信息的版本号。
func GetVersion() string {
	if Commit == "" {
		return Version
	}

	return Version + " (" + Commit + ")"
}

// Command 版本命令
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintln(cmd.Root().Writer, AppRawName, GetVersion())

		return err
	},
}
