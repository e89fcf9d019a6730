// Package expand 提供 expand 子命令：不经过正则，直接用给定的捕获组展开替换模板。
package expand

import (
	"github.com/urfave/cli/v3"
)

// Command 模板展开命令
var Command = &cli.Command{
	Name:      "expand",
	Usage:     "用参数作为捕获组 1..N 展开替换模板，组 0 为全部参数以空格连接",
	ArgsUsage: "[group...]",
	Action:    action,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "template",
			Usage:    "替换模板",
			Required: true,
		},
		&cli.IntSliceFlag{
			Name:  "unset",
			Usage: "将指定下标的捕获组视为未匹配，可重复",
		},
	},
}
