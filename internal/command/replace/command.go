// Package replace 提供 quick-regex 的主命令：正则替换、匹配测试与 grep。
package replace

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260118-go-quick-regex/internal/command"
	"github.com/lwmacct/260118-go-quick-regex/internal/command/expand"
	"github.com/lwmacct/260118-go-quick-regex/internal/command/show"
	"github.com/lwmacct/260118-go-quick-regex/internal/version"
)

// Command 主命令
var Command = &cli.Command{
	Name:  version.AppRawName,
	Usage: "读取 stdin，执行正则替换并输出结果；--test 切换为匹配测试，--grep / --reverse-grep 切换为 grep 模式",
	Description: "替换模板语法：\n" +
		"  ${1}          插入捕获组 1\n" +
		"  ${1|2}        组 1 未匹配时插入组 2\n" +
		"  ${1?a:b}      组 1 匹配时插入 a，否则插入 b；${1?${2}${3}} 同理\n" +
		"  ${1:-a}       组 1 未匹配时插入 a\n" +
		"  ${1:1:2}      组 1 从下标 1 起取 2 个字符\n" +
		"  ${1^} ${1,}   首字母大写 / 小写\n" +
		"  ${1^^} ${1,,} 全部大写 / 小写\n" +
		"  ${1^,} ${1,^} 首字母大写其余小写 / 首字母小写其余大写\n" +
		"  + / -         追加在大小写形式后：作用于每个单词 / 仅第一个单词\n" +
		"  \\${          字面量 ${",
	Version:                   version.GetVersion(),
	UseShortOptionHandling:    true,
	DisableSliceFlagSeparator: true,
	Action:                    action,
	Commands: []*cli.Command{
		version.Command,
		expand.Command,
		show.Command,
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "match",
			Aliases: []string{"m"},
			Usage:   "正则表达式",
		},
		&cli.StringFlag{
			Name:    "replace",
			Aliases: []string{"r"},
			Usage:   "替换模板",
		},
		&cli.StringSliceFlag{
			Name:    "subs",
			Aliases: []string{"s"},
			Value:   command.Defaults.Subs,
			Usage:   "替换规则 pattern|||template，可重复；不含 ||| 时为 grep 规则，以 ! 开头为反向 grep",
		},
		&cli.StringFlag{
			Name:    "subs-file",
			Aliases: []string{"R"},
			Value:   command.Defaults.SubsFile,
			Usage:   "每行一条替换规则的文件，先于 --subs 执行",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"query", "q"},
			Usage:   "使用该值作为输入，代替 stdin",
		},
		&cli.StringFlag{
			Name:    "input-file",
			Aliases: []string{"file", "f"},
			Usage:   "从文件读取输入",
		},
		&cli.StringFlag{
			Name:    "output-file",
			Aliases: []string{"out", "dest", "d"},
			Usage:   "输出到文件，代替 stdout",
		},
		&cli.BoolFlag{
			Name:    "test",
			Aliases: []string{"t"},
			Usage:   "不做替换，匹配时退出码为 0，否则为 1",
		},
		&cli.BoolFlag{
			Name:  "silent",
			Value: command.Defaults.Silent,
			Usage: "不输出 --test 结果等提示信息",
		},
		&cli.BoolFlag{
			Name:    "no-case",
			Aliases: []string{"i"},
			Value:   command.Defaults.NoCase,
			Usage:   "正则忽略大小写",
		},
		&cli.BoolFlag{
			Name:    "one-line",
			Aliases: []string{"o"},
			Value:   command.Defaults.OneLine,
			Usage:   "^ 与 $ 只匹配整个输入的首尾（grep 模式逐行处理，不受影响）",
		},
		&cli.BoolFlag{
			Name:    "format",
			Aliases: []string{"ansi-format", "a"},
			Value:   command.Defaults.Format,
			Usage:   "输出前将 \\e 转为 ANSI 转义字符",
		},
		&cli.BoolFlag{
			Name:    "whitespace-escapes",
			Aliases: []string{"w"},
			Value:   command.Defaults.WhitespaceEscapes,
			Usage:   "输出前将 \\n \\t \\r 转为对应空白字符",
		},
		&cli.BoolFlag{
			Name:    "grep",
			Aliases: []string{"g"},
			Usage:   "输出匹配的行",
		},
		&cli.BoolFlag{
			Name:    "reverse-grep",
			Aliases: []string{"G"},
			Usage:   "输出不匹配的行",
		},
		&cli.BoolFlag{
			Name:    "stream",
			Aliases: []string{"S"},
			Value:   command.Defaults.Stream,
			Usage:   "逐行处理输入；使用 --test、--one-line 或 --input 时忽略，grep 模式总是逐行处理",
		},
		&cli.DurationFlag{
			Name:  "match-timeout",
			Value: command.Defaults.MatchTimeout,
			Usage: "单次匹配超时，0 表示不限制",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: command.Defaults.LogLevel,
			Usage: "日志级别 (debug, info, warn, error)",
		},
	},
}
