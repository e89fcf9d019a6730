package expand

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260118-go-quick-regex/pkg/templexp"
)

func action(_ context.Context, cmd *cli.Command) error {
	captures := Captures(cmd.Args().Slice(), cmd.IntSlice("unset"))
	slog.Debug("Expanding template", "groups", len(captures), "template", cmd.String("template"))

	_, err := fmt.Fprintln(cmd.Root().Writer, templexp.Expand(captures, cmd.String("template")))

	return err
}

// Captures 由参数构造捕获组：组 0 为全部参数以空格连接，组 i 为第 i 个参数。
// unset 中的下标视为未匹配，越界下标被忽略。
func Captures(args []string, unset []int) templexp.Captures {
	groups := make([]string, 0, len(args)+1)
	groups = append(groups, strings.Join(args, " "))
	groups = append(groups, args...)

	captures := templexp.NewCaptures(groups...)
	for _, idx := range unset {
		if idx >= 0 && idx < len(captures) {
			captures[idx] = nil
		}
	}

	return captures
}
