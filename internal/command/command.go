// Package command 提供 quick-regex 的命令行功能。
package command

import (
	"io"
	"log/slog"

	"github.com/lwmacct/260118-go-quick-regex/internal/config"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// SetupLogger 将默认 slog 输出到 w，并按 level 过滤。
func SetupLogger(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
