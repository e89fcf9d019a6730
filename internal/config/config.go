// Package config 提供 quick-regex 的配置定义。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .quick-regex.yaml 等（见 cfgm.DefaultPaths）
//  3. 环境变量 - QUICK_REGEX_ 前缀
//  4. CLI flags - 用户显式设置的同名 flag
package config

import (
	"log/slog"
	"strings"
	"time"
)

// AppName 应用名称，同时决定默认配置文件名。
const AppName = "quick-regex"

// EnvPrefix 环境变量前缀。
const EnvPrefix = "QUICK_REGEX_"

// Config 应用配置。
type Config struct {
	NoCase            bool          `json:"no-case" desc:"正则忽略大小写"`
	OneLine           bool          `json:"one-line" desc:"^ 与 $ 只匹配整个输入的首尾"`
	Stream            bool          `json:"stream" desc:"逐行处理输入"`
	Format            bool          `json:"format" desc:"输出前将 \\e 转为 ESC"`
	WhitespaceEscapes bool          `json:"whitespace-escapes" desc:"输出前将 \\n \\t \\r 转为空白字符"`
	Silent            bool          `json:"silent" desc:"不输出提示信息"`
	Subs              []string      `json:"subs" desc:"替换规则 (pattern|||template)"`
	SubsFile          string        `json:"subs-file" desc:"替换规则文件"`
	MatchTimeout      time.Duration `json:"match-timeout" desc:"单次匹配超时，0 表示不限制"`
	LogLevel          string        `json:"log-level" desc:"日志级别 (debug, info, warn, error)"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
	}
}

// SlogLevel 将 LogLevel 转为 slog.Level，无法识别时返回 slog.LevelWarn。
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn
	}

	return level
}
