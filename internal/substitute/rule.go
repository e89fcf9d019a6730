// Package substitute 将正则匹配与替换模板组合成可串联的替换规则。
package substitute

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// RuleSeparator 分隔规则文本中的正则与替换模板。
const RuleSeparator = "|||"

// Options 正则编译选项。
type Options struct {
	NoCase       bool          // 忽略大小写
	OneLine      bool          // ^ 与 $ 只匹配整个输入的首尾
	MatchTimeout time.Duration // 单次匹配超时，0 表示不限制
}

// Compile 按选项编译正则。
//
// 默认启用多行模式（^ 与 $ 匹配每一行），与 [Options.OneLine] 互斥。
func Compile(pattern string, opts Options) (*regexp2.Regexp, error) {
	flags := regexp2.None
	if opts.NoCase {
		flags |= regexp2.IgnoreCase
	}
	if !opts.OneLine {
		flags |= regexp2.Multiline
	}

	re, err := regexp2.Compile(pattern, flags)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	if opts.MatchTimeout > 0 {
		re.MatchTimeout = opts.MatchTimeout
	}

	return re, nil
}

// Rule 是一条替换规则或过滤规则。
//
// Grep 为 false 时，用 Template 替换 Regex 的每个匹配；
// Grep 为 true 时，文本不匹配 Regex（Invert 时为匹配）则整段丢弃。
type Rule struct {
	Regex    *regexp2.Regexp
	Template string
	Grep     bool
	Invert   bool
}

// NewReplaceRule 创建替换规则。
func NewReplaceRule(pattern, template string, opts Options) (Rule, error) {
	re, err := Compile(pattern, opts)
	if err != nil {
		return Rule{}, err
	}

	return Rule{Regex: re, Template: template}, nil
}

// ParseRule 解析一条规则文本。
//
// 格式：
//   - pattern|||template - 替换规则
//   - pattern - 过滤规则，保留匹配的文本
//   - !pattern - 反向过滤规则，保留不匹配的文本
//   - \!pattern - 以 "!" 开头的正则（去掉一个反斜杠）
func ParseRule(text string, opts Options) (Rule, error) {
	if pattern, template, ok := strings.Cut(text, RuleSeparator); ok {
		return NewReplaceRule(pattern, template, opts)
	}

	invert := strings.HasPrefix(text, "!")
	if invert {
		text = text[1:]
	} else {
		text = unescapeBang(text)
	}

	re, err := Compile(text, opts)
	if err != nil {
		return Rule{}, err
	}

	return Rule{Regex: re, Grep: true, Invert: invert}, nil
}

// unescapeBang 将开头的 \\…\! 去掉一个反斜杠。
func unescapeBang(text string) string {
	n := 0
	for n < len(text) && text[n] == '\\' {
		n++
	}
	if n > 0 && n < len(text) && text[n] == '!' {
		return text[1:]
	}

	return text
}

// ParseRules 逐行解析规则，忽略空行。
func ParseRules(lines []string, opts Options) ([]Rule, error) {
	rules := make([]Rule, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			continue
		}
		rule, err := ParseRule(line, opts)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// ReadRules 从 r 读取每行一条的规则。
func ReadRules(r io.Reader, opts Options) ([]Rule, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	rules, err := ParseRules(lines, opts)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded substitution rules", "count", len(rules))

	return rules, nil
}
