package substitute

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/lwmacct/260118-go-quick-regex/pkg/templexp"
)

// CapturesOf 将一次匹配转换为模板捕获组，未参与匹配的组为 nil。
func CapturesOf(m *regexp2.Match) templexp.Captures {
	groups := m.Groups()
	caps := make(templexp.Captures, len(groups))
	for i := range groups {
		if len(groups[i].Captures) == 0 {
			continue
		}
		s := groups[i].String()
		caps[i] = &s
	}

	return caps
}

// ReplaceAll 用展开后的 template 替换 input 中的全部匹配。
func ReplaceAll(re *regexp2.Regexp, input, template string) (string, error) {
	out, err := re.ReplaceFunc(input, func(m regexp2.Match) string {
		return templexp.Expand(CapturesOf(&m), template)
	}, -1, -1)
	if err != nil {
		return "", fmt.Errorf("replace: %w", err)
	}

	return out, nil
}

// Matches 报告 text 是否匹配 re。
//
// 以换行结尾的文本会再去掉行尾后尝试一次，使按行处理时 $ 的行为与整行一致。
func Matches(re *regexp2.Regexp, text string) (bool, error) {
	ok, err := re.MatchString(text)
	if err != nil {
		return false, fmt.Errorf("match: %w", err)
	}
	if ok {
		return true, nil
	}

	trimmed := strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")
	if trimmed == text {
		return false, nil
	}
	ok, err = re.MatchString(trimmed)
	if err != nil {
		return false, fmt.Errorf("match: %w", err)
	}

	return ok, nil
}

// Apply 按顺序对 input 执行全部规则。
//
// 过滤规则拒绝当前文本时返回 ("", false, nil)，调用方应丢弃这段输入。
func Apply(input string, rules []Rule) (string, bool, error) {
	for _, rule := range rules {
		if rule.Grep {
			ok, err := Matches(rule.Regex, input)
			if err != nil {
				return "", false, err
			}
			if ok == rule.Invert {
				return "", false, nil
			}
			continue
		}

		out, err := ReplaceAll(rule.Regex, input, rule.Template)
		if err != nil {
			return "", false, err
		}
		input = out
	}

	return input, true, nil
}
