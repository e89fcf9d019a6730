package templexp

import (
	"fmt"
	"strconv"
	"strings"
)

// Captures 是一次正则匹配的捕获组。
//
// 下标 0 为整个匹配，1..N 为各捕获组；nil 表示该组未参与匹配，
// 指向空串的指针表示匹配到了空串。
type Captures []*string

// NewCaptures 用字符串构造全部已匹配的捕获组。
func NewCaptures(groups ...string) Captures {
	caps := make(Captures, len(groups))
	for i := range groups {
		caps[i] = &groups[i]
	}

	return caps
}

// Resolve 按 indices 顺序返回第一个已匹配的组，全部未匹配时返回 nil。
//
// 主索引超出范围返回 [ErrUnresolvedGroup]；后续索引超出范围视为未匹配。
func (c Captures) Resolve(indices []int) (*string, error) {
	if len(indices) == 0 {
		return nil, ErrMalformedDirective
	}
	if indices[0] >= len(c) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrUnresolvedGroup, indices[0], len(c))
	}
	for _, idx := range indices {
		if idx < len(c) && c[idx] != nil {
			return c[idx], nil
		}
	}

	return nil, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// 模板展开
// ═══════════════════════════════════════════════════════════════════════════

// Expand 使用 captures 展开替换模板。
//
// 支持语法：
//   - ${1} - 插入捕获组 1，未匹配时为空
//   - ${1|2} - 组 1 未匹配时依次尝试组 2
//   - ${1?a:b} / ${1?a} - 三元选择
//   - ${1:-a} - 未匹配时使用回退文本
//   - ${1:1} / ${1:1:2} - 子串
//   - ${1^} ${1,} ${1^^} ${1,,} ${1^,} ${1,^} - 大小写变换，可追加 + 或 -
//
// 任何输入都会得到结果：无法解析或引用不存在组的指令原样输出，
// 未闭合的 ${ 从该处起按字面量输出。
func Expand(captures Captures, template string) string {
	if !strings.Contains(template, "${") {
		return template
	}

	return expandSegments(captures, Scan(template))
}

// expandOperand 展开来自指令内部的文本（分支、回退值、子串参数）。
func expandOperand(captures Captures, text string) string {
	if !strings.ContainsRune(text, '$') && !strings.ContainsRune(text, '\\') {
		return text
	}

	return expandSegments(captures, scan(text, true))
}

func expandSegments(captures Captures, segs []Segment) string {
	var buf strings.Builder
	for _, seg := range segs {
		if seg.Kind == SegmentLiteral {
			buf.WriteString(seg.Text)
			continue
		}

		d, err := Parse(seg.Text)
		if err != nil {
			buf.WriteString(seg.Source())
			continue
		}
		out, err := Evaluate(captures, d)
		if err != nil {
			buf.WriteString(seg.Source())
			continue
		}
		buf.WriteString(out)
	}

	return buf.String()
}

// Evaluate 对单个已解析指令求值。
//
// 返回 error 时调用方应原样输出指令源文本：
//   - [ErrUnresolvedGroup] 主索引超出捕获组数量
//   - [ErrMalformedDirective] 子串参数展开后不是非负整数
//
// 大小写变换在全部嵌套展开完成后对结果应用一次。
func Evaluate(captures Captures, d Directive) (string, error) {
	value, err := captures.Resolve(d.Indices)
	if err != nil {
		return "", err
	}

	var out string
	switch op := d.Op.(type) {
	case nil, Plain:
		if value != nil {
			out = *value
		}
	case Ternary:
		switch {
		case value != nil:
			out = expandOperand(captures, op.WhenTrue)
		case op.HasFalse:
			out = expandOperand(captures, op.WhenFalse)
		}
	case Fallback:
		if value != nil {
			out = *value
		} else {
			out = expandOperand(captures, op.Text)
		}
	case Substring:
		var s string
		if value != nil {
			s = *value
		}
		out, err = substring(captures, s, op)
		if err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: unknown operator %T", ErrMalformedDirective, op)
	}

	return ApplyCase(out, d.Case), nil
}

func substring(captures Captures, s string, op Substring) (string, error) {
	start, err := operandInt(captures, op.Start)
	if err != nil {
		return "", err
	}

	runes := []rune(s)
	if start >= len(runes) {
		return "", nil
	}
	end := len(runes)
	if op.HasLength {
		length, err := operandInt(captures, op.Length)
		if err != nil {
			return "", err
		}
		if length < end-start {
			end = start + length
		}
	}

	return string(runes[start:end]), nil
}

func operandInt(captures Captures, text string) (int, error) {
	expanded := expandOperand(captures, text)
	if !isDigits(expanded) {
		return 0, fmt.Errorf("%w: substring operand %q", ErrMalformedDirective, expanded)
	}
	n, err := strconv.Atoi(expanded)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedDirective, err)
	}

	return n, nil
}
