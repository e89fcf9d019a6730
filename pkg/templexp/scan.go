package templexp

import "strings"

// SegmentKind 区分模板片段的类型。
type SegmentKind int

const (
	// SegmentLiteral 原样输出的文本。
	SegmentLiteral SegmentKind = iota
	// SegmentDirective 一个 ${...} 指令，Text 为花括号内的原始内容。
	SegmentDirective
)

// Segment 是 [Scan] 产生的模板片段。
type Segment struct {
	Kind SegmentKind
	Text string
}

// Source 返回片段在模板中的源文本（指令会补回 "${" 与 "}"）。
func (s Segment) Source() string {
	if s.Kind == SegmentDirective {
		return "${" + s.Text + "}"
	}

	return s.Text
}

// ═══════════════════════════════════════════════════════════════════════════
// 分隔符扫描
// ═══════════════════════════════════════════════════════════════════════════

// Scan 将顶层模板拆分为字面量与指令片段。
//
// 规则：
//   - 只识别最外层的 ${ 与其匹配的 }，内层 ${...} 保留在指令原文中
//   - "\${" 输出字面量 "${"，不开启指令
//   - 找不到匹配的 } 时，从该 ${ 起到结尾全部视为字面量
//
// 顶层文本中除 "\${" 外的反斜杠保持原样，因此不含 "${" 的模板扫描后不变。
func Scan(template string) []Segment {
	return scan(template, false)
}

// scan 是扫描实现。nested 为 true 时表示文本来自某个指令内部（三元分支、回退值），
// 此时 \$ \{ \} \: \\ 均被解析为对应的字面字符。
func scan(text string, nested bool) []Segment {
	var (
		segs []Segment
		lit  strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Kind: SegmentLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); {
		ch := text[i]
		if ch == '\\' && i+1 < len(text) {
			next := text[i+1]
			if nested && isOperandEscape(next) {
				lit.WriteByte(next)
				i += 2
				continue
			}
			if !nested && next == '$' && i+2 < len(text) && text[i+2] == '{' {
				lit.WriteString("${")
				i += 3
				continue
			}
		}
		if ch != '$' || i+1 >= len(text) || text[i+1] != '{' {
			lit.WriteByte(ch)
			i++
			continue
		}

		end := findMatchingBrace(text, i+2)
		if end == -1 {
			lit.WriteString(text[i:])
			break
		}

		flush()
		segs = append(segs, Segment{Kind: SegmentDirective, Text: text[i+2 : end]})
		i = end + 1
	}
	flush()

	return segs
}

// isOperandEscape 报告 ch 在指令内部是否可被反斜杠转义。
func isOperandEscape(ch byte) bool {
	switch ch {
	case '$', '{', '}', ':', '\\':
		return true
	}

	return false
}

// findMatchingBrace 从 start 开始查找与已打开的 ${ 匹配的 }，未找到返回 -1。
func findMatchingBrace(text string, start int) int {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '\\':
			if i+1 < len(text) && isOperandEscape(text[i+1]) {
				i++
			}
		case '$':
			if i+1 < len(text) && text[i+1] == '{' {
				depth++
				i++
			}
		case '}':
			if depth == 0 {
				return i
			}
			depth--
		}
	}

	return -1
}

// indexTopLevel 返回 sep 在 text 中第一次出现于嵌套深度 0 且未被转义的位置。
func indexTopLevel(text string, sep byte) int {
	depth := 0
	for i := 0; i < len(text); i++ {
		switch ch := text[i]; {
		case ch == '\\':
			if i+1 < len(text) && isOperandEscape(text[i+1]) {
				i++
			}
		case ch == '$' && i+1 < len(text) && text[i+1] == '{':
			depth++
			i++
		case ch == '}' && depth > 0:
			depth--
		case ch == sep && depth == 0:
			return i
		}
	}

	return -1
}

// splitTopLevel 按顶层分隔符切分 text。
func splitTopLevel(text string, sep byte) []string {
	var parts []string
	for {
		i := indexTopLevel(text, sep)
		if i < 0 {
			return append(parts, text)
		}
		parts = append(parts, text[:i])
		text = text[i+1:]
	}
}
