package templexp

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrMalformedDirective 指令无法解析（索引列表为空、非数字或存在无法识别的后缀）。
	ErrMalformedDirective = errors.New("templexp: malformed directive")
	// ErrUnresolvedGroup 主索引超出捕获组数量。
	ErrUnresolvedGroup = errors.New("templexp: unresolved group index")
)

// Directive 是解析后的 ${...} 指令。
//
// Indices 至少包含一个索引：第一个为主索引，其余按顺序在前者未匹配时尝试。
type Directive struct {
	Indices []int
	Case    CaseMod
	Op      Operator
}

// Operator 是指令的操作符，取值只能是 [Plain]、[Ternary]、[Fallback]、[Substring]。
type Operator interface {
	isOperator()
}

// Plain 直接输出组的值，未匹配时输出空串。
type Plain struct{}

// Ternary 根据组是否匹配选择分支，分支文本在求值时才展开。
type Ternary struct {
	WhenTrue  string
	WhenFalse string
	HasFalse  bool
}

// Fallback 组未匹配时输出 Text 的展开结果。
type Fallback struct {
	Text string
}

// Substring 截取组的值。Start/Length 为原始文本，可以是数字或嵌套指令。
type Substring struct {
	Start     string
	Length    string
	HasLength bool
}

func (Plain) isOperator()     {}
func (Ternary) isOperator()   {}
func (Fallback) isOperator()  {}
func (Substring) isOperator() {}

// ═══════════════════════════════════════════════════════════════════════════
// 指令解析
// ═══════════════════════════════════════════════════════════════════════════

// Parse 解析 ${ 与 } 之间的内容。
//
// 语法：
//
//	directive := indexList caseMod? ( '?' text (':' text)? | ':-' text | ':' operand (':' operand)? )?
//	indexList := digits ( '|' digits )*
//	caseMod   := ( '^^' | ',,' | '^,' | ',^' | '^' | ',' ) ( '+' | '-' )?
//
// 三元与回退的文本不在此处解析，原样保存以便求值时递归展开。
func Parse(raw string) (Directive, error) {
	indices, i, ok := parseIndexList(raw)
	if !ok {
		return Directive{}, fmt.Errorf("%w: %q", ErrMalformedDirective, raw)
	}

	mod, n := parseCaseMod(raw[i:])
	i += n

	op, ok := parseOperator(raw[i:])
	if !ok {
		return Directive{}, fmt.Errorf("%w: %q", ErrMalformedDirective, raw)
	}

	return Directive{Indices: indices, Case: mod, Op: op}, nil
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}

func parseIndexList(raw string) ([]int, int, bool) {
	var indices []int
	i := 0
	for {
		start := i
		for i < len(raw) && isDigit(raw[i]) {
			i++
		}
		if i == start {
			return nil, 0, false
		}
		n, err := strconv.Atoi(raw[start:i])
		if err != nil {
			return nil, 0, false
		}
		indices = append(indices, n)

		if i < len(raw) && raw[i] == '|' {
			i++
			continue
		}

		return indices, i, true
	}
}

// caseForms 按最长优先排列。
var caseForms = []struct {
	token string
	form  CaseForm
}{
	{"^^", AllUpper},
	{",,", AllLower},
	{"^,", FirstUpperRestLower},
	{",^", FirstLowerRestUpper},
	{"^", FirstUpper},
	{",", FirstLower},
}

func parseCaseMod(s string) (CaseMod, int) {
	for _, cf := range caseForms {
		if len(s) < len(cf.token) || s[:len(cf.token)] != cf.token {
			continue
		}
		mod := CaseMod{Form: cf.form}
		n := len(cf.token)
		if n < len(s) {
			switch s[n] {
			case '+':
				mod.Scope = EachWord
				n++
			case '-':
				mod.Scope = FirstWord
				n++
			}
		}

		return mod, n
	}

	return CaseMod{}, 0
}

func parseOperator(s string) (Operator, bool) {
	if s == "" {
		return Plain{}, true
	}

	switch s[0] {
	case '?':
		return parseTernary(s[1:]), true
	case ':':
		if len(s) > 1 && s[1] == '-' {
			return Fallback{Text: s[2:]}, true
		}
		return parseSubstring(s[1:])
	}

	return nil, false
}

// parseTernary 在顶层第一个未转义的 ':' 处切分分支。
//
// 没有 ':' 且正文恰好由两个相邻指令组成时（如 ${2}${3}），
// 第一个作为匹配分支，第二个作为未匹配分支。
func parseTernary(body string) Ternary {
	if i := indexTopLevel(body, ':'); i >= 0 {
		return Ternary{WhenTrue: body[:i], WhenFalse: body[i+1:], HasFalse: true}
	}

	segs := scan(body, true)
	if len(segs) == 2 && segs[0].Kind == SegmentDirective && segs[1].Kind == SegmentDirective {
		return Ternary{WhenTrue: segs[0].Source(), WhenFalse: segs[1].Source(), HasFalse: true}
	}

	return Ternary{WhenTrue: body}
}

func parseSubstring(s string) (Operator, bool) {
	parts := splitTopLevel(s, ':')
	if len(parts) > 2 {
		return nil, false
	}
	for _, p := range parts {
		if !isSubstringOperand(p) {
			return nil, false
		}
	}

	sub := Substring{Start: parts[0]}
	if len(parts) == 2 {
		sub.Length = parts[1]
		sub.HasLength = true
	}

	return sub, true
}

// isSubstringOperand 允许纯数字，或以指令组成、求值后得到数字的文本。
func isSubstringOperand(s string) bool {
	if isDigits(s) {
		return true
	}
	segs := scan(s, true)
	if len(segs) == 0 {
		return false
	}
	for _, seg := range segs {
		if seg.Kind == SegmentLiteral && !isDigits(seg.Text) {
			return false
		}
	}

	return true
}
