package templexp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseForm 大小写变换形式。
type CaseForm int

const (
	CaseNone            CaseForm = iota
	FirstUpper                   // ^
	FirstLower                   // ,
	AllUpper                     // ^^
	AllLower                     // ,,
	FirstUpperRestLower          // ^,
	FirstLowerRestUpper          // ,^
)

// CaseScope 大小写变换的作用范围。
type CaseScope int

const (
	// WholeString 整个字符串视为一个整体。
	WholeString CaseScope = iota
	// EachWord 对每个单词分别变换（后缀 +）。
	EachWord
	// FirstWord 仅变换第一个单词，其余原样保留（后缀 -）。
	FirstWord
)

// CaseMod 由形式与作用范围组成。
type CaseMod struct {
	Form  CaseForm
	Scope CaseScope
}

// ApplyCase 对 text 应用大小写变换。
//
// 单词指由空白分隔的非空白片段，空白本身原样保留。
func ApplyCase(text string, mod CaseMod) string {
	if text == "" || mod.Form == CaseNone {
		return text
	}

	switch mod.Scope {
	case EachWord:
		return mapWords(text, mod.Form, false)
	case FirstWord:
		return mapWords(text, mod.Form, true)
	default:
		return applyForm(text, mod.Form)
	}
}

func upper(s string) string {
	// Caser 有状态，不能跨 goroutine 共享，每次调用新建。
	return cases.Upper(language.Und).String(s)
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func keep(s string) string {
	return s
}

func applyForm(s string, form CaseForm) string {
	switch form {
	case FirstUpper:
		return mapFirst(s, upper, keep)
	case FirstLower:
		return mapFirst(s, lower, keep)
	case AllUpper:
		return upper(s)
	case AllLower:
		return lower(s)
	case FirstUpperRestLower:
		return mapFirst(s, upper, lower)
	case FirstLowerRestUpper:
		return mapFirst(s, lower, upper)
	default:
		return s
	}
}

func mapFirst(s string, first, rest func(string) string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)

	return first(s[:size]) + rest(s[size:])
}

func mapWords(s string, form CaseForm, firstOnly bool) string {
	var b strings.Builder
	b.Grow(len(s))

	done := false
	for s != "" {
		i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) })
		if i < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:i])
		s = s[i:]

		j := strings.IndexFunc(s, unicode.IsSpace)
		if j < 0 {
			j = len(s)
		}
		word := s[:j]
		s = s[j:]

		if done {
			b.WriteString(word)
			continue
		}
		b.WriteString(applyForm(word, form))
		done = firstOnly
	}

	return b.String()
}
