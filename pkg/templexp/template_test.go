package templexp_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/260118-go-quick-regex/pkg/templexp"
)

func str(s string) *string { return &s }

func TestExpand(t *testing.T) {
	helloWorld := templexp.Captures{str("hello world"), str("hello world")}

	tests := []struct {
		name     string
		captures templexp.Captures
		template string
		want     string
	}{
		{
			name:     "plain text is unchanged",
			captures: helloWorld,
			template: `a\b $1 {x} }`,
			want:     `a\b $1 {x} }`,
		},
		{
			name:     "basic group",
			captures: templexp.Captures{str("abc"), str("abc")},
			template: "<${1}>",
			want:     "<abc>",
		},
		{
			name:     "unmatched group is empty",
			captures: templexp.Captures{str("abc"), nil},
			template: "<${1}>",
			want:     "<>",
		},
		{
			name:     "whole match",
			captures: templexp.Captures{str("abc"), str("b")},
			template: "${0}",
			want:     "abc",
		},
		{
			name:     "fallback chain",
			captures: templexp.Captures{str("x"), nil, str("x")},
			template: "${1|2}",
			want:     "x",
		},
		{
			name:     "fallback chain all unmatched",
			captures: templexp.Captures{str(""), nil, nil},
			template: "[${1|2}]",
			want:     "[]",
		},
		{
			name:     "fallback index beyond captures counts as unmatched",
			captures: templexp.Captures{str("x"), nil},
			template: "[${1|7}]",
			want:     "[]",
		},
		{
			name:     "ternary matched",
			captures: templexp.Captures{str("a"), str("a")},
			template: "${1?yes:no}",
			want:     "yes",
		},
		{
			name:     "ternary unmatched",
			captures: templexp.Captures{str(""), nil},
			template: "${1?yes:no}",
			want:     "no",
		},
		{
			name:     "ternary matched empty string counts as matched",
			captures: templexp.Captures{str(""), str("")},
			template: "${1?yes:no}",
			want:     "yes",
		},
		{
			name:     "ternary without false branch",
			captures: templexp.Captures{str(""), nil},
			template: "[${1?yes}]",
			want:     "[]",
		},
		{
			name:     "fallback text",
			captures: templexp.Captures{str(""), nil},
			template: "${1:-default}",
			want:     "default",
		},
		{
			name:     "fallback text keeps colons",
			captures: templexp.Captures{str(""), nil},
			template: "${1:-a:b}",
			want:     "a:b",
		},
		{
			name:     "fallback not used when matched",
			captures: templexp.Captures{str("v"), str("v")},
			template: "${1:-default}",
			want:     "v",
		},
		{
			name:     "substring start and length",
			captures: templexp.Captures{str("hello"), str("hello")},
			template: "${1:1:2}",
			want:     "el",
		},
		{
			name:     "substring start only",
			captures: templexp.Captures{str("hello"), str("hello")},
			template: "${1:1}",
			want:     "ello",
		},
		{
			name:     "substring start past end",
			captures: templexp.Captures{str("hello"), str("hello")},
			template: "[${1:9}]",
			want:     "[]",
		},
		{
			name:     "substring length past end",
			captures: templexp.Captures{str("hello"), str("hello")},
			template: "${1:3:99}",
			want:     "lo",
		},
		{
			name:     "substring of unmatched group",
			captures: templexp.Captures{str(""), nil},
			template: "[${1:0:2}]",
			want:     "[]",
		},
		{
			name:     "substring counts runes",
			captures: templexp.Captures{str("héllo"), str("héllo")},
			template: "${1:1:2}",
			want:     "él",
		},
		{
			name:     "substring with nested operands, group matched",
			captures: templexp.Captures{str("abcdef"), str("abcdef"), str("")},
			template: "${1:${2?1:2}:${2?3:2}}",
			want:     "bcd",
		},
		{
			name:     "substring with nested operands, group unmatched",
			captures: templexp.Captures{str("abcdef"), str("abcdef"), nil},
			template: "${1:${2?1:2}:${2?3:2}}",
			want:     "cd",
		},
		{
			name:     "substring operand that is not a number passes through",
			captures: templexp.Captures{str("abcdef"), str("abcdef"), str("x")},
			template: "${1:${2}}",
			want:     "${1:${2}}",
		},
		{
			name:     "all upper",
			captures: helloWorld,
			template: "${1^^}",
			want:     "HELLO WORLD",
		},
		{
			name:     "title each word",
			captures: helloWorld,
			template: "${1^,+}",
			want:     "Hello World",
		},
		{
			name:     "title first word only",
			captures: helloWorld,
			template: "${1^,-}",
			want:     "Hello world",
		},
		{
			name:     "case modifier with fallback chain",
			captures: templexp.Captures{str("x"), nil, str("abc")},
			template: "${1|2^}",
			want:     "Abc",
		},
		{
			name:     "nested ternary of two directives takes first when matched",
			captures: templexp.Captures{str("m"), str("m"), str("X"), str("Y")},
			template: "${1?${2}${3}}",
			want:     "X",
		},
		{
			name:     "nested ternary of two directives takes second when unmatched",
			captures: templexp.Captures{str("m"), nil, str("X"), str("Y")},
			template: "${1?${2}${3}}",
			want:     "Y",
		},
		{
			name:     "case modifier applies after nested expansion",
			captures: templexp.Captures{str("m"), str("m"), str("abc"), str("def")},
			template: "${1^^?${2}${3}}",
			want:     "ABC",
		},
		{
			name:     "nested case modifiers in branches",
			captures: templexp.Captures{str("m"), nil, str("abc"), nil, str("DEF")},
			template: "${1?${2^^}${3|4,,}}",
			want:     "def",
		},
		{
			name:     "nested fallback",
			captures: templexp.Captures{str("m"), nil, str("two")},
			template: "${1:-${2}}",
			want:     "two",
		},
		{
			name:     "ternary branches with text and directives",
			captures: templexp.Captures{str("m"), str("m"), str("Bob")},
			template: "${1?Hi ${2}!:Bye}",
			want:     "Hi Bob!",
		},
		{
			name:     "nested ternary colon does not split the outer one",
			captures: templexp.Captures{str("m"), str("m"), nil},
			template: "${1?${2?a:b}:c}",
			want:     "b",
		},
		{
			name:     "escaped directive",
			captures: templexp.Captures{str("abc"), str("abc")},
			template: `\${1}`,
			want:     "${1}",
		},
		{
			name:     "escaped directive next to a real one",
			captures: templexp.Captures{str("abc"), str("abc")},
			template: `\${1}=${1}`,
			want:     "${1}=abc",
		},
		{
			name:     "escaped colon and brace inside a branch",
			captures: templexp.Captures{str("m"), str("m")},
			template: `${1?a\:b\}:c}`,
			want:     "a:b}",
		},
		{
			name:     "escaped dollar inside a branch",
			captures: templexp.Captures{str("m"), str("m")},
			template: `${1?\${1\}}`,
			want:     "${1}",
		},
		{
			name:     "out of range index passes through",
			captures: templexp.Captures{str("abc"), str("abc")},
			template: "a${5}b",
			want:     "a${5}b",
		},
		{
			name:     "out of range with operator passes through verbatim",
			captures: templexp.Captures{str("abc")},
			template: "${3?${1}:no}",
			want:     "${3?${1}:no}",
		},
		{
			name:     "non-numeric directive passes through",
			captures: templexp.Captures{str("abc")},
			template: "${HOME}",
			want:     "${HOME}",
		},
		{
			name:     "empty directive passes through",
			captures: templexp.Captures{str("abc")},
			template: "${}",
			want:     "${}",
		},
		{
			name:     "unknown suffix passes through",
			captures: templexp.Captures{str("abc"), str("abc")},
			template: "${1!}",
			want:     "${1!}",
		},
		{
			name:     "unbalanced opener is literal to the end",
			captures: templexp.Captures{str("abc"), str("abc")},
			template: "${1}-${1 ${1}",
			want:     "abc-${1 ${1}",
		},
		{
			name:     "lone dollar is literal",
			captures: templexp.Captures{str("abc"), str("abc")},
			template: "$ ${1} $",
			want:     "$ abc $",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := templexp.Expand(tt.captures, tt.template)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpand_PassThroughIsIdempotent(t *testing.T) {
	caps := templexp.Captures{str("abc"), str("abc")}
	templates := []string{
		"${2}",
		"x ${9?a:b} y",
		"${1|2} ${4:-z}",
		"${nope}",
	}

	for _, tmpl := range templates {
		once := templexp.Expand(caps, tmpl)
		twice := templexp.Expand(caps, once)
		assert.Equal(t, once, twice, "template %q", tmpl)
	}

	assert.Equal(t, "x ${9?a:b} y", templexp.Expand(caps, "x ${9?a:b} y"))
}

func TestEvaluate(t *testing.T) {
	caps := templexp.Captures{str("m"), nil, str("val")}

	t.Run("resolves fallback index", func(t *testing.T) {
		d, err := templexp.Parse("1|2,,")
		require.NoError(t, err)

		got, err := templexp.Evaluate(caps, d)
		require.NoError(t, err)
		assert.Equal(t, "val", got)
	})

	t.Run("unresolved primary index", func(t *testing.T) {
		_, err := templexp.Evaluate(caps, templexp.Directive{Indices: []int{3}, Op: templexp.Plain{}})
		require.ErrorIs(t, err, templexp.ErrUnresolvedGroup)
	})

	t.Run("nil operator behaves as plain", func(t *testing.T) {
		got, err := templexp.Evaluate(caps, templexp.Directive{Indices: []int{2}})
		require.NoError(t, err)
		assert.Equal(t, "val", got)
	})

	t.Run("bad substring operand", func(t *testing.T) {
		d := templexp.Directive{Indices: []int{2}, Op: templexp.Substring{Start: "${0}"}}
		_, err := templexp.Evaluate(caps, d)
		require.ErrorIs(t, err, templexp.ErrMalformedDirective)
	})
}

func TestCaptures_Resolve(t *testing.T) {
	caps := templexp.Captures{str("m"), nil, str(""), str("c")}

	v, err := caps.Resolve([]int{1, 2, 3})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Empty(t, *v, "matched empty group wins over later groups")

	v, err = caps.Resolve([]int{1})
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = caps.Resolve([]int{4, 3})
	require.ErrorIs(t, err, templexp.ErrUnresolvedGroup)
}

func TestNewCaptures(t *testing.T) {
	caps := templexp.NewCaptures("ab", "a", "")
	require.Len(t, caps, 3)
	for i, want := range []string{"ab", "a", ""} {
		require.NotNil(t, caps[i])
		assert.Equal(t, want, *caps[i])
	}
}

func TestExpand_Concurrent(t *testing.T) {
	caps := templexp.Captures{str("hello world"), str("hello world"), nil}

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = templexp.Expand(caps, "${1^,+} ${2:-none} ${1:0:5}")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "Hello World none hello", got)
	}
}
