package replace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dlclark/regexp2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260118-go-quick-regex/internal/config"
	"github.com/lwmacct/260118-go-quick-regex/internal/substitute"
	"github.com/lwmacct/260118-go-quick-regex/internal/textio"
)

// Options 单次调用的参数（不进入配置文件）。
type Options struct {
	Match       string
	Replace     string
	HasReplace  bool // --replace 显式设置，允许空模板
	Input       string
	HasInput    bool
	InputFile   string
	OutputFile  string
	Test        bool
	Grep        bool
	ReverseGrep bool
}

// Streams 标准输入输出。
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// isTerminal 报告 w 是否为支持颜色的终端。
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func paint(w io.Writer, c *color.Color, s string) string {
	if isTerminal(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}

	return c.Sprint(s)
}

func errorText(w io.Writer, label, msg string) string {
	bold := color.New(color.FgHiRed, color.Bold)
	red := color.New(color.FgHiRed)

	return paint(w, bold, label) + paint(w, red, " "+msg)
}

// usageError 返回退出码为 1 的提示。
func usageError(s Streams, msg string) error {
	return cli.Exit(paint(s.Err, color.New(color.FgHiRed), msg), 1)
}

// Run 执行一次替换 / 测试 / grep。
func Run(ctx context.Context, cfg config.Config, opts Options, s Streams) error {
	reOpts := substitute.Options{
		NoCase:       cfg.NoCase,
		OneLine:      cfg.OneLine,
		MatchTimeout: cfg.MatchTimeout,
	}

	rules, matchRe, err := buildRules(cfg, opts, reOpts)
	if err != nil {
		return cli.Exit(errorText(s.Err, "Error in arguments:", err.Error()), 1)
	}

	in, closeIn, err := openInput(opts, s.In)
	if err != nil {
		return cli.Exit(errorText(s.Err, "Error reading input:", err.Error()), 1)
	}
	defer closeIn()

	out, finish, err := openOutput(opts, s.Out)
	if err != nil {
		return cli.Exit(errorText(s.Err, "Error opening output:", err.Error()), 1)
	}

	runErr := run(ctx, cfg, opts, rules, matchRe, in, out, s)
	if err := finish(); err != nil && runErr == nil {
		runErr = cli.Exit(errorText(s.Err, "Error writing output:", err.Error()), 1)
	}

	return runErr
}

func run(ctx context.Context, cfg config.Config, opts Options, rules []substitute.Rule, matchRe *regexp2.Regexp, in io.Reader, out io.Writer, s Streams) error {
	post := textio.PostOptions{Format: cfg.Format, WhitespaceEscapes: cfg.WhitespaceEscapes}

	if opts.Grep || opts.ReverseGrep {
		if matchRe == nil {
			mode := "grep"
			if opts.ReverseGrep {
				mode = "reverse-grep"
			}
			return usageError(s, fmt.Sprintf("You must provide -m or --match in %s mode.", mode))
		}

		return textio.ReadLines(ctx, in, func(line string) error {
			ok, err := substitute.Matches(matchRe, line)
			if err != nil {
				return err
			}
			if ok == opts.ReverseGrep {
				return nil
			}
			_, err = io.WriteString(out, line)

			return err
		})
	}

	process := func(text string) error {
		result, keep, err := substitute.Apply(text, rules)
		if err != nil || !keep {
			return err
		}
		_, err = io.WriteString(out, textio.PostProcess(result, post))

		return err
	}

	input := opts.Input
	if !opts.HasInput {
		if !cfg.OneLine && !opts.Test && cfg.Stream {
			if len(rules) == 0 {
				return usageError(s, "You must provide -m/--match and -r/--replace, or -s/--subs, in the default replace mode.")
			}
			slog.Debug("Streaming input", "rules", len(rules))

			return textio.ReadLines(ctx, in, process)
		}

		all, err := textio.ReadAll(in)
		if err != nil {
			return err
		}
		input = all
	}

	if opts.Test {
		if matchRe == nil {
			return usageError(s, "You must provide -m or --match in test mode.")
		}
		ok, err := substitute.Matches(matchRe, input)
		if err != nil {
			return err
		}

		return report(s, cfg.Silent, ok)
	}

	if len(rules) == 0 {
		return usageError(s, "You must provide -m/--match and -r/--replace, or -s/--subs, in the default replace mode.")
	}

	return process(input)
}

// report 输出测试结果，不匹配时退出码为 1。
func report(s Streams, silent, matched bool) error {
	if matched {
		if !silent {
			_, _ = fmt.Fprintln(s.Out, paint(s.Out, color.New(color.FgHiGreen), "Match"))
		}
		return nil
	}
	if !silent {
		_, _ = fmt.Fprintln(s.Out, paint(s.Out, color.New(color.FgHiRed), "No Match"))
	}

	return cli.Exit("", 1)
}

// buildRules 按 --match/--replace、规则文件、--subs 的顺序组装规则。
func buildRules(cfg config.Config, opts Options, reOpts substitute.Options) ([]substitute.Rule, *regexp2.Regexp, error) {
	var (
		rules   []substitute.Rule
		matchRe *regexp2.Regexp
	)

	if opts.Match != "" {
		re, err := substitute.Compile(opts.Match, reOpts)
		if err != nil {
			return nil, nil, err
		}
		matchRe = re
		if opts.HasReplace {
			rules = append(rules, substitute.Rule{Regex: re, Template: opts.Replace})
		}
	}

	if cfg.SubsFile != "" {
		fileRules, err := readRulesFile(cfg.SubsFile, reOpts)
		if err != nil {
			return nil, nil, err
		}
		rules = append(rules, fileRules...)
	}

	subs, err := substitute.ParseRules(cfg.Subs, reOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("--subs: %w", err)
	}
	rules = append(rules, subs...)
	slog.Debug("Compiled rules", "count", len(rules), "match", opts.Match != "")

	return rules, matchRe, nil
}

// readRulesFile 读取规则文件；文件不存在时忽略。
func readRulesFile(path string, reOpts substitute.Options) ([]substitute.Rule, error) {
	f, err := os.Open(path) //nolint:gosec // path is user supplied on purpose
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Substitution file not found, skipping", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("substitution file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rules, err := substitute.ReadRules(f, reOpts)
	if err != nil {
		return nil, fmt.Errorf("substitution file %s: %w", path, err)
	}

	return rules, nil
}

func openInput(opts Options, stdin io.Reader) (io.Reader, func(), error) {
	if opts.HasInput || opts.InputFile == "" {
		return stdin, func() {}, nil
	}

	f, err := os.Open(opts.InputFile)
	if err != nil {
		return nil, nil, err
	}

	return f, func() { _ = f.Close() }, nil
}

// openOutput 返回输出目标与收尾函数。
//
// 输出文件与输入文件相同时先写入内存，收尾时再写回（结果为空则不写）。
func openOutput(opts Options, stdout io.Writer) (io.Writer, func() error, error) {
	if opts.OutputFile == "" {
		return stdout, func() error { return nil }, nil
	}

	if opts.InputFile != "" && samePath(opts.InputFile, opts.OutputFile) {
		var buf bytes.Buffer
		return &buf, func() error {
			if buf.Len() == 0 {
				return nil
			}
			return os.WriteFile(opts.OutputFile, buf.Bytes(), 0o644) //nolint:gosec // output file is user supplied
		}, nil
	}

	f, err := os.Create(opts.OutputFile)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}

	return absA == absB
}
