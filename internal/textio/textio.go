// Package textio 提供输入读取与输出后处理。
package textio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decoder 按 BOM 识别 UTF-16LE/UTF-16BE/UTF-8，无 BOM 时按 UTF-8 处理。
func decoder(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// ReadAll 读取全部输入并解码为 UTF-8 字符串。
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(decoder(r))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return string(data), nil
}

// ReadLines 逐行读取输入并回调 fn，每行保留行尾的 "\n" 或 "\r\n"。
//
// 最后一行可以没有换行符。ctx 取消或 fn 返回错误时停止。
func ReadLines(ctx context.Context, r io.Reader, fn func(line string) error) error {
	br := bufio.NewReader(decoder(r))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := br.ReadString('\n')
		if line != "" {
			if fnErr := fn(line); fnErr != nil {
				return fnErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
	}
}

// PostOptions 输出后处理选项。
type PostOptions struct {
	Format            bool // \e 转为 ESC
	WhitespaceEscapes bool // \n \t \r 转为对应空白字符
}

var (
	formatReplacer     = strings.NewReplacer(`\e`, "\x1b")
	whitespaceReplacer = strings.NewReplacer(`\n`, "\n", `\t`, "\t", `\r`, "\r")
)

// PostProcess 按选项替换输出中的转义序列。
func PostProcess(s string, opts PostOptions) string {
	if opts.Format {
		s = formatReplacer.Replace(s)
	}
	if opts.WhitespaceEscapes {
		s = whitespaceReplacer.Replace(s)
	}

	return s
}
