// Package templexp 实现正则替换模板的展开。
//
// 模板由字面量与 ${...} 指令组成，指令引用一次正则匹配的捕获组（按序号，
// 0 为整个匹配），并可叠加回退链、三元选择、回退文本、子串与大小写变换。
// 指令可以嵌套在任意常量文本中。
//
// # 语义说明
//
//  1. 只按序号引用捕获组，不支持命名组
//  2. 未匹配的组与匹配到空串的组是不同的（见 [Captures]）
//  3. 无法识别的指令、引用不存在的组时保持原样
//  4. 大小写变换在嵌套展开全部完成后应用一次
//  5. 展开是纯函数，可并发调用
//
// # 转义
//
// 顶层文本中 "\${" 输出字面量 "${"。指令内部（分支、回退值）可用
// \$ \{ \} \: \\ 表示对应字符本身。
//
// # 快速开始
//
//	caps := templexp.NewCaptures("hello world", "hello world")
//	out := templexp.Expand(caps, "${1^,+}") // "Hello World"
//
// 三元与嵌套：
//
//	out := templexp.Expand(caps, "${1?${1^^}:none}")
//
// 详见 [Expand] 文档。
package templexp
