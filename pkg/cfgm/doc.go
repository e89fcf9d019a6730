// Package cfgm 提供分层的配置加载。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	type Config struct {
//	    NoCase  bool          `json:"no-case"`
//	    Timeout time.Duration `json:"match-timeout"`
//	}
//
//	cfg, err := cfgm.LoadCmd(cmd, Config{}, "myapp",
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
//
// # CLI Flag 映射
//
// flag 名称由 key 中的 "." 替换为 "-" 得到（见 [FlagName]），
// 只有用户显式设置的 flag 会覆盖配置：
//   - no-case → --no-case
//   - output.format → --output-format
//
// # 导出
//
// [MarshalYAML] 输出当前配置，可直接作为配置文件使用。
package cfgm
