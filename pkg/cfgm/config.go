package cfgm

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v3"
)

// DefaultPaths 返回 appName 的配置文件搜索顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录
//  2. ~/.appname.yaml - 用户主目录
//  3. $XDG_CONFIG_HOME/appname/config.yaml - 用户配置目录
//  4. /etc/appname/config.yaml - 系统级配置
func DefaultPaths(appName string) []string {
	if appName == "" {
		return nil
	}

	paths := []string{"." + appName + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+appName+".yaml"))
	}
	paths = append(paths,
		filepath.Join(xdg.ConfigHome, appName, "config.yaml"),
		filepath.Join("/etc", appName, "config.yaml"),
	)

	return paths
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]，仅用户显式设置的 flag
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}

	configMap := structToMap(defaultConfig)

	// 配置文件：命中首个即停止
	path, fileMap, err := readFirstConfig(o.configPaths)
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		mergeMaps(configMap, fileMap)
		slog.Debug("Loaded config from file", "path", path)
	} else {
		slog.Debug("No config file found, using defaults", "searched", len(o.configPaths))
	}

	// 环境变量
	if o.envPrefix != "" {
		for envKey, key := range envBindings(o.envPrefix, configKeys(defaultConfig)) {
			if val, ok := os.LookupEnv(envKey); ok && val != "" {
				setByPath(configMap, key, val)
				slog.Debug("Loaded env binding", "env", envKey, "key", key)
			}
		}
	}

	// CLI flags
	if o.cmd != nil {
		for _, key := range configKeys(defaultConfig) {
			name := FlagName(key)
			if o.cmd.IsSet(name) {
				setByPath(configMap, key, o.cmd.Value(name))
			}
		}
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// LoadCmd 是 [Load] 的 CLI 便捷版本，注入 [WithCommand] 与 [WithAppName]。
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "myapp",
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	base := []Option{WithCommand(cmd), WithAppName(appName)}

	return Load(defaultConfig, append(base, opts...)...)
}

// FlagName 返回配置 key 对应的 CLI flag 名称（"." 替换为 "-"）。
func FlagName(key string) string {
	return strings.ReplaceAll(key, ".", "-")
}

func readFirstConfig(paths []string) (string, map[string]any, error) {
	for _, path := range paths {
		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return "", nil, fmt.Errorf("read config file %s: %w", path, err)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return "", nil, fmt.Errorf("parse config file %s: %w", path, err)
		}

		return path, fileMap, nil
	}

	return "", nil, nil
}

// configKeys 返回配置结构体全部叶子 key（如 server.addr）。
func configKeys[T any](defaultConfig T) []string {
	var keys []string
	var walk func(typ reflect.Type, prefix string)
	walk = func(typ reflect.Type, prefix string) {
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct {
			return
		}
		for i := range typ.NumField() {
			field := typ.Field(i)
			key := configTagName(field)
			if key == "" {
				continue
			}
			if prefix != "" {
				key = prefix + "." + key
			}
			if isStructType(field.Type) {
				walk(field.Type, key)
				continue
			}
			keys = append(keys, key)
		}
	}
	walk(reflect.TypeOf(defaultConfig), "")

	return keys
}

// envBindings 生成 环境变量名 → 配置 key 的映射。
//
// 示例 (前缀 "APP_")：
//   - no-case → APP_NO_CASE
//   - server.idle-timeout → APP_SERVER_IDLE_TIMEOUT
func envBindings(prefix string, keys []string) map[string]string {
	r := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(r.Replace(key))] = key
	}

	return bindings
}
