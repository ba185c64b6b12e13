package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/pkg/conv"
)

// EnvPrefix 是环境变量前缀，如 ITEMRANK_WEIGHTS。
const EnvPrefix = "ITEMRANK_"

// LoadSettings 按 默认值 <- YAML 文件 <- 环境变量 的顺序合并运行配置。
// path 为空时跳过文件。命令行参数由调用方在此之后覆盖，最后再调用 RankConfig.Validate。
func LoadSettings(path string) (*core.RankConfig, error) {
	cfg := core.DefaultRankConfig()

	if path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := k.Unmarshal("", cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv 用环境变量覆盖配置；无法解析的数值/布尔值一并返回。
func applyEnv(cfg *core.RankConfig) error {
	var errs []error

	setString := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	setString("INPUT", &cfg.InputPath)
	setString("OUTPUT", &cfg.OutputPath)
	setString("ID_FIELD", &cfg.IDField)
	setString("SCORE_COLUMN", &cfg.ScoreColumn)
	setString("WEIGHTS", &cfg.Weights)
	setString("FILTER", &cfg.Filter)
	setString("PIPELINE", &cfg.PipelineFile)
	setString("REDIS_ADDR", &cfg.RedisAddr)
	setString("REDIS_KEY", &cfg.RedisKey)
	setString("LOG_LEVEL", &cfg.LogLevel)

	if v, ok := os.LookupEnv(EnvPrefix + "SCORE_FIELDS"); ok {
		cfg.ScoreFields = conv.SplitList(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TOP"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sTOP must be an integer: %w", EnvPrefix, err))
		} else {
			cfg.TopN = n
		}
	}
	if v, ok := os.LookupEnv(EnvPrefix + "NORMALIZE"); ok {
		b, err := parseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sNORMALIZE: %w", EnvPrefix, err))
		} else {
			cfg.Normalize = b
		}
	}
	return errors.Join(errs...)
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}
