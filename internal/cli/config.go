package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/peano/internal/expr"
)

const (
	configFileName = "peano"
	configFileType = "yaml"
	envPrefix      = "PEANO"

	cfgKeyFormat         = "format"
	cfgKeyTraceLevel     = "trace_level"
	cfgKeyDatabase       = "db"
	cfgKeyMaxEvaluations = "max_evaluations"
	cfgKeyMaxLiteral     = "max_literal"
	cfgKeyHistory        = "history_file"

	defaultHistoryFile = ".peano_history"
)

// loadConfig reads peano.yaml from path, or from the working directory when
// path is empty, and overlays PEANO_* environment variables.
// A missing peano.yaml is not an error unless path names it explicitly.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyFormat, "text")
	v.SetDefault(cfgKeyTraceLevel, "off")
	v.SetDefault(cfgKeyDatabase, "")
	v.SetDefault(cfgKeyMaxEvaluations, 10000)
	v.SetDefault(cfgKeyMaxLiteral, expr.DefaultMaxLiteral)
	v.SetDefault(cfgKeyHistory, defaultHistoryFile)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// bindFlags lets explicitly set flags win over the config file and the
// environment. Flags missing from fs are skipped.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range map[string]string{
		cfgKeyFormat:         "format",
		cfgKeyTraceLevel:     "trace-level",
		cfgKeyDatabase:       "db",
		cfgKeyMaxEvaluations: "max-evaluations",
		cfgKeyMaxLiteral:     "max-literal",
	} {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
