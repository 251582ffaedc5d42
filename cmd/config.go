package cmd

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "rmds.dev/pkg/rmds/internal/model"
)

const (
	cleanAllFlagName      = "clean-all"
	dryRunFlagName        = "dry-run"
	quietFlagName         = "quiet"
	verboseFlagName       = "verbose"
	interactiveFlagName   = "interactive"
	maxDepthFlagName      = "max-depth"
	oneFileSystemFlagName = "one-file-system"
	excludeFlagName       = "exclude"
	nameFlagName          = "name"
	noColorFlagName       = "no-color"
	logFileFlagName       = "log-file"

	envPrefix = "RMDS"

	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogLevel      = int(slog.LevelDebug)
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// No config file is read: rmds is configured by flags and RMDS_* env
// variables only.
func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(cleanAllFlagName, false)
	viper.SetDefault(dryRunFlagName, false)
	viper.SetDefault(quietFlagName, false)
	viper.SetDefault(verboseFlagName, false)
	viper.SetDefault(interactiveFlagName, false)
	viper.SetDefault(maxDepthFlagName, m.UnlimitedDepth)
	viper.SetDefault(oneFileSystemFlagName, false)
	viper.SetDefault(excludeFlagName, []string{})
	viper.SetDefault(nameFlagName, m.DefaultTargetName)
	viper.SetDefault(noColorFlagName, false)
	viper.SetDefault(logFileFlagName, "")

	// Logging defaults (used by env and as fallbacks for flags).
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Traversal records go to the rotated file named by --log-file (or
// RMDS_LOG_FILE); without one they are discarded so the operator-facing
// output stays the only thing on the terminal.
func configureLogger(logPath string) {
	if strings.TrimSpace(logPath) == "" {
		globalLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		slog.SetDefault(globalLogger)

		return
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseSlogLevel(viper.GetString(logLevelKey), slog.LevelDebug),
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
