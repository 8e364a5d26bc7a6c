package cmd

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "truthcheck"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName  = "output"
	verboseFlagName = "verbose"
	logFileFlagName = "log-file"

	thresholdFlagName       = "threshold"
	applyFixFlagName        = "apply-fix"
	passIfFixedFlagName     = "pass-if-fixed"
	openReportFlagName      = "open-report"
	sessionLayerFlagName    = "session-layer"
	rendererFlagName        = "renderer"
	widthFlagName           = "width"
	cameraFlagName          = "camera"
	colorCorrectionFlagName = "color-correction"
	complexityFlagName      = "complexity"
	formatFlagName          = "format"

	thresholdKey       = "check.threshold"
	applyFixKey        = "check.apply_fix"
	passIfFixedKey     = "check.pass_if_fixed"
	openReportKey      = "check.open_report"
	sessionLayerKey    = "check.session_layer"
	rendererKey        = "render.renderer"
	widthKey           = "render.width"
	cameraKey          = "render.camera"
	colorCorrectionKey = "render.color_correction"
	complexityKey      = "render.complexity"
	reportFormatKey    = "report.format"

	defaultOutputDir       = "out"
	defaultThreshold       = 0.95
	defaultApplyFix        = true
	defaultPassIfFixed     = true
	defaultOpenReport      = false
	defaultSessionLayer    = ""
	defaultRenderer        = "Storm"
	defaultWidth           = 640
	defaultCamera          = "/World/Cam"
	defaultColorCorrection = "sRGB"
	defaultComplexity      = "medium"
	defaultReportFormat    = "json"

	envPrefix = "TRUTHCHECK"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".truthcheck.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultOutputDir)

	viper.SetDefault(thresholdKey, defaultThreshold)
	viper.SetDefault(applyFixKey, defaultApplyFix)
	viper.SetDefault(passIfFixedKey, defaultPassIfFixed)
	viper.SetDefault(openReportKey, defaultOpenReport)
	viper.SetDefault(sessionLayerKey, defaultSessionLayer)

	viper.SetDefault(rendererKey, defaultRenderer)
	viper.SetDefault(widthKey, defaultWidth)
	viper.SetDefault(cameraKey, defaultCamera)
	viper.SetDefault(colorCorrectionKey, defaultColorCorrection)
	viper.SetDefault(complexityKey, defaultComplexity)

	viper.SetDefault(reportFormatKey, defaultReportFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	// Flags, environment and defaults still apply without a config file.
	_ = viper.ReadInConfig()
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
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
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
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
