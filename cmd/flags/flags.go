package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/biosdk-services/common"
	"github.com/ruteri/biosdk-services/config"
	"github.com/ruteri/biosdk-services/engine"
	"github.com/ruteri/biosdk-services/httpserver"
	"github.com/ruteri/biosdk-services/metrics"
	"github.com/ruteri/biosdk-services/provider"
	"github.com/urfave/cli/v2"
)

// ApplyOverrides copies every explicitly set flag over cfg, so flags and
// env vars win over the config file.
func ApplyOverrides(cCtx *cli.Context, cfg *config.Config) {
	if cCtx.IsSet(EngineFlag.Name) {
		cfg.Engine = cCtx.String(EngineFlag.Name)
	}
	if cCtx.IsSet(LogRequestResponseFlag.Name) {
		cfg.LogRequestResponse = cCtx.Bool(LogRequestResponseFlag.Name)
	}
	if cCtx.IsSet(ListenAddrFlag.Name) {
		cfg.ListenAddr = cCtx.String(ListenAddrFlag.Name)
	}
	if cCtx.IsSet(MetricsAddrFlag.Name) {
		cfg.MetricsAddr = cCtx.String(MetricsAddrFlag.Name)
	}
	if cCtx.IsSet(PprofFlag.Name) {
		cfg.EnablePprof = cCtx.Bool(PprofFlag.Name)
	}
	if cCtx.IsSet(DrainSecondsFlag.Name) {
		cfg.DrainDuration = time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second
	}
	if cCtx.IsSet(LogJsonFlag.Name) {
		cfg.Log.JSON = cCtx.Bool(LogJsonFlag.Name)
	}
	if cCtx.IsSet(LogDebugFlag.Name) {
		cfg.Log.Debug = cCtx.Bool(LogDebugFlag.Name)
	}
	if cCtx.IsSet(LogUidFlag.Name) {
		cfg.Log.UID = cCtx.Bool(LogUidFlag.Name)
	}
	if cCtx.IsSet(LogServiceFlag.Name) {
		cfg.Log.Service = cCtx.String(LogServiceFlag.Name)
	}
	if cCtx.IsSet(LogFileFlag.Name) {
		cfg.Log.File = cCtx.String(LogFileFlag.Name)
	}
}

// LoadConfig reads the config file named by ConfigFileFlag, or the
// defaults when none is given, and applies flag overrides.
func LoadConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := cCtx.String(ConfigFileFlag.Name); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	ApplyOverrides(cCtx, cfg)
	return cfg, nil
}

func SetupLogger(cfg *config.Config) (log *slog.Logger) {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:      cfg.Log.Debug,
		JSON:       cfg.Log.JSON,
		Service:    cfg.Log.Service,
		Version:    common.Version,
		File:       cfg.Log.File,
		FileMaxAge: cfg.Log.MaxAge,
	})

	if cfg.Log.UID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cfg *config.Config, logger *slog.Logger) *httpserver.HTTPServerConfig {
	return &httpserver.HTTPServerConfig{
		ListenAddr:               cfg.ListenAddr,
		MetricsAddr:              cfg.MetricsAddr,
		Log:                      logger,
		EnablePprof:              cfg.EnablePprof,
		DrainDuration:            cfg.DrainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             60 * time.Second,
	}
}

// ComposeProvider loads the configured engine and wraps it in the provider
// matching its capability set. A blank or unknown engine is an error, so
// the server fails before serving anything.
func ComposeProvider(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (provider.ServiceProvider, error) {
	if err := engine.Lookup(cfg.Engine); err != nil {
		logger.Error("Invalid engine configuration", "engine", cfg.Engine, "available", engine.Identifiers(), "err", err)
		return nil, err
	}
	bioAPI, err := engine.Resolve(cfg.Engine)
	if err != nil {
		logger.Error("Failed to load engine", "engine", cfg.Engine, "err", err)
		return nil, err
	}

	serviceProvider, err := provider.New(provider.Config{
		Engine:             bioAPI,
		LogRequestResponse: cfg.LogRequestResponse,
		Log:                logger,
		Metrics:            m,
	})
	if err != nil {
		logger.Error("Failed to create service provider", "err", err)
		return nil, err
	}
	logger.Info("Engine loaded", "engine", cfg.Engine, "specVersion", serviceProvider.SpecVersion())
	return serviceProvider, nil
}

var ConfigFileFlag = &cli.StringFlag{
	Name:    "config",
	EnvVars: []string{"BIOSDK_CONFIG"},
	Usage:   "optional TOML config file; explicitly set flags override it",
}

var EngineFlag = &cli.StringFlag{
	Name:    "biosdk-bioapi-impl",
	EnvVars: []string{"BIOSDK_BIOAPI_IMPL"},
	Usage:   "identifier of the biometric engine to load",
}

var LogRequestResponseFlag = &cli.BoolFlag{
	Name:    "log-request-response",
	EnvVars: []string{"BIOSDK_LOG_REQUEST_RESPONSE"},
	Value:   false,
	Usage:   "log request models and responses at debug level (contains biometric data)",
}

var ListenAddrFlag = &cli.StringFlag{
	Name:    "listen-addr",
	EnvVars: []string{"BIOSDK_LISTEN_ADDR"},
	Value:   "127.0.0.1:9099",
	Usage:   "address to listen on for API",
}

var ServerAddrFlag = &cli.StringFlag{
	Name:    "server-addr",
	EnvVars: []string{"BIOSDK_SERVER_ADDR"},
	Value:   "http://127.0.0.1:9099",
	Usage:   "base URL of the biosdk service",
}

var LogJsonFlag = &cli.BoolFlag{
	Name:    "log-json",
	EnvVars: []string{"BIOSDK_LOG_JSON"},
	Value:   false,
	Usage:   "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	EnvVars: []string{"BIOSDK_LOG_DEBUG"},
	Value:   false,
	Usage:   "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: "biosdk-service",
	Usage: "add 'service' tag to logs",
}
var LogFileFlag = &cli.StringFlag{
	Name:    "log-file",
	EnvVars: []string{"BIOSDK_LOG_FILE"},
	Usage:   "also write logs to a daily rotated file, strftime pattern e.g. /var/log/biosdk.%Y%m%d.log",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:    "metrics-addr",
	EnvVars: []string{"BIOSDK_METRICS_ADDR"},
	Value:   "127.0.0.1:8090",
	Usage:   "address to listen on for Prometheus metrics",
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
	LogFileFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}
