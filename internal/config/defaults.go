package config

const (
	defaultDataDir               = "~/.local/share/commentwatch"
	defaultLogDir                = "~/.local/share/commentwatch/logs"
	defaultWorkerCommand         = "python3"
	defaultWorkerStartupTimeout  = 30
	defaultWorkerResponseTimeout = 60
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Worker: Worker{
			Command:         defaultWorkerCommand,
			StartupTimeout:  defaultWorkerStartupTimeout,
			ResponseTimeout: defaultWorkerResponseTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
