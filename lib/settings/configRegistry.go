package settings

import "strings"

const (
	Title = "title"
	IP    = "ip"
	Port  = "port"

	DBType             = "dbType"
	DBSettingsFilename = "dbSettings.filename"
	DBSettingsHost     = "dbSettings.host"
	DBSettingsPort     = "dbSettings.port"
	DBSettingsDatabase = "dbSettings.database"
	DBSettingsUser     = "dbSettings.user"
	DBSettingsPassword = "dbSettings.password"

	DefaultDocumentText = "defaultDocumentText"

	ReplayDefaultCharsPerSecond = "replay.defaultCharsPerSecond"
	ReplayMinCharsPerSecond     = "replay.minCharsPerSecond"
	ReplayMaxCharsPerSecond     = "replay.maxCharsPerSecond"
	ReplayAnimateDeletions      = "replay.animateDeletions"
	ReplaySequencePauseMs       = "replay.sequencePauseMs"

	EnableMetrics = "enableMetrics"
	Loglevel      = "logLevel"
	ExposeVersion = "exposeVersion"
)

const envPrefix = "TYPECAST"

func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(
		strings.ReplaceAll(key, ".", "_"),
	)
}
