package settings

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

func ReadConfig(jsonStr string) (*Settings, error) {
	viper.SetConfigName("settings")
	viper.SetConfigType("json")

	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(strings.ToLower(envPrefix))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if jsonStr != "" {
		if err := viper.ReadConfig(strings.NewReader(jsonStr)); err != nil {
			return nil, err
		}
	} else {
		if err := viper.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, err
			}
			// no config file is fine, defaults apply
		}
	}

	viper.SetDefault(Title, "Typecast")
	viper.SetDefault(IP, "0.0.0.0")
	viper.SetDefault(Port, "9003")

	viper.SetDefault(DBType, SQLITE)
	viper.SetDefault(DBSettingsFilename, "var/typecast.db")
	viper.SetDefault(DBSettingsHost, nil)
	viper.SetDefault(DBSettingsPort, nil)
	viper.SetDefault(DBSettingsDatabase, nil)
	viper.SetDefault(DBSettingsUser, nil)
	viper.SetDefault(DBSettingsPassword, nil)

	viper.SetDefault(DefaultDocumentText, "")

	viper.SetDefault(ReplayDefaultCharsPerSecond, 50.0)
	viper.SetDefault(ReplayMinCharsPerSecond, 1.0)
	viper.SetDefault(ReplayMaxCharsPerSecond, 1000.0)
	viper.SetDefault(ReplayAnimateDeletions, false)
	viper.SetDefault(ReplaySequencePauseMs, 1500)

	viper.SetDefault(EnableMetrics, true)
	viper.SetDefault(Loglevel, "INFO")
	viper.SetDefault(ExposeVersion, false)

	dbTypeToUse, err := ParseDBType(viper.GetString(DBType))
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Title: viper.GetString(Title),
		IP:    viper.GetString(IP),
		Port:  viper.GetString(Port),

		DBType: dbTypeToUse,
		DBSettings: &DBSettings{
			Filename: viper.GetString(DBSettingsFilename),
			Host:     viper.GetString(DBSettingsHost),
			Port:     viper.GetString(DBSettingsPort),
			Database: viper.GetString(DBSettingsDatabase),
			User:     viper.GetString(DBSettingsUser),
			Password: viper.GetString(DBSettingsPassword),
		},

		DefaultDocumentText: viper.GetString(DefaultDocumentText),

		Replay: ReplaySettings{
			DefaultCharsPerSecond: viper.GetFloat64(ReplayDefaultCharsPerSecond),
			MinCharsPerSecond:     viper.GetFloat64(ReplayMinCharsPerSecond),
			MaxCharsPerSecond:     viper.GetFloat64(ReplayMaxCharsPerSecond),
			AnimateDeletions:      viper.GetBool(ReplayAnimateDeletions),
			SequencePauseMs:       viper.GetInt(ReplaySequencePauseMs),
		},

		EnableMetrics: viper.GetBool(EnableMetrics),
		LogLevel:      viper.GetString(Loglevel),
		ExposeVersion: viper.GetBool(ExposeVersion),
	}

	return s, nil
}
