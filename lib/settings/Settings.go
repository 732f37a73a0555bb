package settings

import (
	"fmt"
	"strings"
)

type IDBType string

const (
	SQLITE   IDBType = "sqlite"
	MEMORY   IDBType = "memory"
	POSTGRES IDBType = "postgres"
)

func ParseDBType(s string) (IDBType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite":
		return SQLITE, nil
	case "memory":
		return MEMORY, nil
	case "postgres":
		return POSTGRES, nil
	default:
		return "", fmt.Errorf("unknown DB type: %q", s)
	}
}

func (dbType IDBType) String() string {
	return string(dbType)
}

type DBSettings struct {
	Filename string
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

// ReplaySettings hold the typing behaviour defaults. Per-request values may
// override the rate within [MinCharsPerSecond, MaxCharsPerSecond].
type ReplaySettings struct {
	DefaultCharsPerSecond float64
	MinCharsPerSecond     float64
	MaxCharsPerSecond     float64
	AnimateDeletions      bool
	SequencePauseMs       int
}

type Settings struct {
	Title string
	IP    string
	Port  string

	DBType     IDBType
	DBSettings *DBSettings

	DefaultDocumentText string
	Replay              ReplaySettings

	EnableMetrics bool
	LogLevel      string
	ExposeVersion bool
}
