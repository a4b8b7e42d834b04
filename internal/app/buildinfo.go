package app

import (
	"fmt"
	"strings"
	"time"
)

var (
	// Version is set with -ldflags "-X" in release builds.
	Version = "dev"
	// BuildDate is set with -ldflags "-X" in release builds.
	BuildDate = ""
)

const buildDateLayout = "2006-01-02"

func BuildVersion() string {
	if version := strings.TrimSpace(Version); version != "" {
		return version
	}

	return "dev"
}

// BuildDateYMD reduces BuildDate to a calendar date when it can be parsed.
func BuildDateYMD() string {
	raw := strings.TrimSpace(BuildDate)
	if raw == "" {
		return ""
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed.Format(buildDateLayout)
	}
	if len(raw) >= len(buildDateLayout) {
		if _, err := time.Parse(buildDateLayout, raw[:len(buildDateLayout)]); err == nil {
			return raw[:len(buildDateLayout)]
		}
	}

	return raw
}

func BuildVersionWithDate() string {
	date := BuildDateYMD()
	if date == "" {
		return BuildVersion()
	}

	return fmt.Sprintf("%s (%s)", BuildVersion(), date)
}
