package app

const (
	Name           = "crashboard"
	DisplayName    = "Crash Recorder Dashboard"
	ConfigFilename = "config.json"
	LogFilename    = "app.log"
)
