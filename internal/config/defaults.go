package config

const (
	defaultProcessDir     = "/config/process"
	defaultShowsDir       = "/config/shows"
	defaultMoviesDir      = "/config/movies"
	defaultCollectionsDir = "/config/collections"
	defaultFailedDir      = "/config/failed"
	defaultBackupDir      = "/config/backup"
	defaultLogDir         = "/config/logs"
	defaultImageQuality   = 85
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. The directory
// defaults match the container layout the tool ships with.
func Default() Config {
	return Config{
		ProcessDir:     defaultProcessDir,
		ShowsDir:       defaultShowsDir,
		MoviesDir:      defaultMoviesDir,
		CollectionsDir: defaultCollectionsDir,
		FailedDir:      defaultFailedDir,
		BackupDir:      defaultBackupDir,
		LogDir:         defaultLogDir,
		ImageQuality:   defaultImageQuality,
		LogFormat:      defaultLogFormat,
		LogLevel:       defaultLogLevel,
	}
}
