package storage

import (
	"os"
	"path/filepath"
)

// Directory and file names under the application root.
const (
	appDirName   = "WriteApp"
	draftsDir    = "drafts"
	flowFile     = "flow.json"
	settingsFile = "settings.json"
	themeFile    = "theme.toml"
	logFile      = "writeapp.log"
)

// EnvDirOverride names the environment variable that overrides the base
// directory. Used by tests and by users who keep their documents elsewhere.
const EnvDirOverride = "WRITEAPP_DIR"

// DefaultBaseDir resolves the application base directory: the WriteApp folder
// under the platform documents root, or under the home directory when no
// Documents folder exists. The WRITEAPP_DIR environment variable wins when set.
func DefaultBaseDir() string {
	if dir := os.Getenv(EnvDirOverride); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return appDirName
	}

	docs := filepath.Join(home, "Documents")
	if info, err := os.Stat(docs); err == nil && info.IsDir() {
		return filepath.Join(docs, appDirName)
	}
	return filepath.Join(home, appDirName)
}

// BaseDir returns the configured base directory.
func (s *Store) BaseDir() string { return s.base }

// DraftsDir returns the directory holding draft files.
func (s *Store) DraftsDir() string { return filepath.Join(s.base, draftsDir) }

// FlowPath returns the path of the session log.
func (s *Store) FlowPath() string { return filepath.Join(s.base, flowFile) }

// SettingsPath returns the path of the settings record.
func (s *Store) SettingsPath() string { return filepath.Join(s.base, settingsFile) }

// ThemePath returns the path of the optional theme file.
func (s *Store) ThemePath() string { return filepath.Join(s.base, themeFile) }

// LogPath returns the path of the debug log file.
func (s *Store) LogPath() string { return filepath.Join(s.base, logFile) }
