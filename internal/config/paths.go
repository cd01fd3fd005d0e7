// Package config handles settings loading, saving, and path resolution.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// GlobalDirName is the name of the global trajview directory.
	GlobalDirName = ".trajview"

	// SettingsFileName is the name of the settings file within the global directory.
	SettingsFileName = "settings.yaml"
)

// Default source layout. The agent runtime keeps one directory per
// conversation under ~/.openhands/conversations.
const (
	SourceHomeDirName    = ".openhands"
	ConversationsDirName = "conversations"
)

// GlobalDir returns the path to the global trajview directory (~/.trajview/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// EnsureGlobalDir creates the global trajview directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DefaultConversationsDir returns ~/.openhands/conversations, the fixed
// default source of trajectory data.
func DefaultConversationsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, SourceHomeDirName, ConversationsDirName), nil
}

// ResolveConversationsDir resolves a user-supplied source path. An empty
// input selects the default directory. When the supplied path contains a
// conversations subdirectory, that subdirectory is used instead. The boolean
// reports whether the result differs from the default.
func ResolveConversationsDir(input string) (string, bool, error) {
	defaultDir, err := DefaultConversationsDir()
	if err != nil {
		return "", false, err
	}
	if input == "" {
		return defaultDir, false, nil
	}

	path := input
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}
		path = home
	} else if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}
		path = filepath.Join(home, path[2:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false, err
	}
	if sub := filepath.Join(abs, ConversationsDirName); isDir(sub) {
		abs = sub
	}
	return abs, abs != defaultDir, nil
}

// isDir reports whether path exists and is a directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
