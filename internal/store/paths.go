package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "xiangqi"

// DefaultDir 返回平台数据目录下的存档目录，不存在则创建。
// - macOS: ~/Library/Application Support/xiangqi/archive
// - Linux: $XDG_DATA_HOME/xiangqi/archive 或 ~/.local/share/xiangqi/archive
// - Windows: %APPDATA%/xiangqi/archive
func DefaultDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dir := filepath.Join(baseDir, appName, "archive")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
