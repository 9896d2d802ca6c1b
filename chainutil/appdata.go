// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainutil

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
)

// AppDataDir returns an operating system specific directory to be used for
// storing application data for an application with the given name.
//
// The appName argument is typically the name of the application calling
// this function, and roaming specifies whether or not the Windows roaming
// profile should be used. It has no effect on non-Windows systems.
func AppDataDir(appName string, roaming bool) string {
	if appName == "" || appName == "." {
		return "."
	}

	appName = strings.TrimPrefix(appName, ".")
	appNameUpper := string(unicodeUpper(appName[0])) + appName[1:]
	appNameLower := string(unicodeLower(appName[0])) + appName[1:]

	homeDir, err := userHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if roaming || appData == "" {
			if lp := os.Getenv("LOCALAPPDATA"); !roaming && lp != "" {
				appData = lp
			}
		}
		if appData != "" {
			return filepath.Join(appData, appNameUpper)
		}
		return filepath.Join(homeDir, appNameUpper)

	case "darwin":
		if homeDir != "" {
			return filepath.Join(homeDir, "Library", "Application Support", appNameUpper)
		}

	case "plan9":
		return filepath.Join(homeDir, appNameLower)

	default:
		if homeDir != "" {
			return filepath.Join(homeDir, "."+appNameLower)
		}
	}
	return "."
}

func userHomeDir() (string, error) {
	if dir := os.Getenv("HOME"); dir != "" {
		return dir, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

func unicodeUpper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func unicodeLower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
