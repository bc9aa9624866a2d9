// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads provider credentials from a directory of
// plain-text files, one secret per file: the filename is the key name
// and the trimmed contents are the value.
//
// Supported key files: ebird-api-key, nps-api-key, redis-password.
package secrets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// KnownKeys lists the secret files the dashboard consumes. Files with
// other names are still loaded; callers just never look them up.
var KnownKeys = []string{"ebird-api-key", "nps-api-key", "redis-password"}

// Load reads every regular file in dir into a key-to-value map. A
// missing directory yields an empty map, not an error; the secrets
// directory is optional. Dotfiles, subdirectories, and files that are
// empty after trimming are skipped. Unreadable files produce a warning
// on stderr and are skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if skipEntry(entry, name) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

func skipEntry(entry fs.DirEntry, name string) bool {
	return entry.IsDir() || strings.HasPrefix(name, ".")
}
