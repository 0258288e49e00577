package profile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cvforge/internal/config"
	"cvforge/internal/model"
)

// DefaultPath returns the standard profile location inside the config dir.
func DefaultPath() string {
	return filepath.Join(config.Dir(), "profile.yaml")
}

// Load reads the profile at path. A missing file yields an empty profile;
// an unreadable one is moved aside to path+".bak" so the next Save starts
// clean. Load never fails.
func Load(path string, logger *slog.Logger) model.Profile {
	var p model.Profile

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p
	}
	if err != nil {
		logger.Warn("cannot read profile, starting empty", "path", path, "error", err)
		return p
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		backup := path + ".bak"
		if renameErr := os.Rename(path, backup); renameErr != nil {
			logger.Warn("cannot move corrupt profile aside", "path", path, "error", renameErr)
		} else {
			logger.Warn("profile was corrupt, moved aside", "path", path, "backup", backup, "error", err)
		}
		return model.Profile{}
	}
	return p
}

// Save writes the profile as YAML, creating parent directories as needed.
// The file is written atomically and kept private to the user.
func Save(p model.Profile, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating profile directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing profile: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing profile: %w", err)
	}
	return nil
}

// Merge fills empty fields of cur with values from imported. Fields the
// user already filled in are never overwritten.
func Merge(cur, imported model.Profile) model.Profile {
	fill := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
		}
	}
	fill(&cur.Name, imported.Name)
	fill(&cur.Email, imported.Email)
	fill(&cur.Phone, imported.Phone)
	fill(&cur.JobRole, imported.JobRole)
	fill(&cur.Summary, imported.Summary)
	fill(&cur.Education, imported.Education)
	fill(&cur.Experience, imported.Experience)
	fill(&cur.Skills, imported.Skills)
	fill(&cur.Certifications, imported.Certifications)
	return cur
}
