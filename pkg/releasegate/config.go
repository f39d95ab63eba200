// Copyright (C) 2026  Ambassador Labs
//
// SPDX-License-Identifier: Apache-2.0

package releasegate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/datawire/releasegate/pkg/github"
)

// Config is everything the Gate needs to know.  It is assembled by the caller (from defaults, an
// optional config file, the environment, and flags) and handed to New; the Gate never consults
// the process environment itself.
type Config struct {
	// ChangelogPath is the file whose header declares the version being released.
	ChangelogPath string `json:"changelog,omitempty"`
	// TagPrefix is prepended to a version to form its release tag name.
	TagPrefix string `json:"tagPrefix,omitempty"`
	// Repository is the "OWNER/NAME" of the repository on the hosting platform.
	Repository string `json:"repository,omitempty"`
	// ReleaseBranch, if set, is the only branch that tags may be created from.
	ReleaseBranch string `json:"releaseBranch,omitempty"`
	// APIURL is the base URL of the hosting platform's REST API.
	APIURL string `json:"apiURL,omitempty"`
	// ServerURL is the base URL of the hosting platform's web interface, used to link to the
	// changelog from the release notes.
	ServerURL string `json:"serverURL,omitempty"`

	// APIToken is a bearer credential for creating releases.  It may only come from the
	// environment, never from a file.
	APIToken string `json:"-"`
	// DryRun makes CreateTag log what it would do instead of creating the release.
	DryRun bool `json:"-"`
}

const DefaultConfigFile = ".releasegate.yaml"

func DefaultConfig() Config {
	return Config{
		ChangelogPath: "CHANGELOG.rst",
		TagPrefix:     "v",
		APIURL:        github.DefaultBaseURL,
		ServerURL:     "https://github.com",
	}
}

// LoadConfigFile merges the settings in a YAML file in to cfg.  Settings that the file does not
// mention keep their current values.  Unknown settings are an error.
func LoadConfigFile(filename string, cfg *Config) error {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(bs, cfg, yaml.DisallowUnknownFields); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// ApplyEnv overrides settings in cfg from environment variables, as set by GitHub Actions.
// lookup is normally os.LookupEnv.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) {
	for _, item := range []struct {
		name string
		dst  *string
	}{
		{"GITHUB_TOKEN", &cfg.APIToken},
		{"GITHUB_REPOSITORY", &cfg.Repository},
		{"GITHUB_API_URL", &cfg.APIURL},
		{"GITHUB_SERVER_URL", &cfg.ServerURL},
		{"RELEASEGATE_RELEASE_BRANCH", &cfg.ReleaseBranch},
	} {
		if val, ok := lookup(item.name); ok && val != "" {
			*item.dst = val
		}
	}
}

// Validate checks that cfg is usable.  Creating tags (forTagging) needs more settings than
// verification does.
func (cfg Config) Validate(forTagging bool) error {
	var errs []string
	if cfg.ChangelogPath == "" {
		errs = append(errs, "no changelog path")
	}
	if strings.ContainsAny(cfg.TagPrefix, " \t\n~^:?*[\\") {
		errs = append(errs, fmt.Sprintf("tag prefix %q contains characters that git does not allow in tag names", cfg.TagPrefix))
	}
	if forTagging {
		if cfg.APIToken == "" {
			errs = append(errs, "no API token (set GITHUB_TOKEN)")
		}
		if cfg.Repository == "" {
			errs = append(errs, "no repository (set GITHUB_REPOSITORY or --repository)")
		} else if err := github.ValidateRepository(cfg.Repository); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}
