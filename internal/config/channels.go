package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/pr-triage/internal/core"
)

var (
	ErrChannelConfigNotFound = errors.New("channel config file not found")
	ErrChannelConfigParsing  = errors.New("channel config parsing failed")
)

// DefaultChannelMap returns the built-in verdict-to-channel routing.
func DefaultChannelMap() map[core.Verdict]string {
	return map[core.Verdict]string{
		core.VerdictCritical:    "#dev-urgent",
		core.VerdictNeedsReview: "#dev-main",
		core.VerdictGood:        "#dev-feed",
	}
}

// LoadChannelMap loads a verdict-to-channel mapping from a YAML file, overlaid
// on the defaults. A missing file is not an error condition worth failing
// startup for: the defaults are returned together with
// ErrChannelConfigNotFound so callers can log and continue. Keys that do not
// name a canonical verdict are rejected.
func LoadChannelMap(path string) (map[core.Verdict]string, error) {
	channels := DefaultChannelMap()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return channels, ErrChannelConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChannelConfigParsing, err)
	}

	for key, channel := range raw {
		verdict := core.Verdict(key)
		if !verdict.IsValid() {
			return nil, fmt.Errorf("%w: unknown verdict %q", ErrChannelConfigParsing, key)
		}
		if channel == "" {
			return nil, fmt.Errorf("%w: empty channel for verdict %q", ErrChannelConfigParsing, key)
		}
		channels[verdict] = channel
	}
	return channels, nil
}
