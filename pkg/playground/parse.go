package playground

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/flowtrace/flowtrace"
)

// LogFormat is a string enum that can right now only be "yaml".
type LogFormat string

const (
	YAML LogFormat = "yaml"
)

// ParseLog parses a serialized event log and validates its ingestion
// invariants. The returned log is ready to hand to the reconstruction
// engine.
func ParseLog(input string) (*flowtrace.EventLog, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("event log input is empty")
	}

	var log flowtrace.EventLog
	if err := yaml.Unmarshal([]byte(input), &log); err != nil {
		return nil, fmt.Errorf("failed to parse event log: %w", err)
	}

	if log.Len() == 0 {
		return nil, fmt.Errorf("event log contains no events")
	}

	if err := log.Validate(); err != nil {
		return nil, fmt.Errorf("event log validation failed: %w", err)
	}

	return &log, nil
}

// NormalizeLog round-trips a serialized log through the codec, producing the
// canonical YAML form with explicit sequence numbers and mnemonics.
func NormalizeLog(input string) (string, error) {
	log, err := ParseLog(input)
	if err != nil {
		return "", err
	}

	out, err := yaml.Marshal(log)
	if err != nil {
		return "", fmt.Errorf("failed to marshal event log: %w", err)
	}
	return string(out), nil
}
