package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samcharles93/aepdown/internal/history"
	"github.com/samcharles93/aepdown/internal/logger"
	"github.com/samcharles93/aepdown/pkg/aep"
)

const envAepdownOutputDir = "AEPDOWN_OUTPUT_DIR"

// stderrIsTTY is a small seam for tests.
var stderrIsTTY = func() bool { return logger.IsTerminal(os.Stderr) }

// resolveOutDir picks the output directory: the flag (or config value) first,
// then AEPDOWN_OUTPUT_DIR. An empty result places outputs beside their inputs.
func resolveOutDir(outFlag string) (string, error) {
	outDir := strings.TrimSpace(outFlag)
	if outDir == "" {
		outDir = strings.TrimSpace(os.Getenv(envAepdownOutputDir))
	}
	if outDir == "" {
		return "", nil
	}
	outDir = filepath.Clean(outDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	return outDir, nil
}

// parseTargets accepts repeated or comma separated version names.
func parseTargets(raw []string) ([]aep.Version, error) {
	var out []aep.Version
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := aep.ParseVersion(part)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}
	return out, nil
}

// resolveHistoryPath returns "" when history is disabled.
func resolveHistoryPath(flagPath string, disabled bool) string {
	if disabled {
		return ""
	}
	p := strings.TrimSpace(flagPath)
	switch strings.ToLower(p) {
	case "off", "none", "false":
		return ""
	case "":
		return history.DefaultPath()
	}
	return filepath.Clean(p)
}
