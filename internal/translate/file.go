package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"durazubs/internal/logging"
	"durazubs/internal/scenes"
	"durazubs/internal/trackio"
)

// ErrResponsePending is returned after a request file was written and no
// response file exists yet.
var ErrResponsePending = errors.New("translation response pending")

// FileRoundTrip hands translation to an external party through files: the
// chunked request payload is written to RequestPath, and translated lines are
// read back from ResponsePath on a later run.
type FileRoundTrip struct {
	RequestPath  string
	ResponsePath string
	ChunkSize    int
	Target       string
	Logger       *slog.Logger
}

// Translate returns the contents of the response file when it exists.
// Otherwise it writes the request file and returns ErrResponsePending.
func (f *FileRoundTrip) Translate(ctx context.Context, lines []string) ([]string, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	logger := f.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	if strings.TrimSpace(f.ResponsePath) == "" {
		return nil, errors.New("translation response file not configured")
	}
	if _, err := os.Stat(f.ResponsePath); err == nil {
		translated, err := ReadResponse(ctx, f.ResponsePath)
		if err != nil {
			return nil, err
		}
		if len(translated) != len(lines) {
			logger.Warn("translation count differs from scene lines",
				logging.String("response_file", f.ResponsePath),
				logging.Int("scene_lines", len(lines)),
				logging.Int("translations", len(translated)),
			)
		}
		return translated, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", f.ResponsePath, err)
	}

	request := f.RequestPath
	if strings.TrimSpace(request) == "" {
		request = strings.TrimSuffix(f.ResponsePath, filepath.Ext(f.ResponsePath)) + ".request.txt"
	}
	payload := scenes.Instruct(lines, f.ChunkSize, f.Target)
	if err := (trackio.Sink{Path: request}).WriteLines(ctx, payload); err != nil {
		return nil, fmt.Errorf("write translation request: %w", err)
	}
	logger.Info("translation request written",
		logging.String("request_file", request),
		logging.String("response_file", f.ResponsePath),
		logging.Int("lines", len(lines)),
	)
	return nil, fmt.Errorf("%w: translate %s and save the result as %s", ErrResponsePending, request, f.ResponsePath)
}

// ReadResponse loads translated lines. Files ending in .yaml or .yml hold a
// YAML sequence of strings; anything else is read as plain lines, ignoring
// Markdown code fences and trailing blank lines.
func ReadResponse(ctx context.Context, path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var lines []string
		if err := yaml.Unmarshal(data, &lines); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return lines, nil
	}
	raw, err := trackio.Source{Path: path}.ReadLines(ctx)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		lines = append(lines, line)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// WriteResponse stores translated lines in the format ReadResponse expects
// for path.
func WriteResponse(ctx context.Context, path string, lines []string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(lines)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		return (trackio.Sink{Path: path}).WriteLines(ctx, strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"))
	}
	return (trackio.Sink{Path: path}).WriteLines(ctx, lines)
}
