// Package config provides the task manifest loader for ptask.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.trai.ch/ptask/internal/core/domain"
	"go.trai.ch/ptask/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only manifest version understood by the loader.
const SupportedVersion = "1"

// ManifestFilenames are searched, in order, when Load is given a directory.
var ManifestFilenames = []string{"ptask.yaml", "ptask.yml", "ptask.toml"}

// Loader implements ports.ManifestLoader for YAML and TOML files.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the manifest at path. If path is a directory, the nearest manifest in
// it or one of its parents is used.
func (l *Loader) Load(path string) (*domain.Manifest, error) {
	resolved, err := Discover(path)
	if err != nil {
		return nil, err
	}
	if resolved != path {
		l.logger.Debug(fmt.Sprintf("using manifest %s", resolved))
	}
	return Load(resolved)
}

// Discover returns path itself if it is a file; for a directory it walks up to the
// filesystem root looking for one of ManifestFilenames.
func Discover(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat manifest"), "path", path)
	}
	if !info.IsDir() {
		return path, nil
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve manifest directory")
	}
	for {
		for _, name := range ManifestFilenames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", zerr.With(zerr.Wrap(os.ErrNotExist, "no manifest found"), "path", path)
}

// Load reads a manifest file, choosing the decoder by extension, and validates it.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest file")
	}

	var m Manifest
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = decodeYAML(data, &m)
	case ".toml":
		err = decodeTOML(data, &m)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestInvalid, "unsupported manifest format"), "extension", ext)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse manifest file"), "path", path)
	}

	manifest, err := m.toDomain()
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return manifest, nil
}

func decodeYAML(data []byte, m *Manifest) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeTOML(data []byte, m *Manifest) error {
	meta, err := toml.Decode(string(data), m)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return zerr.With(zerr.New("unknown manifest keys"), "keys", fmt.Sprint(undecoded))
	}
	return nil
}

func (m *Manifest) toDomain() (*domain.Manifest, error) {
	if m.Version != "" && m.Version != SupportedVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestInvalid, "unsupported manifest version"), "version", m.Version)
	}

	manifest := &domain.Manifest{
		MaxCommandLine: m.MaxCommandLine,
		Tasks:          make([]domain.TaskSpec, 0, len(m.Tasks)),
	}
	if m.TickInterval != "" {
		d, err := time.ParseDuration(m.TickInterval)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrManifestInvalid, "invalid tick interval"), "tick_interval", m.TickInterval)
		}
		manifest.TickInterval = d
	}
	if m.MaxCommandLine < 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestInvalid, "max command line is negative"), "max_command_line", m.MaxCommandLine)
	}

	for _, dto := range m.Tasks {
		manifest.Tasks = append(manifest.Tasks, domain.TaskSpec{
			Name:       strings.TrimSpace(dto.Name),
			Executable: dto.Executable,
			Args:       dto.Args,
		})
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}
