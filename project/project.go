package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the project file looked up in the root
// directory.
const ConfigFile = "jsxparse.yaml"

// DefaultExtensions are the file extensions treated as JavaScript sources
// when the project file does not list any.
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs"}

// DefaultExclude are directory names never descended into.
var DefaultExclude = []string{"node_modules", ".git"}

// Project is the configuration shared by the CLI commands, the watcher and
// the conformance runner.
type Project struct {
	RootDir    string    `yaml:"-"`
	ConfigPath string    `yaml:"-"`
	Extensions []string  `yaml:"extensions"`
	Exclude    []string  `yaml:"exclude"`
	Workers    int       `yaml:"workers"`
	ReportDir  string    `yaml:"report_dir"`
	Log        LogConfig `yaml:"log"`
}

// LogConfig configures commonlog. Verbosity follows commonlog: 0 logs
// errors only and each step adds a level.
type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

// Default returns the configuration used when rootDir has no project file.
func Default(rootDir string) *Project {
	return &Project{
		RootDir:    rootDir,
		Extensions: slices.Clone(DefaultExtensions),
		Exclude:    slices.Clone(DefaultExclude),
		Workers:    runtime.NumCPU(),
		ReportDir:  rootDir,
	}
}

// Load reads the project file of the current directory.
func Load() (*Project, error) {
	return LoadFrom(".")
}

// LoadFrom reads rootDir/jsxparse.yaml. A missing file yields the
// defaults.
func LoadFrom(rootDir string) (*Project, error) {
	path := filepath.Join(rootDir, ConfigFile)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(rootDir), nil
	}
	return LoadFile(path)
}

// LoadFile reads a project file from an explicit path. The root directory
// is the directory containing it.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	p := Default(filepath.Dir(path))
	p.Extensions = nil
	p.Exclude = nil
	p.Workers = 0
	p.ReportDir = ""

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	p.ConfigPath = path

	if err := p.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func (p *Project) normalize() error {
	if p.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", p.Workers)
	}
	if p.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", p.Log.Verbosity)
	}
	if p.Workers == 0 {
		p.Workers = runtime.NumCPU()
	}
	p.SetExtensions(p.Extensions)
	if p.Exclude == nil {
		p.Exclude = slices.Clone(DefaultExclude)
	}
	if p.ReportDir == "" {
		p.ReportDir = p.RootDir
	} else if !filepath.IsAbs(p.ReportDir) {
		p.ReportDir = filepath.Join(p.RootDir, p.ReportDir)
	}
	return nil
}

// SetExtensions replaces the source extensions. A missing leading dot is
// added, and an empty list restores the defaults.
func (p *Project) SetExtensions(exts []string) {
	if len(exts) == 0 {
		p.Extensions = slices.Clone(DefaultExtensions)
		return
	}
	p.Extensions = make([]string, len(exts))
	for i, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.Extensions[i] = ext
	}
}

// HasSourceExtension reports whether path ends in one of the configured
// extensions.
func (p *Project) HasSourceExtension(path string) bool {
	return slices.Contains(p.Extensions, filepath.Ext(path))
}

// Excluded reports whether a directory with this base name is skipped.
func (p *Project) Excluded(name string) bool {
	return slices.Contains(p.Exclude, name)
}

// SourceFiles returns all source files under dir, recursively, in lexical
// order. Excluded directories are not entered.
func (p *Project) SourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && p.Excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if p.HasSourceExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan source files in %s: %w", dir, err)
	}
	return files, nil
}
