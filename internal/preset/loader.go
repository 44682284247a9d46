package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned when a named preset file does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// Paths helper for default/preset files.
type Paths struct {
	BaseDir string // base directory, e.g., /opt/app/config
}

func (p Paths) Dir() string {
	return filepath.Join(p.BaseDir, "presets")
}
func (p Paths) DefaultPath() string {
	return filepath.Join(p.Dir(), "default.yaml")
}
func (p Paths) PresetPath(name string) string {
	return filepath.Join(p.Dir(), name+".yaml")
}

// Loader reads YAML presets and merges default → preset.
type Loader struct {
	paths Paths

	mu    sync.RWMutex
	cache map[string]RawConfig // key: preset name, "" for default only
	gen   uint64               // bumped by Invalidate
}

// NewLoader creates a preset loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{
		paths: Paths{BaseDir: baseDir},
		cache: make(map[string]RawConfig),
	}
}

// Paths returns the file locations used by the loader.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads default.yaml and merges the named preset over it.
// An empty name returns the default layer alone.
func (l *Loader) LoadMerged(name string) (RawConfig, error) {
	if err := checkName(name); err != nil {
		return RawConfig{}, err
	}
	l.mu.RLock()
	if cfg, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return cfg, nil
	}
	gen := l.gen
	l.mu.RUnlock()

	merged, err := l.readMerged(name)
	if err != nil {
		return RawConfig{}, err
	}
	l.store(name, gen, merged)
	return merged, nil
}

// store caches cfg unless Invalidate ran after gen was observed; a read that
// raced a reload may hold the old file contents.
func (l *Loader) store(name string, gen uint64, cfg RawConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen == gen {
		l.cache[name] = cfg
	}
}

func (l *Loader) readMerged(name string) (RawConfig, error) {
	defCfg, _, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	merged := defCfg
	if name != "" {
		presetCfg, found, err := readYAML(l.paths.PresetPath(name))
		if err != nil {
			return RawConfig{}, fmt.Errorf("read preset %q: %w", name, err)
		}
		if !found {
			return RawConfig{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
		}
		merged = mergeRaw(defCfg, presetCfg)
	}
	if err := ValidateRaw(merged); err != nil {
		return RawConfig{}, fmt.Errorf("preset %q: %w", name, err)
	}
	return merged, nil
}

// List returns the names of all presets except default, sorted.
func (l *Loader) List() ([]string, error) {
	entries, err := os.ReadDir(l.paths.Dir())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, ".yaml") {
			continue
		}
		n = strings.TrimSuffix(n, ".yaml")
		if n == "default" {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate clears loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = make(map[string]RawConfig)
	l.gen++
}

func checkName(name string) error {
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg and found=false.
func readYAML(path string) (RawConfig, bool, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, false, nil
		}
		return RawConfig{}, false, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, false, err
	}
	return cfg, true, nil
}

// mergeRaw overrides 'a' with every field set in 'b'.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// pool
	if b.Pool.Size != nil {
		out.Pool.Size = b.Pool.Size
	}
	if b.Pool.Poison != nil {
		out.Pool.Poison = b.Pool.Poison
	}

	// draw
	if b.Draw.Count != nil {
		out.Draw.Count = b.Draw.Count
	}
	if b.Draw.Rounds != nil {
		out.Draw.Rounds = b.Draw.Rounds
	}
	if b.Draw.Diminishing != nil {
		out.Draw.Diminishing = b.Draw.Diminishing
	}

	// simulation
	if b.Simulation.Trials != nil {
		out.Simulation.Trials = b.Simulation.Trials
	}
	if b.Simulation.Bins != nil {
		out.Simulation.Bins = b.Simulation.Bins
	}

	return out
}
