package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset is a named partial override of Tuning. Only the keys present in
// the YAML mapping are applied.
type Preset struct {
	Name   string    `yaml:"name"`
	Tuning yaml.Node `yaml:"tuning"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// PresetTable holds difficulty presets indexed by name.
type PresetTable struct {
	presets map[string]*Preset
}

// LoadPresetTable loads difficulty presets from a YAML file.
func LoadPresetTable(path string) (*PresetTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return ParsePresetTable(data)
}

func ParsePresetTable(data []byte) (*PresetTable, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	t := &PresetTable{presets: make(map[string]*Preset, len(f.Presets))}
	for i := range f.Presets {
		p := &f.Presets[i]
		if p.Name == "" {
			return nil, fmt.Errorf("parse presets: entry %d has no name", i)
		}
		t.presets[p.Name] = p
	}
	return t, nil
}

func (t *PresetTable) Names() []string {
	out := make([]string, 0, len(t.presets))
	for name := range t.presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Apply returns base with the named preset's overrides decoded over it.
func (t *PresetTable) Apply(name string, base Tuning) (Tuning, error) {
	p, ok := t.presets[name]
	if !ok {
		return base, fmt.Errorf("unknown preset %q", name)
	}
	if p.Tuning.Kind == 0 {
		return base, nil
	}
	out := base
	if err := p.Tuning.Decode(&out); err != nil {
		return base, fmt.Errorf("decode preset %q: %w", name, err)
	}
	return out, nil
}

// ResolveTuning applies cfg.Preset from cfg.PresetsPath, if both are set.
func ResolveTuning(cfg *Config) (Tuning, error) {
	if cfg.Preset == "" || cfg.PresetsPath == "" {
		return cfg.Tuning, nil
	}
	table, err := LoadPresetTable(cfg.PresetsPath)
	if err != nil {
		return cfg.Tuning, err
	}
	return table.Apply(cfg.Preset, cfg.Tuning)
}
