package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/danmaku/internal/gameplay"
)

// File is the on-disk shape of the difficulty options.
type File struct {
	FunMode      bool    `yaml:"fun_mode"`
	PlayerSpeed  float64 `yaml:"player_speed"`
	ShotCooldown int     `yaml:"shot_cooldown"`
	GrazeRadius  float64 `yaml:"graze_radius"`
	StartLives   int     `yaml:"start_lives"`
	StartBombs   int     `yaml:"start_bombs"`
	Seed         uint64  `yaml:"seed"`
}

// DefaultFile returns the file form of gameplay.DefaultOptions.
func DefaultFile() File {
	return FromOptions(gameplay.DefaultOptions())
}

// FromOptions converts gameplay options to their file form.
func FromOptions(o gameplay.Options) File {
	return File{
		FunMode:      o.FunMode,
		PlayerSpeed:  o.PlayerSpeed,
		ShotCooldown: o.ShotCooldown,
		GrazeRadius:  o.GrazeRadius,
		StartLives:   o.StartLives,
		StartBombs:   o.StartBombs,
		Seed:         o.Seed,
	}
}

// Options converts the file into gameplay options. The logger is left unset.
func (f File) Options() gameplay.Options {
	return gameplay.Options{
		FunMode:      f.FunMode,
		PlayerSpeed:  f.PlayerSpeed,
		ShotCooldown: f.ShotCooldown,
		GrazeRadius:  f.GrazeRadius,
		StartLives:   f.StartLives,
		StartBombs:   f.StartBombs,
		Seed:         f.Seed,
	}
}

// Parse decodes YAML options from r. Keys missing from the document keep
// their default value; unknown keys are an error.
func Parse(r io.Reader) (File, error) {
	f := DefaultFile()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return DefaultFile(), fmt.Errorf("decode options: %w", err)
	}
	return f, nil
}

// Load reads the options file at path.
func Load(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return DefaultFile(), fmt.Errorf("open options: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Save writes f to path as YAML.
func Save(path string, f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write options: %w", err)
	}
	return nil
}
