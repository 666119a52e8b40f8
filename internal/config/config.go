// Package config provides YAML-based game configuration loading for the
// CirclePop variants.
package config

import (
	"errors"
	"fmt"
	"time"
)

// MaxVariantColors is the largest color count a variant may use.
const MaxVariantColors = 8

// CirclePopConfig contains all configuration for the CirclePop game.
type CirclePopConfig struct {
	Board     BoardConfig     `yaml:"board"`
	Animation AnimationConfig `yaml:"animation"`
	Variants  []VariantConfig `yaml:"variants"`
}

// BoardConfig defines the grid shared by every variant.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	MinGroup int `yaml:"min_group"` // Smallest region that can be popped
}

// AnimationConfig defines the fall animation timing, in seconds.
type AnimationConfig struct {
	FallDelay    float64 `yaml:"fall_delay"`
	FallDuration float64 `yaml:"fall_duration"`
}

// Delay returns the pause between a pop and the start of the fall.
func (a AnimationConfig) Delay() time.Duration {
	return time.Duration(a.FallDelay * float64(time.Second))
}

// Duration returns how long each piece takes to settle.
func (a AnimationConfig) Duration() time.Duration {
	return time.Duration(a.FallDuration * float64(time.Second))
}

// VariantConfig defines one playable CirclePop variant.
type VariantConfig struct {
	ID            string  `yaml:"id"`
	Title         string  `yaml:"title"`
	Colors        int     `yaml:"colors"`
	StartingMoves int     `yaml:"starting_moves"`
	ExtraMoveAt   int     `yaml:"extra_move_at"` // Pops of at least this size refund the move
	BonusScale    float64 `yaml:"bonus_scale"`
}

// Variant looks up a variant by ID.
func (c CirclePopConfig) Variant(id string) (VariantConfig, bool) {
	for _, v := range c.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return VariantConfig{}, false
}

// Validate checks that the configuration describes a playable game.
func (c CirclePopConfig) Validate() error {
	var errs []error

	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		errs = append(errs, fmt.Errorf("board must be at least 1x1, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Board.MinGroup < 1 {
		errs = append(errs, fmt.Errorf("min_group must be positive, got %d", c.Board.MinGroup))
	}
	if c.Animation.FallDelay < 0 || c.Animation.FallDuration < 0 {
		errs = append(errs, errors.New("animation timings must not be negative"))
	}
	if len(c.Variants) == 0 {
		errs = append(errs, errors.New("at least one variant is required"))
	}

	seen := make(map[string]bool, len(c.Variants))
	for i, v := range c.Variants {
		switch {
		case v.ID == "":
			errs = append(errs, fmt.Errorf("variant %d: id is required", i))
		case seen[v.ID]:
			errs = append(errs, fmt.Errorf("variant %q: duplicate id", v.ID))
		}
		seen[v.ID] = true

		if v.Colors < 1 || v.Colors > MaxVariantColors {
			errs = append(errs, fmt.Errorf("variant %q: colors must be in [1, %d], got %d", v.ID, MaxVariantColors, v.Colors))
		}
		if v.StartingMoves < 1 {
			errs = append(errs, fmt.Errorf("variant %q: starting_moves must be positive, got %d", v.ID, v.StartingMoves))
		}
		if v.BonusScale < 0 {
			errs = append(errs, fmt.Errorf("variant %q: bonus_scale must not be negative", v.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid circlepop config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset.
// An empty string yields an empty preset and no error.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ColorsForPreset returns the color count a preset plays with.
func ColorsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 3
	case DifficultyHard:
		return 5
	default:
		return 4
	}
}

// VariantForPreset picks the variant whose color count matches the preset.
func (c CirclePopConfig) VariantForPreset(preset DifficultyPreset) (VariantConfig, error) {
	want := ColorsForPreset(preset)
	for _, v := range c.Variants {
		if v.Colors == want {
			return v, nil
		}
	}
	return VariantConfig{}, fmt.Errorf("config: no variant with %d colors for difficulty %q", want, preset)
}
