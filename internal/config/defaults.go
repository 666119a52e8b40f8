package config

import (
	_ "embed"
)

//go:embed defaults/circlepop.yaml
var defaultCirclePopYAML []byte

// DefaultCirclePopConfig returns the built-in CirclePop configuration.
func DefaultCirclePopConfig() CirclePopConfig {
	return CirclePopConfig{
		Board: BoardConfig{
			Width:    8,
			Height:   10,
			MinGroup: 3,
		},
		Animation: AnimationConfig{
			FallDelay:    0.1,
			FallDuration: 0.2,
		},
		Variants: []VariantConfig{
			{
				ID:            "circlepop3",
				Title:         "CirclePop: 3 Colors",
				Colors:        3,
				StartingMoves: 25,
				ExtraMoveAt:   20,
				BonusScale:    0.3,
			},
			{
				ID:            "circlepop4",
				Title:         "CirclePop: 4 Colors",
				Colors:        4,
				StartingMoves: 30,
				ExtraMoveAt:   15,
				BonusScale:    1.55,
			},
			{
				ID:            "circlepop5",
				Title:         "CirclePop: 5 Colors",
				Colors:        5,
				StartingMoves: 35,
				ExtraMoveAt:   10,
				BonusScale:    2.05,
			},
		},
	}
}
