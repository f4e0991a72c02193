package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Valid attribute values accepted by the remote API.
var (
	SoloonColors     = []string{"blue", "red", "purple", "white"}
	ComethDirections = []string{"up", "down", "left", "right"}
)

// SoloonParams are the typed attributes of a Soloon.
type SoloonParams struct {
	Color string `json:"color" mapstructure:"color"`
}

// Validate checks the color against the enumeration.
func (p SoloonParams) Validate() error {
	if !slices.Contains(SoloonColors, p.Color) {
		return fmt.Errorf("%w: color %q, must be one of: %s",
			ErrInvalidAttribute, p.Color, strings.Join(SoloonColors, ", "))
	}
	return nil
}

// ComethParams are the typed attributes of a Cometh.
type ComethParams struct {
	Direction string `json:"direction" mapstructure:"direction"`
}

func (p ComethParams) Validate() error {
	if !slices.Contains(ComethDirections, p.Direction) {
		return fmt.Errorf("%w: direction %q, must be one of: %s",
			ErrInvalidAttribute, p.Direction, strings.Join(ComethDirections, ", "))
	}
	return nil
}
