// Package attrs decodes the loose attribute maps carried by commands into
// the typed, validated parameters the gateways send over the wire.
package attrs

import (
	"fmt"

	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Soloon decodes and validates the color attribute.
func Soloon(attrs map[string]string) (domain.SoloonParams, error) {
	var p domain.SoloonParams
	if err := decode(attrs, &p); err != nil {
		return p, err
	}
	return p, p.Validate()
}

// Cometh decodes and validates the direction attribute.
func Cometh(attrs map[string]string) (domain.ComethParams, error) {
	var p domain.ComethParams
	if err := decode(attrs, &p); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func decode(attrs map[string]string, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(attrs); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidAttribute, err)
	}
	return nil
}
