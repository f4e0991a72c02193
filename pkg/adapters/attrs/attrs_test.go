package attrs_test

import (
	"testing"

	"github.com/aretw0/megaverse/pkg/adapters/attrs"
	"github.com/aretw0/megaverse/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoloon(t *testing.T) {
	p, err := attrs.Soloon(map[string]string{"color": "purple"})
	require.NoError(t, err)
	assert.Equal(t, "purple", p.Color)

	_, err = attrs.Soloon(map[string]string{"color": "green"})
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute)

	_, err = attrs.Soloon(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute)

	_, err = attrs.Soloon(map[string]string{"color": "red", "size": "xl"})
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute, "unexpected keys are rejected")
}

func TestCometh(t *testing.T) {
	p, err := attrs.Cometh(map[string]string{"direction": "left"})
	require.NoError(t, err)
	assert.Equal(t, "left", p.Direction)

	_, err = attrs.Cometh(map[string]string{"direction": "north"})
	assert.ErrorIs(t, err, domain.ErrInvalidAttribute)
}
