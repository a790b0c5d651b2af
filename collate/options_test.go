package collate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, opts.Validate())
	assert.Equal(t, Shifted, opts.Variable)
	assert.Equal(t, Quaternary, opts.Levels(), "shifted default carries a quaternary level")
}

func TestOptionsLevels(t *testing.T) {
	cases := []struct {
		opts Options
		want Level
	}{
		{Options{Variable: NonIgnorable}, Tertiary},
		{Options{Variable: Blanked}, Tertiary},
		{Options{Variable: Shifted, Strength: Primary}, Primary},
		{Options{Variable: Shifted, Strength: Secondary}, Secondary},
		{Options{Variable: Shifted, Strength: Tertiary}, Quaternary},
		{Options{Variable: NonIgnorable, Strength: Quaternary}, Tertiary},
		{Options{Variable: Blanked, Strength: Primary}, Primary},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.opts.Levels(), "levels for %s", c.opts)
	}
}

func TestOptionsValidate(t *testing.T) {
	err := Options{Variable: VariableWeighting(7)}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidOption))
	err = Options{Strength: Level(5)}.Validate()
	assert.True(t, errors.Is(err, ErrInvalidOption))
	_, err = New(nil, Options{})
	assert.Error(t, err)
}

func TestParseOptions(t *testing.T) {
	for s, want := range map[string]VariableWeighting{
		"shifted": Shifted, "Non-Ignorable": NonIgnorable, "nonignorable": NonIgnorable, "BLANKED": Blanked, "": Shifted,
	} {
		v, err := ParseVariableWeighting(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, v, s)
	}
	_, err := ParseVariableWeighting("ignore")
	assert.ErrorIs(t, err, ErrInvalidOption)
	//
	for s, want := range map[string]Level{"1": Primary, "tertiary": Tertiary, "4": Quaternary, "0": DefaultLevel} {
		l, err := ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, l, s)
	}
	_, err = ParseLevel("5")
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, "non-ignorable", NonIgnorable.String())
	assert.Equal(t, "secondary", Secondary.String())
}
