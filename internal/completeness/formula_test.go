package completeness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	cases := []struct {
		filled, total int
		want          string
	}{
		{3, 3, "=3/3*100"},
		{2, 3, "=2/3*100"},
		{0, 3, "=0"},
		{0, 0, "=0"},
		{0, 1000, "=0"},
		{17, 40, "=17/40*100"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Encode(c.filled, c.total), "Encode(%d, %d)", c.filled, c.total)
		assert.Equal(t, c.want, Formula{Filled: c.filled, Total: c.total}.String())
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for k := 0; k <= total; k++ {
			got, err := Decode(Encode(k, total))
			require.NoError(t, err)
			assert.InDelta(t, float64(k)/float64(total)*100, got, 1e-9, "k=%d total=%d", k, total)
		}
	}
}

func TestDecodeNonFraction(t *testing.T) {
	for _, s := range []string{"=0", "", "=42", "hello"} {
		got, err := Decode(s)
		require.NoError(t, err)
		assert.Zero(t, got, s)
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, s := range []string{"=a/3*100", "=1/b*100", "/3*100", "=1/*100"} {
		_, err := Decode(s)
		require.Error(t, err, s)
		assert.True(t, errors.Is(err, ErrFormat), "%q should be a format error", s)
	}
}

func TestDecodeZeroDenominator(t *testing.T) {
	_, err := Decode("=1/0*100")
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestParseFormula(t *testing.T) {
	f, err := ParseFormula("=7/9*100")
	require.NoError(t, err)
	assert.Equal(t, Formula{Filled: 7, Total: 9}, f)

	f, err = ParseFormula("=0")
	require.NoError(t, err)
	assert.True(t, f.IsZero())

	_, err = ParseFormula("=1.5/3*100")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFormulaPercent(t *testing.T) {
	assert.InDelta(t, 50.0, Formula{Filled: 1, Total: 2}.Percent(), 1e-9)
	assert.Zero(t, Formula{Filled: 0, Total: 5}.Percent())
	assert.Zero(t, Formula{Filled: 3, Total: 0}.Percent())
}
