package pixhist_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/regorov/pixhist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStyles(t *testing.T) {
	styles := pixhist.DefaultStyles()
	for _, c := range pixhist.Channels {
		st, ok := styles[c]
		require.True(t, ok, "missing style for %s", c)
		assert.Equal(t, pixhist.DefaultFillOpacity, st.FillOpacity)
	}
	assert.Equal(t, "#ff6347", styles[pixhist.Red].Stroke.String())
	assert.Equal(t, "#1e90ff", styles.Of(pixhist.Blue).Stroke.String())

	// Of falls back to stock colors for channels missing from the map.
	assert.Equal(t, styles[pixhist.Green], pixhist.Styles{}.Of(pixhist.Green))
}

func TestParseStyles(t *testing.T) {
	doc := `
[red]
stroke = "#102030"
fill_opacity = 0.5

[White]
fill_opacity = 0.0
`
	styles, err := pixhist.ParseStyles([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, pixhist.RGB(0x102030), styles[pixhist.Red].Stroke)
	assert.Equal(t, 0.5, styles[pixhist.Red].FillOpacity)
	assert.Equal(t, pixhist.DefaultStyles()[pixhist.White].Stroke, styles[pixhist.White].Stroke)
	assert.Equal(t, 0.0, styles[pixhist.White].FillOpacity)
	assert.Equal(t, pixhist.DefaultStyles()[pixhist.Blue], styles[pixhist.Blue])
}

func TestParseStyles_Errors(t *testing.T) {
	var tbl = []string{
		"[purple]\nstroke = \"#000000\"\n",
		"[red]\nstroke = \"tomato\"\n",
		"[red]\nfill_opacity = 1.5\n",
		"[red\n",
	}
	for i := range tbl {
		_, err := pixhist.ParseStyles([]byte(tbl[i]))
		assert.Error(t, err, "case %d", i)
	}

	_, err := pixhist.ParseStyles([]byte(tbl[0]))
	assert.True(t, errors.Is(err, pixhist.ErrUnknownChannel))
}

func TestLoadStyles(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "styles.toml")
	require.NoError(t, os.WriteFile(fname, []byte("[cyan]\nstroke = \"#00ffff\"\n"), 0644))

	styles, err := pixhist.LoadStyles(fname)
	require.NoError(t, err)
	assert.Equal(t, pixhist.RGB(0x00FFFF), styles[pixhist.Cyan].Stroke)

	_, err = pixhist.LoadStyles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
