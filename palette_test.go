package barg

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ResolvePalette_ConfigWinsOverEnv(t *testing.T) {
	os.Setenv("BARG_COLOR_PALETTE", "1:2:3:4:5:6")
	defer os.Unsetenv("BARG_COLOR_PALETTE")

	cfg := Configuration{ColorPalette: "31:32:33:34:35:36"}
	p := resolvePalette(cfg)
	assert.True(t, p.enabled)
	assert.Equal(t, "31", p.codes[RoleAccent])
	assert.Equal(t, "36", p.codes[RoleOtherDefault])
}

func Test_ResolvePalette_FallsBackToEnv(t *testing.T) {
	os.Setenv("BARG_COLOR_PALETTE", "1:2:3:4:5:6")
	defer os.Unsetenv("BARG_COLOR_PALETTE")

	p := resolvePalette(Configuration{})
	assert.True(t, p.enabled)
	assert.Equal(t, "1", p.codes[RoleAccent])
}

func Test_ResolvePalette_AllEmptyDisables(t *testing.T) {
	os.Unsetenv("BARG_COLOR_PALETTE")
	p := resolvePalette(Configuration{ColorPalette: ":::::"})
	assert.False(t, p.enabled)
}

func Test_Palette_WrapNoopWhenDisabled(t *testing.T) {
	p := Palette{enabled: false}
	assert.Equal(t, "hi", p.wrap(RoleAccent, "hi"))
}
