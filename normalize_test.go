package barg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokenTexts(toks []normToken) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

func Test_NormalizeArgv_BundledShorts(t *testing.T) {
	spec, err := ParseSpec(`
a/aa: flag => A
b/bb: flag => B
c/cc: flag => C
`)
	assert.NoError(t, err)
	toks := normalizeArgv([]string{"-abc"}, spec)
	assert.Equal(t, []string{"-a", "-b", "-c"}, tokenTexts(toks))
}

func Test_NormalizeArgv_AttachedValueSplitsOnValueConsumingShort(t *testing.T) {
	spec, err := ParseSpec(`t/timeout: int => TIMEOUT`)
	assert.NoError(t, err)
	toks := normalizeArgv([]string{"-t2"}, spec)
	assert.Equal(t, []string{"-t", "2"}, tokenTexts(toks))
}

func Test_NormalizeArgv_DoubleDashEscapesOnlyNextToken(t *testing.T) {
	spec, err := ParseSpec(`v: flag => V`)
	assert.NoError(t, err)
	toks := normalizeArgv([]string{"-v", "--", "-v", "pos"}, spec)
	assert.False(t, toks[0].Literal)
	assert.True(t, toks[1].Literal)
	assert.False(t, toks[2].Literal) // resumes normal processing after the one escaped token
	assert.Equal(t, []string{"-v", "-v", "pos"}, tokenTexts(toks))
}

func Test_NormalizeArgv_IsIdempotent(t *testing.T) {
	spec, err := ParseSpec(`
a/aa: flag => A
t/timeout: int => TIMEOUT
`)
	assert.NoError(t, err)
	once := normalizeArgv([]string{"-at2"}, spec)
	twice := normalizeArgv(tokenTexts(once), spec)
	assert.Equal(t, tokenTexts(once), tokenTexts(twice))
}

func Test_NormalizeArgv_LongFlagsPassThrough(t *testing.T) {
	spec, err := ParseSpec(`n/name: str => NAME`)
	assert.NoError(t, err)
	toks := normalizeArgv([]string{"--name=value"}, spec)
	assert.Equal(t, []string{"--name=value"}, tokenTexts(toks))
}
