package barg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const completionDSL = `
commands {
    build: "build it"
    clean: "clean it"
}

@build o/output: str => OUTPUT
level["debug" "info" "warn"] => LEVEL
`

func candidateValues(cands []completionCandidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Value)
	}
	return out
}

func Test_ComputeCompletions_TopLevelSubcommands(t *testing.T) {
	spec, err := ParseSpec(completionDSL)
	assert.NoError(t, err)
	cands := computeCompletions(spec, []string{""})
	assert.ElementsMatch(t, []string{"build", "clean"}, candidateValues(cands))
	for _, c := range cands {
		assert.Equal(t, colorSubcommand, c.Color)
	}
}

func Test_ComputeCompletions_PrefixFiltering(t *testing.T) {
	spec, err := ParseSpec(completionDSL)
	assert.NoError(t, err)
	cands := computeCompletions(spec, []string{"b"})
	assert.Equal(t, []string{"build"}, candidateValues(cands))
}

func Test_ComputeCompletions_SubcommandFlags(t *testing.T) {
	spec, err := ParseSpec(completionDSL)
	assert.NoError(t, err)
	cands := computeCompletions(spec, []string{"build", "--o"})
	assert.Contains(t, candidateValues(cands), "--output")
}

func Test_ComputeCompletions_EnumValue(t *testing.T) {
	spec, err := ParseSpec(completionDSL)
	assert.NoError(t, err)
	cands := computeCompletions(spec, []string{"--level", "w"})
	assert.Equal(t, []string{"warn"}, candidateValues(cands))
	assert.Equal(t, colorEnumValue, cands[0].Color)
}

func Test_RunCompletion_JSONAndTSV(t *testing.T) {
	spec, err := ParseSpec(completionDSL)
	assert.NoError(t, err)

	json := runCompletion(spec, "@nucomp", []string{""})
	assert.Contains(t, json, "\"value\":\"build\"")
	assert.Contains(t, json, "\"style\":{\"fg\":\"green\"}")

	tsv := runCompletion(spec, "@tsvcomp", []string{""})
	assert.Contains(t, tsv, "build\t0\tbuild it")
}

func Test_GenBashCompletion_InvokesTsvcomp(t *testing.T) {
	out := GenBashCompletion("greet")
	assert.Contains(t, out, "@tsvcomp")
	assert.Contains(t, out, "greet")
}

func Test_GenZshCompletion_InvokesTsvcomp(t *testing.T) {
	out := GenZshCompletion("greet")
	assert.Contains(t, out, "@tsvcomp")
	assert.Contains(t, out, "compdef")
}
