package barg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const greetDSL = `
meta {
    program_name: "greet"
}

! n/name: str => NAME
! a/age: int 30 => AGE
loud: flag => LOUD
tags: strs => TAGS
level["debug" "info" "warn"] => LEVEL
"format" {
    j/json: "json"
    y/yaml: "yaml"
} => FORMAT
`

func Test_Bind_ScalarAndFlag(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "Alice", "--age", "9", "--loud"})
	assert.NoError(t, err)
	assert.Equal(t, "Alice", res.Bindings["NAME"])
	assert.Equal(t, int64(9), res.Bindings["AGE"])
	assert.Equal(t, true, res.Bindings["LOUD"])
	assert.True(t, res.WasSet["LOUD"])
}

func Test_Bind_ArgvTableMarksSetBindings(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "Alice", "--loud"})
	assert.NoError(t, err)
	table, ok := res.Bindings["BARG_ARGV_TABLE"].(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "!", table["NAME"])
	assert.Equal(t, "!", table["LOUD"])
	assert.Equal(t, "", table["AGE"]) // not given, bound from its declared default
}

func Test_Bind_ScalarDefaultWhenAbsent(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "Bob"})
	assert.NoError(t, err)
	assert.Equal(t, int64(30), res.Bindings["AGE"])
	assert.False(t, res.WasSet["AGE"])
	assert.Equal(t, false, res.Bindings["LOUD"])
}

func Test_Bind_MissingRequired(t *testing.T) {
	_, err := ParseOrError(greetDSL, []string{"--age", "5"})
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindMissingRequired, pe.Kind)
}

func Test_Bind_RequiredEmptyStringIsMissingRequired(t *testing.T) {
	_, err := ParseOrError(greetDSL, []string{"--name", "", "--age", "5"})
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindMissingRequired, pe.Kind)
}

func Test_Bind_Vector(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "A", "--tags", "x", "--tags", "y"})
	assert.NoError(t, err)
	assert.Equal(t, []any{"x", "y"}, res.Bindings["TAGS"])
}

func Test_Bind_VectorDefaultIgnoredWhenAbsent(t *testing.T) {
	const dsl = `
! n/name: str => NAME
tags: strs "fallback" => TAGS
`
	res, err := ParseOrError(dsl, []string{"--name", "A"})
	assert.NoError(t, err)
	assert.Equal(t, []any(nil), res.Bindings["TAGS"]) // spec: empty vector if absent, default literal notwithstanding
	assert.False(t, res.WasSet["TAGS"])
}

func Test_Bind_EnumDefaultAndExplicit(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "A"})
	assert.NoError(t, err)
	assert.Equal(t, "debug", res.Bindings["LEVEL"])

	res, err = ParseOrError(greetDSL, []string{"--name", "A", "--level", "warn"})
	assert.NoError(t, err)
	assert.Equal(t, "warn", res.Bindings["LEVEL"])
}

func Test_Bind_EnumInvalidChoice(t *testing.T) {
	_, err := ParseOrError(greetDSL, []string{"--name", "A", "--level", "bogus"})
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindInvalidChoice, pe.Kind)
}

func Test_Bind_SwitchArmSelection(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "A", "--yaml"})
	assert.NoError(t, err)
	assert.Equal(t, "yaml", res.Bindings["FORMAT"])

	res, err = ParseOrError(greetDSL, []string{"--name", "A"})
	assert.NoError(t, err)
	assert.Equal(t, "0", res.Bindings["FORMAT"]) // no arm given, no explicit default: falls back to "0"
}

func Test_Bind_SwitchWithExplicitDefault(t *testing.T) {
	const dsl = `
! n/name: str => NAME
"format" {
    j/json: "json"
    y/yaml: "yaml"
} "yaml" => FORMAT
`
	res, err := ParseOrError(dsl, []string{"--name", "A"})
	assert.NoError(t, err)
	assert.Equal(t, "yaml", res.Bindings["FORMAT"])
	assert.False(t, res.WasSet["FORMAT"])

	res, err = ParseOrError(dsl, []string{"--name", "A", "--json"})
	assert.NoError(t, err)
	assert.Equal(t, "json", res.Bindings["FORMAT"])
	assert.True(t, res.WasSet["FORMAT"])
}

func Test_Bind_UnknownFlag(t *testing.T) {
	_, err := ParseOrError(greetDSL, []string{"--name", "A", "--nope"})
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindUnknownFlag, pe.Kind)
}

func Test_Bind_NumericTypeMismatch(t *testing.T) {
	_, err := ParseOrError(greetDSL, []string{"--name", "A", "--age", "nine"})
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindTypeMismatch, pe.Kind)
}

func Test_Bind_NumericUnknownFormat(t *testing.T) {
	_, err := ParseOrError(greetDSL, []string{"--name", "A", "--age", "1.2.3"})
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindUnknownFormat, pe.Kind)
}

func Test_Bind_NumericUnderscoreGrouping(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "A", "--age", "1_000"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1000), res.Bindings["AGE"])
}

func Test_Bind_SpareArgsCollected(t *testing.T) {
	res, err := ParseOrError(greetDSL, []string{"--name", "A", "extra1", "extra2"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"extra1", "extra2"}, res.Spare)
	assert.Equal(t, []string{"extra1", "extra2"}, res.Bindings["BARG_SPARE_ARGS"])
}

func Test_Bind_SubcommandSelectionAndBindings(t *testing.T) {
	spec := `
commands {
    *build: "build it"
}

@build o/output: str "release" => OUTPUT
`
	res, err := ParseOrError(spec, []string{"build", "src/main.go"})
	assert.NoError(t, err)
	assert.Equal(t, "build", res.Subcommand)
	assert.Equal(t, "build", res.Bindings["BARG_SUBCOMMAND"])
	assert.Equal(t, "release", res.Bindings["OUTPUT"])
	assert.Equal(t, []string{"src/main.go"}, res.Spare)
}

func Test_Bind_MissingSpareWhenRequired(t *testing.T) {
	spec := `
commands {
    *build: "build it"
}
`
	_, err := ParseOrError(spec, []string{"build"})
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindMissingSpare, pe.Kind)
}

func Test_Bind_BundledShortFlags(t *testing.T) {
	spec := `
a/aa: flag => A
b/bb: flag => B
c/cc: flag => C
`
	res, err := ParseOrError(spec, []string{"-abc"})
	assert.NoError(t, err)
	assert.Equal(t, true, res.Bindings["A"])
	assert.Equal(t, true, res.Bindings["B"])
	assert.Equal(t, true, res.Bindings["C"])
}

func Test_Bind_AttachedShortValue(t *testing.T) {
	spec := `t/timeout: int => TIMEOUT`
	res, err := ParseOrError(spec, []string{"-t2"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), res.Bindings["TIMEOUT"])
}

func Test_Bind_DoubleDashEndsOptions(t *testing.T) {
	spec := `v: flag => V`
	res, err := ParseOrError(spec, []string{"--", "-v"})
	assert.NoError(t, err)
	assert.Equal(t, false, res.Bindings["V"])
	assert.Equal(t, []string{"-v"}, res.Spare)
}

func Test_Bind_DoubleDashEscapesOnlyOneToken(t *testing.T) {
	spec := `
a/aa: flag => A
b/bb: flag => B
`
	res, err := ParseOrError(spec, []string{"--", "-a", "-b"})
	assert.NoError(t, err)
	assert.Equal(t, false, res.Bindings["A"]) // "-a" is the escaped positional, never flag-interpreted
	assert.Equal(t, true, res.Bindings["B"])  // "-b" resumes normal flag processing
	assert.Equal(t, []string{"-a"}, res.Spare)
}

func Test_Bind_LongFlagEquals(t *testing.T) {
	spec := `n/name: str => NAME`
	res, err := ParseOrError(spec, []string{"--name=Alice"})
	assert.NoError(t, err)
	assert.Equal(t, "Alice", res.Bindings["NAME"])
}
