package barg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseSpec_MetaAndDeclarations(t *testing.T) {
	spec, err := ParseSpec(`
meta {
    program_name: "greet"
    summary: "greets people"
}

! name: str => NAME "who to greet"
loud: flag => LOUD "shout it"
`)
	assert.NoError(t, err)
	assert.Equal(t, "greet", spec.Config.ProgramName)
	assert.Equal(t, "greets people", spec.Config.Summary)
	assert.Len(t, spec.Declarations, 2)

	name := spec.Declarations[0]
	assert.Equal(t, KindScalar, name.Kind)
	assert.Equal(t, TypeStr, name.ValueType)
	assert.True(t, name.Required)
	assert.Equal(t, "NAME", name.Binding)

	loud := spec.Declarations[1]
	assert.Equal(t, KindFlag, loud.Kind)
	assert.Equal(t, "LOUD", loud.Binding)
}

func Test_ParseSpec_AlwaysDirective(t *testing.T) {
	spec, err := ParseSpec(`#[always]
x: int => X
`)
	assert.NoError(t, err)
	assert.True(t, spec.Always)
}

func Test_ParseSpec_CommentsStripped(t *testing.T) {
	spec, err := ParseSpec(`
# this is a full-line comment
    # an indented full-line comment is stripped too
x: int => X
`)
	assert.NoError(t, err)
	assert.Len(t, spec.Declarations, 1)
}

func Test_ParseSpec_Subcommand(t *testing.T) {
	spec, err := ParseSpec(`
commands {
    build: "build the project"
    *clean: "remove build artifacts"
}

@build o/output: str => OUTPUT
`)
	assert.NoError(t, err)
	assert.Len(t, spec.Subcommands, 2)
	assert.Equal(t, "build", spec.Subcommands[0].Name)
	assert.False(t, spec.Subcommands[0].NeedsSpare)
	assert.Equal(t, "clean", spec.Subcommands[1].Name)
	assert.True(t, spec.Subcommands[1].NeedsSpare)

	assert.Equal(t, ScopeSubcommand, spec.Declarations[0].Scope)
	assert.Equal(t, "build", spec.Declarations[0].SubcommandName)
}

func Test_ParseSpec_EnumDeclaration(t *testing.T) {
	spec, err := ParseSpec(`
level["debug" "info" "warn" "error"] => LEVEL
`)
	assert.NoError(t, err)
	d := spec.Declarations[0]
	assert.Equal(t, KindEnum, d.Kind)
	assert.Equal(t, []string{"debug", "info", "warn", "error"}, d.Choices)
	assert.Equal(t, "debug", d.Default.AsString())
}

func Test_ParseSpec_SwitchDeclaration(t *testing.T) {
	spec, err := ParseSpec(`
"format" {
    j/json: "json" h"emit JSON"
    y/yaml: "yaml" h"emit YAML"
} => FORMAT
`)
	assert.NoError(t, err)
	d := spec.Declarations[0]
	assert.Equal(t, KindSwitch, d.Kind)
	assert.Equal(t, "format", d.SwitchName)
	assert.Len(t, d.Arms, 2)
	assert.Equal(t, "json", d.Arms[0].Pattern.Long)
	assert.Equal(t, "json", d.Arms[0].Value)
	assert.Equal(t, "emit JSON", d.Arms[0].Help)
}

func Test_ParseSpec_UnknownMetaKey(t *testing.T) {
	_, err := ParseSpec(`meta { bogus_key: "x" }`)
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindInvalidOption, pe.Kind)
}

func Test_ParseSpec_ReservedBindingRejected(t *testing.T) {
	_, err := ParseSpec(`x: str => PATH`)
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindIllegalBinding, pe.Kind)
}

func Test_ParseSpec_DuplicateBindingRejected(t *testing.T) {
	_, err := ParseSpec(`
a: str => X
b: str => X
`)
	assert.Error(t, err)
}

func Test_ParseSpec_DuplicatePatternRejected(t *testing.T) {
	_, err := ParseSpec(`
a/aa: str => A
b/bb: str => B

commands {
    sub: "a subcommand"
}
`)
	// sanity: no collision here
	assert.NoError(t, err)

	_, err = ParseSpec(`
a/name: str => A
b/name: str => B
`)
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindDuplicatePattern, pe.Kind)
}
