package barg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidateSpec_SwitchArmDuplicateShort(t *testing.T) {
	_, err := ParseSpec(`
"fmt" {
    j/json: "json"
    j/yaml: "yaml"
} => FORMAT
`)
	assert.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, KindDuplicatePattern, pe.Kind)
}

func Test_ValidateSpec_SubcommandScopedDeclarationsDoNotCollideAcrossSubcommands(t *testing.T) {
	_, err := ParseSpec(`
commands {
    build: "build"
    clean: "clean"
}

@build o/output: str => OUTPUT
@clean o/output: str => OUTPUT2
`)
	assert.NoError(t, err)
}

func Test_ValidateSpec_UndeclaredSubcommandScopeIsProgrammingError(t *testing.T) {
	_, err := ParseSpec(`@ghost x: str => X`)
	assert.Error(t, err)
	var perr *ProgrammingError
	assert.ErrorAs(t, err, &perr)
}

func Test_ValidateSpec_SwitchDefaultNotAmongArmsIsProgrammingError(t *testing.T) {
	_, err := ParseSpec(`
"fmt" {
    j/json: "json"
    y/yaml: "yaml"
} "xml" => FORMAT
`)
	assert.Error(t, err)
	var perr *ProgrammingError
	assert.ErrorAs(t, err, &perr)
}
