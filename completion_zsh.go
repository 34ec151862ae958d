package barg

import "fmt"

// zshCompletionTemplate mirrors the teacher's zshCompletionTemplate
// (ra_completion_zsh.go), adapted to invoke barg's "@tsvcomp" reserved
// token instead of a "__complete" hidden subcommand. Each @tsvcomp line is
// "value\tcolor_code\tdescription"; reshaped to "value:description" pairs so
// _describe can show the description alongside the candidate.
const zshCompletionTemplate = `#compdef %[1]s

_%[1]s() {
    local -a words
    words=("${(@)words[2,-1]}")
    local -a completions
    completions=("${(@f)$(%[1]s @tsvcomp "${words[@]}" | awk -F'\t' '{print $1":"$3}')}")
    _describe 'values' completions
}

compdef _%[1]s %[1]s
`

// GenZshCompletion renders a zsh completion script for programName.
func GenZshCompletion(programName string) string {
	return fmt.Sprintf(zshCompletionTemplate, programName)
}
