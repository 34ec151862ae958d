package barg

import "fmt"

// bashCompletionTemplate mirrors the teacher's bashCompletionTemplate
// (ra_completion_bash.go), adapted to invoke barg's "@tsvcomp" reserved
// token instead of a "__complete" hidden subcommand. Each @tsvcomp line is
// "value\tcolor_code\tdescription"; bash only wants the value column.
const bashCompletionTemplate = `_%[1]s_complete() {
    local cur words
    cur="${COMP_WORDS[COMP_CWORD]}"
    words=("${COMP_WORDS[@]:1:COMP_CWORD}")
    local IFS=$'\n'
    COMPREPLY=($(%[1]s @tsvcomp "${words[@]}" | cut -f1))
}
complete -F _%[1]s_complete %[1]s
`

// GenBashCompletion renders a bash completion script for programName.
func GenBashCompletion(programName string) string {
	return fmt.Sprintf(bashCompletionTemplate, programName)
}
