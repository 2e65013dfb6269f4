package utils

import (
	"strings"
)

// lucene syntax characters that must be escaped inside a term
var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`+`, `\+`,
	`-`, `\-`,
	`&`, `\&`,
	`|`, `\|`,
	`!`, `\!`,
	`(`, `\(`,
	`)`, `\)`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`^`, `\^`,
	`"`, `\"`,
	`~`, `\~`,
	`*`, `\*`,
	`?`, `\?`,
	`:`, `\:`,
	`/`, `\/`,
	` `, `\ `,
)

// EscapeQueryChars - escapes every character with a meaning in the lucene
// query syntax
func EscapeQueryChars(term string) string {

	return queryEscaper.Replace(term)
}

// QuoteTerm - wraps a term in double quotes, escaping embedded quotes
func QuoteTerm(term string) string {

	return `"` + strings.ReplaceAll(term, `"`, `\"`) + `"`
}
