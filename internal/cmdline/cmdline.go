// Package cmdline renders a command and its arguments as a single line a
// user could paste back into a POSIX shell.
package cmdline

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Join quotes each word only when the shell would otherwise split or expand
// it.
func Join(command string, args ...string) string {
	words := make([]string, 0, len(args)+1)
	words = append(words, Quote(command))
	for _, a := range args {
		words = append(words, Quote(a))
	}
	return strings.Join(words, " ")
}

// Quote returns word unchanged when it is safe as a bare shell word.
func Quote(word string) string {
	if word == "" {
		return "''"
	}
	q, err := syntax.Quote(word, syntax.LangBash)
	if err != nil {
		// Words bash cannot represent, such as those holding NUL bytes.
		return strconv.Quote(word)
	}
	return q
}
