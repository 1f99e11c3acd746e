package test

import (
	"math/rand"
	"strings"
)

const validTokens = "define;main;(;);{;};::;Int;Float;Boolean;Char;Void;let;x;:=;if;then;else;while;and;or;not;true;false;+;-;*;/;%;=;!=;<=;>=;1234;5678;3.14;'a';foo_bar;return\n"

// GetRandomTokens builds a space-separated string of size random lexemes
// drawn from the language's own keyword/literal/punctuation vocabulary, for
// lexer fuzz and benchmark input.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

// GetRandomTokensWithSep is GetRandomTokens with a caller-chosen separator.
func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}
