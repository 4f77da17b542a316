// Package moderation masks blocklisted words in message bodies.
package moderation

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Filter finds blocklisted words through separators, case and leet spelling
// ("B.4.d-g3r") and masks every rune of the matched span.
type Filter struct {
	machine *goahocorasick.Machine
	mask    rune
}

var leet = map[rune]rune{
	'4': 'a', '@': 'a',
	'3': 'e', '€': 'e',
	'1': 'i', '!': 'i', '|': 'i',
	'0': 'o',
	'5': 's', '$': 's',
}

func NewFilter(words []string, mask rune) (*Filter, error) {
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		folded, _ := fold(word)
		if len(folded) > 0 {
			patterns = append(patterns, folded)
		}
	}
	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Filter{machine: machine, mask: mask}, nil
}

// Censor returns body with every match masked, and whether anything matched.
func (f *Filter) Censor(body string) (string, bool) {
	folded, positions := fold(body)
	if len(folded) == 0 {
		return body, false
	}
	terms := f.machine.MultiPatternSearch(folded, false)
	if len(terms) == 0 {
		return body, false
	}

	runes := []rune(body)
	for _, term := range terms {
		end := term.Pos + len(term.Word)
		if term.Pos < 0 || end > len(positions) {
			continue
		}
		for i := positions[term.Pos]; i <= positions[end-1]; i++ {
			runes[i] = f.mask
		}
	}
	return string(runes), true
}

// fold drops separators, lowercases and undoes leet spelling. positions[i]
// is the index in s of the i-th folded rune.
func fold(s string) ([]rune, []int) {
	runes := []rune(s)
	folded := make([]rune, 0, len(runes))
	positions := make([]int, 0, len(runes))
	for i, r := range runes {
		if plain, ok := leet[r]; ok {
			r = plain
		}
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		folded = append(folded, unicode.ToLower(r))
		positions = append(positions, i)
	}
	return folded, positions
}

// ReadWords parses one word per line, skipping blanks and # comments.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		words = append(words, line)
	}
	return words, scanner.Err()
}
