package expr

import "unicode"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokWord
	tokColon
	tokSlash
	tokPlus
	tokMinus
	tokArrow
	tokOther
)

// token is a lexeme of the structured part of an expression. start and end
// are byte offsets into the source so the parser can hand the raw tail of
// the input to the location chain and report leftover text verbatim.
type token struct {
	kind       tokenKind
	text       string
	start, end int
}

// describe renders the token for error messages.
func (t token) describe() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return "'" + t.text + "'"
}

// scan splits src into tokens. It never fails: runes that belong to no
// category become tokOther and surface later as syntax errors. The final
// token is always tokEOF positioned at the end of src.
func scan(src string) []token {
	var tokens []token
	runes := []rune(src)

	// Byte offset of each rune index, plus the terminating length, so
	// token boundaries can be expressed in byte offsets.
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += len(string(r))
	}
	offsets[len(runes)] = b

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			tokens = append(tokens, token{tokNumber, string(runes[i:j]), offsets[i], offsets[j]})
			i = j
		case unicode.IsLetter(r):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			tokens = append(tokens, token{tokWord, string(runes[i:j]), offsets[i], offsets[j]})
			i = j
		case r == ':':
			tokens = append(tokens, token{tokColon, ":", offsets[i], offsets[i+1]})
			i++
		case r == '/':
			tokens = append(tokens, token{tokSlash, "/", offsets[i], offsets[i+1]})
			i++
		case r == '+':
			tokens = append(tokens, token{tokPlus, "+", offsets[i], offsets[i+1]})
			i++
		case r == '-':
			if i+1 < len(runes) && runes[i+1] == '>' {
				tokens = append(tokens, token{tokArrow, "->", offsets[i], offsets[i+2]})
				i += 2
			} else {
				tokens = append(tokens, token{tokMinus, "-", offsets[i], offsets[i+1]})
				i++
			}
		default:
			tokens = append(tokens, token{tokOther, string(r), offsets[i], offsets[i+1]})
			i++
		}
	}
	tokens = append(tokens, token{tokEOF, "", b, b})
	return tokens
}
