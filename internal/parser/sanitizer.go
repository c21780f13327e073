// # internal/parser/sanitizer.go
package parser

import (
	"strings"

	"codescope/internal/lang"
)

// Sanitize applies best-effort rewrites for known grammar gaps. The result
// is only ever parsed, never reported: both rewrites keep every byte on its
// original line, so tree positions remain valid for the original text.
func Sanitize(source string, l lang.Language) string {
	switch l {
	case lang.TypeScript:
		// The TypeScript grammar does not accept `export type * from` yet.
		if strings.Contains(source, "export type * from") {
			return strings.ReplaceAll(source, "export type * from", "export * from")
		}
		return source
	case lang.TSX:
		result := source
		if strings.Contains(result, "export type * from") {
			result = strings.ReplaceAll(result, "export type * from", "export * from")
		}
		// The TSX grammar treats JSX text as XML, so a raw `&` in text must
		// be escaped to parse.
		if strings.Contains(result, "&") && strings.Contains(result, "<") {
			if escaped := escapeAmpersandsInJSXText(result); escaped != result {
				result = escaped
			}
		}
		return result
	default:
		return source
	}
}

type jsxState int

const (
	stateNormal jsxState = iota
	stateInTag
	stateInText
	stateInExpr
)

func isIdentChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') || ch == '_' || ch == '$'
}

func isASCIIAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isASCIIDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isASCIIHexDigit(ch rune) bool {
	return isASCIIDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func prevNonWSChar(chars []rune, i int) (rune, bool) {
	for i > 0 {
		i--
		if !isSpace(chars[i]) {
			return chars[i], true
		}
	}
	return 0, false
}

// looksLikeEntity reports whether chars[i:] starts a complete character
// entity such as &amp; &#123; or &#x1F600;.
func looksLikeEntity(chars []rune, i int) bool {
	if i >= len(chars) || chars[i] != '&' {
		return false
	}
	if i+1 >= len(chars) {
		return false
	}
	next := chars[i+1]

	if next == '#' {
		j := i + 2
		if j < len(chars) && (chars[j] == 'x' || chars[j] == 'X') {
			j++
			hasHex := false
			for j < len(chars) && isASCIIHexDigit(chars[j]) {
				hasHex = true
				j++
			}
			return hasHex && j < len(chars) && chars[j] == ';'
		}
		hasDigit := false
		for j < len(chars) && isASCIIDigit(chars[j]) {
			hasDigit = true
			j++
		}
		return hasDigit && j < len(chars) && chars[j] == ';'
	}

	if !isASCIIAlpha(next) {
		return false
	}
	j := i + 2
	for j < len(chars) && (isASCIIAlpha(chars[j]) || isASCIIDigit(chars[j])) {
		j++
	}
	return j < len(chars) && chars[j] == ';'
}

func isJSXTagStartInText(chars []rune, i int) bool {
	if i >= len(chars) || chars[i] != '<' {
		return false
	}
	if i+1 >= len(chars) {
		return false
	}
	next := chars[i+1]
	return isASCIIAlpha(next) || next == '/' || next == '>'
}

// isProbablyJSXTagStart additionally rejects `<` preceded by an identifier
// character or a closing token, which is far more likely a comparison or
// generic instantiation than a tag.
func isProbablyJSXTagStart(chars []rune, i int) bool {
	if !isJSXTagStartInText(chars, i) {
		return false
	}
	prev, ok := prevNonWSChar(chars, i)
	if !ok {
		return true
	}
	return !(isIdentChar(prev) || prev == '.' || prev == ')' || prev == ']')
}

// escapeAmpersandsInJSXText rewrites bare `&` inside JSX text nodes to
// `&amp;`, leaving complete entities, tag attributes, and embedded
// expressions untouched. The scan is a small state machine tracking tag
// nesting depth and expression brace depth.
func escapeAmpersandsInJSXText(source string) string {
	chars := []rune(source)
	var out strings.Builder
	out.Grow(len(source))

	state := stateNormal
	jsxDepth := 0
	var jsxEntryStack []int
	var tagQuote rune
	hasTagQuote := false
	tagBraceDepth := 0
	exprDepth := 0

	i := 0
	for i < len(chars) {
		ch := chars[i]

		switch state {
		case stateNormal:
			if isProbablyJSXTagStart(chars, i) {
				state = stateInTag
				hasTagQuote = false
				tagBraceDepth = 0
			}
			out.WriteRune(ch)
			i++

		case stateInTag:
			out.WriteRune(ch)

			if hasTagQuote {
				if ch == tagQuote {
					hasTagQuote = false
				}
				i++
				continue
			}

			switch {
			case ch == '"' || ch == '\'':
				tagQuote = ch
				hasTagQuote = true
			case ch == '{':
				tagBraceDepth++
			case ch == '}':
				if tagBraceDepth > 0 {
					tagBraceDepth--
				}
			case ch == '>' && tagBraceDepth == 0:
				// Classify the tag to track depth. The scan starts at the
				// character before '>' so `<br/>` reads its slash.
				j := i - 1
				for j > 0 && isSpace(chars[j]) {
					j--
				}
				k := i
				for k > 0 {
					k--
					if chars[k] == '<' {
						break
					}
				}
				isClosing := k+1 < len(chars) && chars[k+1] == '/'
				selfClosing := !isClosing && chars[j] == '/'

				switch {
				case selfClosing:
					// depth unchanged
				case isClosing:
					if jsxDepth > 0 {
						jsxDepth--
					}
				default:
					jsxDepth++
				}

				if n := len(jsxEntryStack); n > 0 && jsxDepth == jsxEntryStack[n-1] {
					jsxEntryStack = jsxEntryStack[:n-1]
					state = stateInExpr
				} else if jsxDepth == 0 {
					state = stateNormal
				} else {
					state = stateInText
				}
			}
			i++

		case stateInText:
			switch {
			case ch == '{':
				state = stateInExpr
				exprDepth = 1
				out.WriteRune(ch)
				i++
			case ch == '<' && isJSXTagStartInText(chars, i):
				state = stateInTag
				hasTagQuote = false
				tagBraceDepth = 0
				out.WriteRune(ch)
				i++
			case ch == '&':
				if looksLikeEntity(chars, i) {
					out.WriteRune('&')
				} else {
					out.WriteString("&amp;")
				}
				i++
			default:
				out.WriteRune(ch)
				i++
			}

		case stateInExpr:
			if ch == '<' && isProbablyJSXTagStart(chars, i) {
				jsxEntryStack = append(jsxEntryStack, jsxDepth)
				state = stateInTag
				hasTagQuote = false
				tagBraceDepth = 0
				out.WriteRune(ch)
				i++
				continue
			}

			out.WriteRune(ch)
			switch ch {
			case '{':
				exprDepth++
			case '}':
				if exprDepth > 0 {
					exprDepth--
				}
				if exprDepth == 0 {
					state = stateInText
				}
			}
			i++
		}
	}

	return out.String()
}
