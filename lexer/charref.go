package lexer

// The character reference sub-automaton. It is entered with '&' already in
// the temporary buffer and hands control back to whichever state pushed
// itself onto the return-state stack, either with the decoded code points or
// with the original characters replayed verbatim when nothing resolves.

func (t *Tokenizer) characterReference(r rune, eof bool) state {
	t.builder.resetTemp()
	t.builder.appendTemp('&')
	if !eof {
		switch {
		case isASCIIAlphanumeric(r):
			t.stream.Reconsume()
			return stateNamedCharacterReference
		case r == '#':
			t.builder.appendTemp(r)
			return stateNumericCharacterReference
		}
	}
	t.flushTemp()
	if !eof {
		t.stream.Reconsume()
	}
	return t.popReturnState()
}

// namedCharacterReference consumes the longest identifier from the reference
// table that matches at the cursor. Candidates are assembled by peeking, so
// characters past the match are never consumed and need no rewinding.
func (t *Tokenizer) namedCharacterReference(r rune, eof bool) state {
	if eof {
		t.flushTemp()
		return t.popReturnState()
	}

	name := []rune{r}
	bestLen := 0
	bestValue := ""
	bestSemi := false
	if v, ok := entities[string(name)]; ok {
		bestLen, bestValue = 1, v
	}
	for i := 0; ; i++ {
		nr, ok := t.stream.PeekAt(i)
		if !ok || (!isASCIIAlphanumeric(nr) && nr != ';') {
			break
		}
		name = append(name, nr)
		if v, ok := entities[string(name)]; ok {
			bestLen, bestValue, bestSemi = len(name), v, nr == ';'
		}
		if nr == ';' {
			break
		}
	}

	if bestLen == 0 {
		t.flushTemp()
		t.stream.Reconsume()
		return stateAmbiguousAmpersand
	}

	matched := name[:bestLen]
	t.stream.Discard(bestLen - 1) // the first rune was already consumed

	if !bestSemi && t.inAttribute() {
		if nr, ok := t.stream.Peek(); ok && (nr == '=' || isASCIIAlphanumeric(nr)) {
			// Historical quirk: a semicolon-less reference followed by more
			// identifier characters inside an attribute value stays literal.
			t.warn(WarnUnresolvedCharacterReference)
			for _, c := range matched {
				t.builder.appendTemp(c)
			}
			t.flushTemp()
			return t.popReturnState()
		}
	}
	if !bestSemi {
		t.warn(WarnMissingSemicolonAfterCharacterReference)
	}

	t.builder.resetTemp()
	for _, c := range bestValue {
		t.builder.appendTemp(c)
	}
	t.flushTemp()
	return t.popReturnState()
}

func (t *Tokenizer) ambiguousAmpersand(r rune, eof bool) state {
	if !eof {
		switch {
		case isASCIIAlphanumeric(r):
			if t.inAttribute() {
				t.builder.appendAttrValue(r)
			} else {
				t.emit(textToken(r))
			}
			return stateAmbiguousAmpersand
		case r == ';':
			t.warn(WarnUnknownNamedCharacterReference)
		}
		t.stream.Reconsume()
	}
	return t.popReturnState()
}

func (t *Tokenizer) numericCharacterReference(r rune, eof bool) state {
	t.charRefCode = 0
	if !eof && (r == 'x' || r == 'X') {
		t.builder.appendTemp(r)
		return stateHexCharacterReferenceStart
	}
	if !eof {
		t.stream.Reconsume()
	}
	return stateDecimalCharacterReferenceStart
}

func (t *Tokenizer) hexCharacterReferenceStart(r rune, eof bool) state {
	if !eof && isASCIIHexDigit(r) {
		t.stream.Reconsume()
		return stateHexCharacterReference
	}
	t.warn(WarnAbsenceOfDigitsInNumericCharacterRef)
	t.flushTemp()
	if !eof {
		t.stream.Reconsume()
	}
	return t.popReturnState()
}

func (t *Tokenizer) decimalCharacterReferenceStart(r rune, eof bool) state {
	if !eof && isASCIIDigit(r) {
		t.stream.Reconsume()
		return stateDecimalCharacterReference
	}
	t.warn(WarnAbsenceOfDigitsInNumericCharacterRef)
	t.flushTemp()
	if !eof {
		t.stream.Reconsume()
	}
	return t.popReturnState()
}

func (t *Tokenizer) hexCharacterReference(r rune, eof bool) state {
	if !eof {
		switch {
		case isASCIIDigit(r):
			t.addCharRefDigit(16, int(r-'0'))
			return stateHexCharacterReference
		case r >= 'A' && r <= 'F':
			t.addCharRefDigit(16, int(r-'A'+10))
			return stateHexCharacterReference
		case r >= 'a' && r <= 'f':
			t.addCharRefDigit(16, int(r-'a'+10))
			return stateHexCharacterReference
		case r == ';':
			return stateNumericCharacterReferenceEnd
		}
		t.warn(WarnMissingSemicolonAfterCharacterReference)
		t.stream.Reconsume()
	}
	return stateNumericCharacterReferenceEnd
}

func (t *Tokenizer) decimalCharacterReference(r rune, eof bool) state {
	if !eof {
		switch {
		case isASCIIDigit(r):
			t.addCharRefDigit(10, int(r-'0'))
			return stateDecimalCharacterReference
		case r == ';':
			return stateNumericCharacterReferenceEnd
		}
		t.warn(WarnMissingSemicolonAfterCharacterReference)
		t.stream.Reconsume()
	}
	return stateNumericCharacterReferenceEnd
}

// addCharRefDigit folds one digit into the accumulated code point. The value
// saturates past the Unicode range so adversarial digit runs cannot overflow.
func (t *Tokenizer) addCharRefDigit(base, digit int) {
	if t.charRefCode > maxCodePoint {
		return
	}
	t.charRefCode = t.charRefCode*base + digit
}

// numericCharacterReferenceEnd validates the accumulated code point and
// flushes the substitute rune. It consumes nothing itself: the triggering
// character is handed back to the resumed state.
func (t *Tokenizer) numericCharacterReferenceEnd(r rune, eof bool) state {
	code := t.charRefCode
	switch {
	case code == 0:
		t.warn(WarnNullCharacterReference)
		code = replacementCodePoint
	case code > maxCodePoint:
		t.warn(WarnCharacterReferenceOutsideUnicodeRange)
		code = replacementCodePoint
	case isSurrogate(code):
		t.warn(WarnSurrogateCharacterReference)
		code = replacementCodePoint
	case isNoncharacter(code):
		t.warn(WarnNoncharacterCharacterReference)
	case code == 0x0D, isControl(code) && !isASCIIWhitespace(code):
		t.warn(WarnControlCharacterReference)
		if repl, ok := controlReplacements[code]; ok {
			code = int(repl)
		}
	}

	t.builder.resetTemp()
	t.builder.appendTemp(rune(code))
	t.flushTemp()
	if !eof {
		t.stream.Reconsume()
	}
	return t.popReturnState()
}

const (
	maxCodePoint         = 0x10FFFF
	replacementCodePoint = 0xFFFD
)

// controlReplacements remaps the C1 control range the way windows-1252
// documents historically intended it.
var controlReplacements = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

func isSurrogate(code int) bool {
	return code >= 0xD800 && code <= 0xDFFF
}

func isNoncharacter(code int) bool {
	if code >= 0xFDD0 && code <= 0xFDEF {
		return true
	}
	low := code & 0xFFFF
	return code <= maxCodePoint && (low == 0xFFFE || low == 0xFFFF)
}

func isC0Control(code int) bool {
	return code >= 0x00 && code <= 0x1F
}

func isControl(code int) bool {
	return isC0Control(code) || (code >= 0x7F && code <= 0x9F)
}

func isASCIIWhitespace(code int) bool {
	switch code {
	case 0x09, 0x0A, 0x0C, 0x0D, 0x20:
		return true
	}
	return false
}
