package lexer

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// state enumerates the tokenization automaton. Exactly one state is current
// at any time; the return-state stack carries the states that re-enter the
// character reference sub-automaton.
type state uint8

const (
	stateData state = iota
	stateRCDATA
	stateRawtext
	stateScriptData
	statePlaintext
	stateTagOpen
	stateEndTagOpen
	stateTagName
	stateRCDATALessThanSign
	stateRCDATAEndTagOpen
	stateRCDATAEndTagName
	stateRawtextLessThanSign
	stateRawtextEndTagOpen
	stateRawtextEndTagName
	stateScriptDataLessThanSign
	stateScriptDataEndTagOpen
	stateScriptDataEndTagName
	stateScriptDataEscapeStart
	stateScriptDataEscapeStartDash
	stateScriptDataEscaped
	stateScriptDataEscapedDash
	stateScriptDataEscapedDashDash
	stateScriptDataEscapedLessThanSign
	stateScriptDataEscapedEndTagOpen
	stateScriptDataEscapedEndTagName
	stateScriptDataDoubleEscapeStart
	stateScriptDataDoubleEscaped
	stateScriptDataDoubleEscapedDash
	stateScriptDataDoubleEscapedDashDash
	stateScriptDataDoubleEscapedLessThanSign
	stateScriptDataDoubleEscapeEnd
	stateBeforeAttributeName
	stateAttributeName
	stateAfterAttributeName
	stateBeforeAttributeValue
	stateAttributeValueDoubleQuoted
	stateAttributeValueSingleQuoted
	stateAttributeValueUnquoted
	stateAfterAttributeValueQuoted
	stateSelfClosingStartTag
	stateBogusComment
	stateMarkupDeclarationOpen
	stateCommentStart
	stateCommentStartDash
	stateComment
	stateCommentLessThanSign
	stateCommentLessThanSignBang
	stateCommentLessThanSignBangDash
	stateCommentLessThanSignBangDashDash
	stateCommentEndDash
	stateCommentEnd
	stateCommentEndBang
	stateDoctype
	stateBeforeDoctypeName
	stateDoctypeName
	stateAfterDoctypeName
	stateAfterDoctypePublicKeyword
	stateBeforeDoctypePublicIdentifier
	stateDoctypePublicIdentifierDoubleQuoted
	stateDoctypePublicIdentifierSingleQuoted
	stateAfterDoctypePublicIdentifier
	stateBetweenDoctypePublicAndSystemIdentifiers
	stateAfterDoctypeSystemKeyword
	stateBeforeDoctypeSystemIdentifier
	stateDoctypeSystemIdentifierDoubleQuoted
	stateDoctypeSystemIdentifierSingleQuoted
	stateAfterDoctypeSystemIdentifier
	stateBogusDoctype
	stateCharacterReference
	stateNamedCharacterReference
	stateAmbiguousAmpersand
	stateNumericCharacterReference
	stateHexCharacterReferenceStart
	stateDecimalCharacterReferenceStart
	stateHexCharacterReference
	stateDecimalCharacterReference
	stateNumericCharacterReferenceEnd
)

// Tokenizer converts one already-decoded markup document into an ordered
// stream of tokens. An instance is bound to a single document and driven to
// completion by the consumer pulling tokens; it is not reused.
type Tokenizer struct {
	stream           *inputStream
	builder          *tokenBuilder
	state            state
	returnStates     []state
	lastStartTagName string
	charRefCode      int
	pending          []Token
	warnings         []ParseWarning
	done             bool
	log              *logrus.Logger
}

var newlineNormalizer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// New creates a tokenizer over a complete document. Carriage returns are
// folded to newlines up front, matching how the input byte stream is
// preprocessed before tokenization.
func New(document string) *Tokenizer {
	return &Tokenizer{
		stream:  newInputStream(newlineNormalizer.Replace(document)),
		builder: newTokenBuilder(),
		state:   stateData,
		log:     logrus.StandardLogger(),
	}
}

// Tokenize runs a whole document through a fresh tokenizer and returns the
// complete token stream, ending with the end-of-stream token, along with any
// parse warnings in the order they were raised.
func Tokenize(document string) ([]Token, []ParseWarning) {
	t := New(document)
	var tokens []Token
	for t.Next() {
		tokens = append(tokens, t.Token())
	}
	return tokens, t.Warnings()
}

// Next reports whether the stream can yield another token. It returns false
// only after the end-of-stream token has been taken.
func (t *Tokenizer) Next() bool {
	return !t.done
}

// Token returns the next token in emission order, driving the automaton as
// far as needed. The final token is always EndOfStream, exactly once, even
// for empty input.
func (t *Tokenizer) Token() Token {
	if t.done {
		return endOfStreamToken()
	}
	// Some steps emit several tokens at once and some emit none; drive until
	// at least one is queued.
	for len(t.pending) == 0 {
		r, ok := t.stream.Consume()
		t.state = t.step(t.state, r, !ok)
	}
	tok := t.pending[0]
	t.pending = t.pending[1:]
	if tok.Type == EndOfStreamToken {
		t.done = true
	}
	return tok
}

// Warnings returns the parse warnings recorded so far, in order.
func (t *Tokenizer) Warnings() []ParseWarning {
	return t.warnings
}

func (t *Tokenizer) step(s state, r rune, eof bool) state {
	if t.log.IsLevelEnabled(logrus.TraceLevel) {
		t.log.WithFields(logrus.Fields{"rune": string(r), "state": s, "eof": eof}).Trace("step")
	}
	switch s {
	case stateData:
		return t.data(r, eof)
	case stateRCDATA:
		return t.rcdata(r, eof)
	case stateRawtext:
		return t.rawtext(r, eof)
	case stateScriptData:
		return t.scriptData(r, eof)
	case statePlaintext:
		return t.plaintext(r, eof)
	case stateTagOpen:
		return t.tagOpen(r, eof)
	case stateEndTagOpen:
		return t.endTagOpen(r, eof)
	case stateTagName:
		return t.tagName(r, eof)
	case stateRCDATALessThanSign:
		return t.rawLessThanSign(r, eof, stateRCDATAEndTagOpen, stateRCDATA)
	case stateRCDATAEndTagOpen:
		return t.rawEndTagOpen(r, eof, stateRCDATAEndTagName, stateRCDATA)
	case stateRCDATAEndTagName:
		return t.rawEndTagName(r, eof, stateRCDATAEndTagName, stateRCDATA)
	case stateRawtextLessThanSign:
		return t.rawLessThanSign(r, eof, stateRawtextEndTagOpen, stateRawtext)
	case stateRawtextEndTagOpen:
		return t.rawEndTagOpen(r, eof, stateRawtextEndTagName, stateRawtext)
	case stateRawtextEndTagName:
		return t.rawEndTagName(r, eof, stateRawtextEndTagName, stateRawtext)
	case stateScriptDataLessThanSign:
		return t.scriptDataLessThanSign(r, eof)
	case stateScriptDataEndTagOpen:
		return t.rawEndTagOpen(r, eof, stateScriptDataEndTagName, stateScriptData)
	case stateScriptDataEndTagName:
		return t.rawEndTagName(r, eof, stateScriptDataEndTagName, stateScriptData)
	case stateScriptDataEscapeStart:
		return t.scriptDataEscapeStart(r, eof)
	case stateScriptDataEscapeStartDash:
		return t.scriptDataEscapeStartDash(r, eof)
	case stateScriptDataEscaped:
		return t.scriptDataEscaped(r, eof)
	case stateScriptDataEscapedDash:
		return t.scriptDataEscapedDash(r, eof)
	case stateScriptDataEscapedDashDash:
		return t.scriptDataEscapedDashDash(r, eof)
	case stateScriptDataEscapedLessThanSign:
		return t.scriptDataEscapedLessThanSign(r, eof)
	case stateScriptDataEscapedEndTagOpen:
		return t.rawEndTagOpen(r, eof, stateScriptDataEscapedEndTagName, stateScriptDataEscaped)
	case stateScriptDataEscapedEndTagName:
		return t.rawEndTagName(r, eof, stateScriptDataEscapedEndTagName, stateScriptDataEscaped)
	case stateScriptDataDoubleEscapeStart:
		return t.scriptDoubleEscapeTransition(r, eof, stateScriptDataDoubleEscapeStart, stateScriptDataDoubleEscaped, stateScriptDataEscaped)
	case stateScriptDataDoubleEscaped:
		return t.scriptDataDoubleEscaped(r, eof)
	case stateScriptDataDoubleEscapedDash:
		return t.scriptDataDoubleEscapedDash(r, eof)
	case stateScriptDataDoubleEscapedDashDash:
		return t.scriptDataDoubleEscapedDashDash(r, eof)
	case stateScriptDataDoubleEscapedLessThanSign:
		return t.scriptDataDoubleEscapedLessThanSign(r, eof)
	case stateScriptDataDoubleEscapeEnd:
		return t.scriptDoubleEscapeTransition(r, eof, stateScriptDataDoubleEscapeEnd, stateScriptDataEscaped, stateScriptDataDoubleEscaped)
	case stateBeforeAttributeName:
		return t.beforeAttributeName(r, eof)
	case stateAttributeName:
		return t.attributeName(r, eof)
	case stateAfterAttributeName:
		return t.afterAttributeName(r, eof)
	case stateBeforeAttributeValue:
		return t.beforeAttributeValue(r, eof)
	case stateAttributeValueDoubleQuoted:
		return t.attributeValueQuoted(r, eof, '"', stateAttributeValueDoubleQuoted)
	case stateAttributeValueSingleQuoted:
		return t.attributeValueQuoted(r, eof, '\'', stateAttributeValueSingleQuoted)
	case stateAttributeValueUnquoted:
		return t.attributeValueUnquoted(r, eof)
	case stateAfterAttributeValueQuoted:
		return t.afterAttributeValueQuoted(r, eof)
	case stateSelfClosingStartTag:
		return t.selfClosingStartTag(r, eof)
	case stateBogusComment:
		return t.bogusComment(r, eof)
	case stateMarkupDeclarationOpen:
		return t.markupDeclarationOpen(r, eof)
	case stateCommentStart:
		return t.commentStart(r, eof)
	case stateCommentStartDash:
		return t.commentStartDash(r, eof)
	case stateComment:
		return t.comment(r, eof)
	case stateCommentLessThanSign:
		return t.commentLessThanSign(r, eof)
	case stateCommentLessThanSignBang:
		return t.commentLessThanSignBang(r, eof)
	case stateCommentLessThanSignBangDash:
		return t.commentLessThanSignBangDash(r, eof)
	case stateCommentLessThanSignBangDashDash:
		return t.commentLessThanSignBangDashDash(r, eof)
	case stateCommentEndDash:
		return t.commentEndDash(r, eof)
	case stateCommentEnd:
		return t.commentEnd(r, eof)
	case stateCommentEndBang:
		return t.commentEndBang(r, eof)
	case stateDoctype:
		return t.doctype(r, eof)
	case stateBeforeDoctypeName:
		return t.beforeDoctypeName(r, eof)
	case stateDoctypeName:
		return t.doctypeName(r, eof)
	case stateAfterDoctypeName:
		return t.afterDoctypeName(r, eof)
	case stateAfterDoctypePublicKeyword:
		return t.afterDoctypePublicKeyword(r, eof)
	case stateBeforeDoctypePublicIdentifier:
		return t.beforeDoctypePublicIdentifier(r, eof)
	case stateDoctypePublicIdentifierDoubleQuoted:
		return t.doctypePublicIdentifier(r, eof, '"', stateDoctypePublicIdentifierDoubleQuoted)
	case stateDoctypePublicIdentifierSingleQuoted:
		return t.doctypePublicIdentifier(r, eof, '\'', stateDoctypePublicIdentifierSingleQuoted)
	case stateAfterDoctypePublicIdentifier:
		return t.afterDoctypePublicIdentifier(r, eof)
	case stateBetweenDoctypePublicAndSystemIdentifiers:
		return t.betweenDoctypePublicAndSystemIdentifiers(r, eof)
	case stateAfterDoctypeSystemKeyword:
		return t.afterDoctypeSystemKeyword(r, eof)
	case stateBeforeDoctypeSystemIdentifier:
		return t.beforeDoctypeSystemIdentifier(r, eof)
	case stateDoctypeSystemIdentifierDoubleQuoted:
		return t.doctypeSystemIdentifier(r, eof, '"', stateDoctypeSystemIdentifierDoubleQuoted)
	case stateDoctypeSystemIdentifierSingleQuoted:
		return t.doctypeSystemIdentifier(r, eof, '\'', stateDoctypeSystemIdentifierSingleQuoted)
	case stateAfterDoctypeSystemIdentifier:
		return t.afterDoctypeSystemIdentifier(r, eof)
	case stateBogusDoctype:
		return t.bogusDoctype(r, eof)
	case stateCharacterReference:
		return t.characterReference(r, eof)
	case stateNamedCharacterReference:
		return t.namedCharacterReference(r, eof)
	case stateAmbiguousAmpersand:
		return t.ambiguousAmpersand(r, eof)
	case stateNumericCharacterReference:
		return t.numericCharacterReference(r, eof)
	case stateHexCharacterReferenceStart:
		return t.hexCharacterReferenceStart(r, eof)
	case stateDecimalCharacterReferenceStart:
		return t.decimalCharacterReferenceStart(r, eof)
	case stateHexCharacterReference:
		return t.hexCharacterReference(r, eof)
	case stateDecimalCharacterReference:
		return t.decimalCharacterReference(r, eof)
	case stateNumericCharacterReferenceEnd:
		return t.numericCharacterReferenceEnd(r, eof)
	}
	panic(errors.Errorf("lexer: unhandled state %d", s))
}

func (t *Tokenizer) warn(code WarningCode) {
	w := ParseWarning{Code: code, Pos: t.stream.Position()}
	t.warnings = append(t.warnings, w)
	t.log.WithFields(logrus.Fields{
		"code": string(code),
		"line": w.Pos.Line,
		"col":  w.Pos.Col,
	}).Debug("parse warning")
}

func (t *Tokenizer) emit(tokens ...Token) {
	for _, tok := range tokens {
		switch tok.Type {
		case StartTagToken:
			t.lastStartTagName = tok.Name
		case EndTagToken:
			// End tags carry no attributes or self-closing flag; anything
			// collected on the way is a defect, reported and dropped.
			if len(tok.Attributes) > 0 {
				t.warn(WarnEndTagWithAttributes)
				tok.Attributes = nil
			}
			if tok.SelfClosing {
				t.warn(WarnEndTagWithTrailingSolidus)
				tok.SelfClosing = false
			}
		}
		t.pending = append(t.pending, tok)
	}
}

// emitCurrentTag finishes the tag under construction and returns the state
// the content after it is lexed in. A start tag that opens a raw-text or
// escapable-raw-text element switches the lexing context, since no tree
// stage sits above this tokenizer to do it.
func (t *Tokenizer) emitCurrentTag() state {
	tok := t.builder.tagToken()
	t.emit(tok)
	if tok.Type == StartTagToken {
		return contentStateFor(tok.Name)
	}
	return stateData
}

func contentStateFor(name string) state {
	switch name {
	case "title", "textarea":
		return stateRCDATA
	case "style", "xmp", "iframe", "noembed", "noframes":
		return stateRawtext
	case "script":
		return stateScriptData
	case "plaintext":
		return statePlaintext
	}
	return stateData
}

func (t *Tokenizer) pushReturnState(s state) {
	t.returnStates = append(t.returnStates, s)
}

func (t *Tokenizer) popReturnState() state {
	s := t.returnState()
	t.returnStates = t.returnStates[:len(t.returnStates)-1]
	return s
}

func (t *Tokenizer) returnState() state {
	return t.returnStates[len(t.returnStates)-1]
}

// inAttribute reports whether the character reference being resolved was
// entered from inside an attribute value.
func (t *Tokenizer) inAttribute() bool {
	switch t.returnState() {
	case stateAttributeValueDoubleQuoted, stateAttributeValueSingleQuoted, stateAttributeValueUnquoted:
		return true
	}
	return false
}

// flushTemp delivers the temporary buffer to wherever the return state wants
// the resolved (or literal) characters: the pending attribute value, or the
// token stream as text.
func (t *Tokenizer) flushTemp() {
	if t.inAttribute() {
		for _, r := range t.builder.tempBuf {
			t.builder.appendAttrValue(r)
		}
		return
	}
	t.emitTempAsText()
}

func (t *Tokenizer) emitTempAsText() {
	for _, r := range t.builder.tempBuf {
		t.emit(textToken(r))
	}
}

func (t *Tokenizer) commitAttribute() {
	if t.builder.commitAttribute() {
		t.warn(WarnDuplicateAttribute)
	}
}

func (t *Tokenizer) matchesLastStartTag() bool {
	return t.lastStartTagName != "" && t.builder.name.String() == t.lastStartTagName
}

func (t *Tokenizer) data(r rune, eof bool) state {
	if eof {
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '&':
		t.pushReturnState(stateData)
		return stateCharacterReference
	case '<':
		return stateTagOpen
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(r))
		return stateData
	default:
		t.emit(textToken(r))
		return stateData
	}
}

func (t *Tokenizer) rcdata(r rune, eof bool) state {
	if eof {
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '&':
		t.pushReturnState(stateRCDATA)
		return stateCharacterReference
	case '<':
		return stateRCDATALessThanSign
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateRCDATA
	default:
		t.emit(textToken(r))
		return stateRCDATA
	}
}

func (t *Tokenizer) rawtext(r rune, eof bool) state {
	if eof {
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '<':
		return stateRawtextLessThanSign
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateRawtext
	default:
		t.emit(textToken(r))
		return stateRawtext
	}
}

func (t *Tokenizer) scriptData(r rune, eof bool) state {
	if eof {
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '<':
		return stateScriptDataLessThanSign
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateScriptData
	default:
		t.emit(textToken(r))
		return stateScriptData
	}
}

func (t *Tokenizer) plaintext(r rune, eof bool) state {
	if eof {
		t.emit(endOfStreamToken())
		return stateData
	}
	if r == 0 {
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return statePlaintext
	}
	t.emit(textToken(r))
	return statePlaintext
}

func (t *Tokenizer) tagOpen(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFBeforeTagName)
		t.emit(textToken('<'), endOfStreamToken())
		return stateData
	}
	switch {
	case r == '!':
		return stateMarkupDeclarationOpen
	case r == '/':
		return stateEndTagOpen
	case isASCIIAlpha(r):
		t.builder.reset()
		t.builder.kind = startTag
		t.stream.Reconsume()
		return stateTagName
	case r == '?':
		t.warn(WarnUnexpectedQuestionMarkInsteadOfTagName)
		t.builder.reset()
		t.stream.Reconsume()
		return stateBogusComment
	default:
		t.warn(WarnInvalidFirstCharacterOfTagName)
		t.emit(textToken('<'))
		t.stream.Reconsume()
		return stateData
	}
}

func (t *Tokenizer) endTagOpen(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFBeforeTagName)
		t.emit(textToken('<'), textToken('/'), endOfStreamToken())
		return stateData
	}
	switch {
	case isASCIIAlpha(r):
		t.builder.reset()
		t.builder.kind = endTag
		t.stream.Reconsume()
		return stateTagName
	case r == '>':
		t.warn(WarnMissingEndTagName)
		return stateData
	default:
		t.warn(WarnInvalidFirstCharacterOfTagName)
		t.builder.reset()
		t.stream.Reconsume()
		return stateBogusComment
	}
}

func (t *Tokenizer) tagName(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInTag)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeAttributeName
	case r == '/':
		return stateSelfClosingStartTag
	case r == '>':
		return t.emitCurrentTag()
	case isASCIIUpper(r):
		t.builder.appendName(toASCIILower(r))
		return stateTagName
	case r == 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendName(replacementCodePoint)
		return stateTagName
	default:
		t.builder.appendName(r)
		return stateTagName
	}
}

// rawLessThanSign, rawEndTagOpen and rawEndTagName implement the shared "is
// this the matching end tag?" scan of the RCDATA, RAWTEXT, script data and
// escaped script data contexts; the contexts differ only in where a failed
// match falls back to.
func (t *Tokenizer) rawLessThanSign(r rune, eof bool, open, content state) state {
	if !eof && r == '/' {
		t.builder.resetTemp()
		return open
	}
	t.emit(textToken('<'))
	if !eof {
		t.stream.Reconsume()
	}
	return content
}

func (t *Tokenizer) rawEndTagOpen(r rune, eof bool, name, content state) state {
	if !eof && isASCIIAlpha(r) {
		t.builder.reset()
		t.builder.kind = endTag
		t.stream.Reconsume()
		return name
	}
	t.emit(textToken('<'), textToken('/'))
	if !eof {
		t.stream.Reconsume()
	}
	return content
}

func (t *Tokenizer) rawEndTagName(r rune, eof bool, self, content state) state {
	if !eof {
		switch {
		case isTokenWhitespace(r):
			if t.matchesLastStartTag() {
				return stateBeforeAttributeName
			}
		case r == '/':
			if t.matchesLastStartTag() {
				return stateSelfClosingStartTag
			}
		case r == '>':
			if t.matchesLastStartTag() {
				return t.emitCurrentTag()
			}
		case isASCIIAlpha(r):
			t.builder.appendTemp(r)
			t.builder.appendName(toASCIILower(r))
			return self
		}
	}
	// Not the matching end tag after all: replay the raw "</" and whatever
	// name characters were buffered.
	t.emit(textToken('<'), textToken('/'))
	t.emitTempAsText()
	if !eof {
		t.stream.Reconsume()
	}
	return content
}

func (t *Tokenizer) scriptDataLessThanSign(r rune, eof bool) state {
	if !eof {
		switch r {
		case '/':
			t.builder.resetTemp()
			return stateScriptDataEndTagOpen
		case '!':
			t.emit(textToken('<'), textToken('!'))
			return stateScriptDataEscapeStart
		}
	}
	t.emit(textToken('<'))
	if !eof {
		t.stream.Reconsume()
	}
	return stateScriptData
}

func (t *Tokenizer) scriptDataEscapeStart(r rune, eof bool) state {
	if !eof && r == '-' {
		t.emit(textToken('-'))
		return stateScriptDataEscapeStartDash
	}
	if !eof {
		t.stream.Reconsume()
	}
	return stateScriptData
}

func (t *Tokenizer) scriptDataEscapeStartDash(r rune, eof bool) state {
	if !eof && r == '-' {
		t.emit(textToken('-'))
		return stateScriptDataEscapedDashDash
	}
	if !eof {
		t.stream.Reconsume()
	}
	return stateScriptData
}

func (t *Tokenizer) scriptDataEscaped(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInScriptCommentLikeText)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		t.emit(textToken('-'))
		return stateScriptDataEscapedDash
	case '<':
		return stateScriptDataEscapedLessThanSign
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateScriptDataEscaped
	default:
		t.emit(textToken(r))
		return stateScriptDataEscaped
	}
}

func (t *Tokenizer) scriptDataEscapedDash(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInScriptCommentLikeText)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		t.emit(textToken('-'))
		return stateScriptDataEscapedDashDash
	case '<':
		return stateScriptDataEscapedLessThanSign
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateScriptDataEscaped
	default:
		t.emit(textToken(r))
		return stateScriptDataEscaped
	}
}

func (t *Tokenizer) scriptDataEscapedDashDash(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInScriptCommentLikeText)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		t.emit(textToken('-'))
		return stateScriptDataEscapedDashDash
	case '<':
		return stateScriptDataEscapedLessThanSign
	case '>':
		t.emit(textToken('>'))
		return stateScriptData
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateScriptDataEscaped
	default:
		t.emit(textToken(r))
		return stateScriptDataEscaped
	}
}

func (t *Tokenizer) scriptDataEscapedLessThanSign(r rune, eof bool) state {
	if !eof {
		switch {
		case r == '/':
			t.builder.resetTemp()
			return stateScriptDataEscapedEndTagOpen
		case isASCIIAlpha(r):
			t.builder.resetTemp()
			t.emit(textToken('<'))
			t.stream.Reconsume()
			return stateScriptDataDoubleEscapeStart
		}
	}
	t.emit(textToken('<'))
	if !eof {
		t.stream.Reconsume()
	}
	return stateScriptDataEscaped
}

// scriptDoubleEscapeTransition covers both the double-escape start and end
// states: it buffers a tag-like name and decides whether the buffered name is
// "script", which toggles between the escaped and double-escaped contexts.
func (t *Tokenizer) scriptDoubleEscapeTransition(r rune, eof bool, self, match, noMatch state) state {
	if !eof {
		switch {
		case isTokenWhitespace(r), r == '/', r == '>':
			t.emit(textToken(r))
			if t.builder.temp() == "script" {
				return match
			}
			return noMatch
		case isASCIIAlpha(r):
			t.emit(textToken(r))
			t.builder.appendTemp(toASCIILower(r))
			return self
		}
		t.stream.Reconsume()
	}
	return noMatch
}

func (t *Tokenizer) scriptDataDoubleEscaped(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInScriptCommentLikeText)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		t.emit(textToken('-'))
		return stateScriptDataDoubleEscapedDash
	case '<':
		t.emit(textToken('<'))
		return stateScriptDataDoubleEscapedLessThanSign
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateScriptDataDoubleEscaped
	default:
		t.emit(textToken(r))
		return stateScriptDataDoubleEscaped
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDash(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInScriptCommentLikeText)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		t.emit(textToken('-'))
		return stateScriptDataDoubleEscapedDashDash
	case '<':
		t.emit(textToken('<'))
		return stateScriptDataDoubleEscapedLessThanSign
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateScriptDataDoubleEscaped
	default:
		t.emit(textToken(r))
		return stateScriptDataDoubleEscaped
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedDashDash(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInScriptCommentLikeText)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		t.emit(textToken('-'))
		return stateScriptDataDoubleEscapedDashDash
	case '<':
		t.emit(textToken('<'))
		return stateScriptDataDoubleEscapedLessThanSign
	case '>':
		t.emit(textToken('>'))
		return stateScriptData
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.emit(textToken(replacementCodePoint))
		return stateScriptDataDoubleEscaped
	default:
		t.emit(textToken(r))
		return stateScriptDataDoubleEscaped
	}
}

func (t *Tokenizer) scriptDataDoubleEscapedLessThanSign(r rune, eof bool) state {
	if !eof && r == '/' {
		t.builder.resetTemp()
		t.emit(textToken('/'))
		return stateScriptDataDoubleEscapeEnd
	}
	if !eof {
		t.stream.Reconsume()
	}
	return stateScriptDataDoubleEscaped
}

func (t *Tokenizer) beforeAttributeName(r rune, eof bool) state {
	if eof {
		return stateAfterAttributeName
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeAttributeName
	case r == '/', r == '>':
		t.stream.Reconsume()
		return stateAfterAttributeName
	case r == '=':
		t.warn(WarnUnexpectedEqualsSignBeforeAttributeName)
		t.commitAttribute()
		t.builder.appendAttrName(r)
		return stateAttributeName
	default:
		t.commitAttribute()
		t.stream.Reconsume()
		return stateAttributeName
	}
}

func (t *Tokenizer) attributeName(r rune, eof bool) state {
	if eof {
		return stateAfterAttributeName
	}
	switch {
	case isTokenWhitespace(r), r == '/', r == '>':
		t.stream.Reconsume()
		return stateAfterAttributeName
	case r == '=':
		return stateBeforeAttributeValue
	case isASCIIUpper(r):
		t.builder.appendAttrName(toASCIILower(r))
		return stateAttributeName
	case r == 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendAttrName(replacementCodePoint)
		return stateAttributeName
	case r == '"', r == '\'', r == '<':
		t.warn(WarnUnexpectedCharacterInAttributeName)
		t.builder.appendAttrName(r)
		return stateAttributeName
	default:
		t.builder.appendAttrName(r)
		return stateAttributeName
	}
}

func (t *Tokenizer) afterAttributeName(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInTag)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateAfterAttributeName
	case r == '/':
		t.commitAttribute()
		return stateSelfClosingStartTag
	case r == '=':
		return stateBeforeAttributeValue
	case r == '>':
		t.commitAttribute()
		return t.emitCurrentTag()
	default:
		t.commitAttribute()
		t.stream.Reconsume()
		return stateAttributeName
	}
}

func (t *Tokenizer) beforeAttributeValue(r rune, eof bool) state {
	if eof {
		return stateAttributeValueUnquoted
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeAttributeValue
	case r == '"':
		return stateAttributeValueDoubleQuoted
	case r == '\'':
		return stateAttributeValueSingleQuoted
	case r == '>':
		t.warn(WarnMissingAttributeValue)
		t.commitAttribute()
		return t.emitCurrentTag()
	default:
		t.stream.Reconsume()
		return stateAttributeValueUnquoted
	}
}

func (t *Tokenizer) attributeValueQuoted(r rune, eof bool, quote rune, self state) state {
	if eof {
		t.warn(WarnEOFInTag)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch r {
	case quote:
		t.commitAttribute()
		return stateAfterAttributeValueQuoted
	case '&':
		t.pushReturnState(self)
		return stateCharacterReference
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendAttrValue(replacementCodePoint)
		return self
	default:
		t.builder.appendAttrValue(r)
		return self
	}
}

func (t *Tokenizer) attributeValueUnquoted(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInTag)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		t.commitAttribute()
		return stateBeforeAttributeName
	case r == '&':
		t.pushReturnState(stateAttributeValueUnquoted)
		return stateCharacterReference
	case r == '>':
		t.commitAttribute()
		return t.emitCurrentTag()
	case r == 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendAttrValue(replacementCodePoint)
		return stateAttributeValueUnquoted
	case r == '"', r == '\'', r == '<', r == '=', r == '`':
		t.warn(WarnUnexpectedCharacterInUnquotedAttrValue)
		t.builder.appendAttrValue(r)
		return stateAttributeValueUnquoted
	default:
		t.builder.appendAttrValue(r)
		return stateAttributeValueUnquoted
	}
}

func (t *Tokenizer) afterAttributeValueQuoted(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInTag)
		t.emit(endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeAttributeName
	case r == '/':
		return stateSelfClosingStartTag
	case r == '>':
		return t.emitCurrentTag()
	default:
		t.warn(WarnMissingWhitespaceBetweenAttributes)
		t.stream.Reconsume()
		return stateBeforeAttributeName
	}
}

func (t *Tokenizer) selfClosingStartTag(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInTag)
		t.emit(endOfStreamToken())
		return stateData
	}
	if r == '>' {
		t.builder.setSelfClosing()
		return t.emitCurrentTag()
	}
	t.warn(WarnUnexpectedSolidusInTag)
	t.stream.Reconsume()
	return stateBeforeAttributeName
}

func (t *Tokenizer) bogusComment(r rune, eof bool) state {
	if eof {
		t.emit(t.builder.commentToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case '>':
		t.emit(t.builder.commentToken())
		return stateData
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendData(replacementCodePoint)
		return stateBogusComment
	default:
		t.builder.appendData(r)
		return stateBogusComment
	}
}

func (t *Tokenizer) markupDeclarationOpen(r rune, eof bool) state {
	if !eof {
		switch {
		case r == '-':
			if nr, ok := t.stream.Peek(); ok && nr == '-' {
				t.stream.Discard(1)
				t.builder.reset()
				return stateCommentStart
			}
		case r == 'd' || r == 'D':
			if strings.EqualFold(t.stream.Lookahead(6), "octype") {
				t.stream.Discard(6)
				return stateDoctype
			}
		case r == '[':
			if t.stream.Lookahead(6) == "CDATA[" {
				// CDATA sections only exist in foreign content, which this
				// tokenizer does not lex; in markup content they degrade to a
				// bogus comment.
				t.stream.Discard(6)
				t.warn(WarnCDATAInHTMLContent)
				t.builder.reset()
				for _, c := range "[CDATA[" {
					t.builder.appendData(c)
				}
				return stateBogusComment
			}
		}
	}
	t.warn(WarnIncorrectlyOpenedComment)
	t.builder.reset()
	if !eof {
		t.stream.Reconsume()
	}
	return stateBogusComment
}

func (t *Tokenizer) commentStart(r rune, eof bool) state {
	if !eof {
		switch r {
		case '-':
			return stateCommentStartDash
		case '>':
			t.warn(WarnAbruptClosingOfEmptyComment)
			t.emit(t.builder.commentToken())
			return stateData
		}
		t.stream.Reconsume()
	}
	return stateComment
}

func (t *Tokenizer) commentStartDash(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInComment)
		t.emit(t.builder.commentToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		return stateCommentEnd
	case '>':
		t.warn(WarnAbruptClosingOfEmptyComment)
		t.emit(t.builder.commentToken())
		return stateData
	default:
		t.builder.appendData('-')
		t.stream.Reconsume()
		return stateComment
	}
}

func (t *Tokenizer) comment(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInComment)
		t.emit(t.builder.commentToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case '<':
		t.builder.appendData(r)
		return stateCommentLessThanSign
	case '-':
		return stateCommentEndDash
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendData(replacementCodePoint)
		return stateComment
	default:
		t.builder.appendData(r)
		return stateComment
	}
}

func (t *Tokenizer) commentLessThanSign(r rune, eof bool) state {
	if !eof {
		switch r {
		case '!':
			t.builder.appendData(r)
			return stateCommentLessThanSignBang
		case '<':
			t.builder.appendData(r)
			return stateCommentLessThanSign
		}
		t.stream.Reconsume()
	}
	return stateComment
}

func (t *Tokenizer) commentLessThanSignBang(r rune, eof bool) state {
	if !eof && r == '-' {
		return stateCommentLessThanSignBangDash
	}
	if !eof {
		t.stream.Reconsume()
	}
	return stateComment
}

func (t *Tokenizer) commentLessThanSignBangDash(r rune, eof bool) state {
	if !eof && r == '-' {
		return stateCommentLessThanSignBangDashDash
	}
	if !eof {
		t.stream.Reconsume()
	}
	return stateCommentEndDash
}

func (t *Tokenizer) commentLessThanSignBangDashDash(r rune, eof bool) state {
	if !eof && r != '>' {
		t.warn(WarnNestedComment)
	}
	if !eof {
		t.stream.Reconsume()
	}
	return stateCommentEnd
}

func (t *Tokenizer) commentEndDash(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInComment)
		t.emit(t.builder.commentToken(), endOfStreamToken())
		return stateData
	}
	if r == '-' {
		return stateCommentEnd
	}
	t.builder.appendData('-')
	t.stream.Reconsume()
	return stateComment
}

func (t *Tokenizer) commentEnd(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInComment)
		t.emit(t.builder.commentToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case '>':
		t.emit(t.builder.commentToken())
		return stateData
	case '!':
		return stateCommentEndBang
	case '-':
		t.builder.appendData('-')
		return stateCommentEnd
	default:
		t.builder.appendData('-')
		t.builder.appendData('-')
		t.stream.Reconsume()
		return stateComment
	}
}

func (t *Tokenizer) commentEndBang(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInComment)
		t.emit(t.builder.commentToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case '-':
		t.builder.appendData('-')
		t.builder.appendData('-')
		t.builder.appendData('!')
		return stateCommentEndDash
	case '>':
		t.warn(WarnIncorrectlyClosedComment)
		t.emit(t.builder.commentToken())
		return stateData
	default:
		t.builder.appendData('-')
		t.builder.appendData('-')
		t.builder.appendData('!')
		t.stream.Reconsume()
		return stateComment
	}
}

func (t *Tokenizer) doctype(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.reset()
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeDoctypeName
	case r == '>':
		t.stream.Reconsume()
		return stateBeforeDoctypeName
	default:
		t.warn(WarnMissingWhitespaceBeforeDoctypeName)
		t.stream.Reconsume()
		return stateBeforeDoctypeName
	}
}

func (t *Tokenizer) beforeDoctypeName(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.reset()
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeDoctypeName
	case isASCIIUpper(r):
		t.builder.reset()
		t.builder.appendName(toASCIILower(r))
		return stateDoctypeName
	case r == 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.reset()
		t.builder.appendName(replacementCodePoint)
		return stateDoctypeName
	case r == '>':
		t.warn(WarnMissingDoctypeName)
		t.builder.reset()
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.builder.reset()
		t.builder.appendName(r)
		return stateDoctypeName
	}
}

func (t *Tokenizer) doctypeName(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateAfterDoctypeName
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return stateData
	case isASCIIUpper(r):
		t.builder.appendName(toASCIILower(r))
		return stateDoctypeName
	case r == 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendName(replacementCodePoint)
		return stateDoctypeName
	default:
		t.builder.appendName(r)
		return stateDoctypeName
	}
}

func (t *Tokenizer) afterDoctypeName(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateAfterDoctypeName
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return stateData
	}
	keyword := string(r) + t.stream.Lookahead(5)
	if strings.EqualFold(keyword, "PUBLIC") {
		t.stream.Discard(5)
		return stateAfterDoctypePublicKeyword
	}
	if strings.EqualFold(keyword, "SYSTEM") {
		t.stream.Discard(5)
		return stateAfterDoctypeSystemKeyword
	}
	t.warn(WarnInvalidCharacterSequenceAfterDoctypeName)
	t.builder.setForceQuirks()
	t.stream.Reconsume()
	return stateBogusDoctype
}

func (t *Tokenizer) afterDoctypePublicKeyword(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeDoctypePublicIdentifier
	case r == '"':
		t.warn(WarnMissingWhitespaceAfterPublicKeyword)
		t.builder.setPublicID()
		return stateDoctypePublicIdentifierDoubleQuoted
	case r == '\'':
		t.warn(WarnMissingWhitespaceAfterPublicKeyword)
		t.builder.setPublicID()
		return stateDoctypePublicIdentifierSingleQuoted
	case r == '>':
		t.warn(WarnMissingDoctypePublicIdentifier)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.warn(WarnMissingQuoteBeforePublicIdentifier)
		t.builder.setForceQuirks()
		t.stream.Reconsume()
		return stateBogusDoctype
	}
}

func (t *Tokenizer) beforeDoctypePublicIdentifier(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeDoctypePublicIdentifier
	case r == '"':
		t.builder.setPublicID()
		return stateDoctypePublicIdentifierDoubleQuoted
	case r == '\'':
		t.builder.setPublicID()
		return stateDoctypePublicIdentifierSingleQuoted
	case r == '>':
		t.warn(WarnMissingDoctypePublicIdentifier)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.warn(WarnMissingQuoteBeforePublicIdentifier)
		t.builder.setForceQuirks()
		t.stream.Reconsume()
		return stateBogusDoctype
	}
}

func (t *Tokenizer) doctypePublicIdentifier(r rune, eof bool, quote rune, self state) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case quote:
		return stateAfterDoctypePublicIdentifier
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendPublicID(replacementCodePoint)
		return self
	case '>':
		t.warn(WarnAbruptDoctypePublicIdentifier)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.builder.appendPublicID(r)
		return self
	}
}

func (t *Tokenizer) afterDoctypePublicIdentifier(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBetweenDoctypePublicAndSystemIdentifiers
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return stateData
	case r == '"':
		t.warn(WarnMissingWhitespaceBetweenDoctypeIdentifiers)
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierDoubleQuoted
	case r == '\'':
		t.warn(WarnMissingWhitespaceBetweenDoctypeIdentifiers)
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierSingleQuoted
	default:
		t.warn(WarnMissingQuoteBeforeSystemIdentifier)
		t.builder.setForceQuirks()
		t.stream.Reconsume()
		return stateBogusDoctype
	}
}

func (t *Tokenizer) betweenDoctypePublicAndSystemIdentifiers(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBetweenDoctypePublicAndSystemIdentifiers
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return stateData
	case r == '"':
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierDoubleQuoted
	case r == '\'':
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierSingleQuoted
	default:
		t.warn(WarnMissingQuoteBeforeSystemIdentifier)
		t.builder.setForceQuirks()
		t.stream.Reconsume()
		return stateBogusDoctype
	}
}

func (t *Tokenizer) afterDoctypeSystemKeyword(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeDoctypeSystemIdentifier
	case r == '"':
		t.warn(WarnMissingWhitespaceAfterSystemKeyword)
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierDoubleQuoted
	case r == '\'':
		t.warn(WarnMissingWhitespaceAfterSystemKeyword)
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierSingleQuoted
	case r == '>':
		t.warn(WarnMissingDoctypeSystemIdentifier)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.warn(WarnMissingQuoteBeforeSystemIdentifier)
		t.builder.setForceQuirks()
		t.stream.Reconsume()
		return stateBogusDoctype
	}
}

func (t *Tokenizer) beforeDoctypeSystemIdentifier(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateBeforeDoctypeSystemIdentifier
	case r == '"':
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierDoubleQuoted
	case r == '\'':
		t.builder.setSystemID()
		return stateDoctypeSystemIdentifierSingleQuoted
	case r == '>':
		t.warn(WarnMissingDoctypeSystemIdentifier)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.warn(WarnMissingQuoteBeforeSystemIdentifier)
		t.builder.setForceQuirks()
		t.stream.Reconsume()
		return stateBogusDoctype
	}
}

func (t *Tokenizer) doctypeSystemIdentifier(r rune, eof bool, quote rune, self state) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case quote:
		return stateAfterDoctypeSystemIdentifier
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		t.builder.appendSystemID(replacementCodePoint)
		return self
	case '>':
		t.warn(WarnAbruptDoctypeSystemIdentifier)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.builder.appendSystemID(r)
		return self
	}
}

func (t *Tokenizer) afterDoctypeSystemIdentifier(r rune, eof bool) state {
	if eof {
		t.warn(WarnEOFInDoctype)
		t.builder.setForceQuirks()
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch {
	case isTokenWhitespace(r):
		return stateAfterDoctypeSystemIdentifier
	case r == '>':
		t.emit(t.builder.doctypeToken())
		return stateData
	default:
		t.warn(WarnUnexpectedCharacterAfterSystemIdentifier)
		t.stream.Reconsume()
		return stateBogusDoctype
	}
}

func (t *Tokenizer) bogusDoctype(r rune, eof bool) state {
	if eof {
		t.emit(t.builder.doctypeToken(), endOfStreamToken())
		return stateData
	}
	switch r {
	case '>':
		t.emit(t.builder.doctypeToken())
		return stateData
	case 0:
		t.warn(WarnUnexpectedNullCharacter)
		return stateBogusDoctype
	default:
		return stateBogusDoctype
	}
}

func isTokenWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || isASCIIUpper(r)
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || isASCIIDigit(r)
}

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'A' && r <= 'F') || (r >= 'a' && r <= 'f')
}

func toASCIILower(r rune) rune {
	if isASCIIUpper(r) {
		return r + 0x20
	}
	return r
}
