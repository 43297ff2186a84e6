package lexer

import "fmt"

// WarningCode names one recoverable markup defect. Codes follow the error
// names of the HTML standard where one exists, so diagnostics line up with
// what validators report.
type WarningCode string

const (
	WarnAbruptClosingOfEmptyComment                WarningCode = "abrupt-closing-of-empty-comment"
	WarnAbruptDoctypePublicIdentifier              WarningCode = "abrupt-doctype-public-identifier"
	WarnAbruptDoctypeSystemIdentifier              WarningCode = "abrupt-doctype-system-identifier"
	WarnAbsenceOfDigitsInNumericCharacterRef       WarningCode = "absence-of-digits-in-numeric-character-reference"
	WarnCDATAInHTMLContent                         WarningCode = "cdata-in-html-content"
	WarnCharacterReferenceOutsideUnicodeRange      WarningCode = "character-reference-outside-unicode-range"
	WarnControlCharacterReference                  WarningCode = "control-character-reference"
	WarnDuplicateAttribute                         WarningCode = "duplicate-attribute"
	WarnEndTagWithAttributes                       WarningCode = "end-tag-with-attributes"
	WarnEndTagWithTrailingSolidus                  WarningCode = "end-tag-with-trailing-solidus"
	WarnEOFBeforeTagName                           WarningCode = "eof-before-tag-name"
	WarnEOFInComment                               WarningCode = "eof-in-comment"
	WarnEOFInDoctype                               WarningCode = "eof-in-doctype"
	WarnEOFInScriptCommentLikeText                 WarningCode = "eof-in-script-html-comment-like-text"
	WarnEOFInTag                                   WarningCode = "eof-in-tag"
	WarnIncorrectlyClosedComment                   WarningCode = "incorrectly-closed-comment"
	WarnIncorrectlyOpenedComment                   WarningCode = "incorrectly-opened-comment"
	WarnInvalidCharacterSequenceAfterDoctypeName   WarningCode = "invalid-character-sequence-after-doctype-name"
	WarnInvalidFirstCharacterOfTagName             WarningCode = "invalid-first-character-of-tag-name"
	WarnMissingAttributeValue                      WarningCode = "missing-attribute-value"
	WarnMissingDoctypeName                         WarningCode = "missing-doctype-name"
	WarnMissingDoctypePublicIdentifier             WarningCode = "missing-doctype-public-identifier"
	WarnMissingDoctypeSystemIdentifier             WarningCode = "missing-doctype-system-identifier"
	WarnMissingEndTagName                          WarningCode = "missing-end-tag-name"
	WarnMissingQuoteBeforePublicIdentifier         WarningCode = "missing-quote-before-doctype-public-identifier"
	WarnMissingQuoteBeforeSystemIdentifier         WarningCode = "missing-quote-before-doctype-system-identifier"
	WarnMissingSemicolonAfterCharacterReference    WarningCode = "missing-semicolon-after-character-reference"
	WarnMissingWhitespaceAfterPublicKeyword        WarningCode = "missing-whitespace-after-doctype-public-keyword"
	WarnMissingWhitespaceAfterSystemKeyword        WarningCode = "missing-whitespace-after-doctype-system-keyword"
	WarnMissingWhitespaceBeforeDoctypeName         WarningCode = "missing-whitespace-before-doctype-name"
	WarnMissingWhitespaceBetweenAttributes         WarningCode = "missing-whitespace-between-attributes"
	WarnMissingWhitespaceBetweenDoctypeIdentifiers WarningCode = "missing-whitespace-between-doctype-public-and-system-identifiers"
	WarnNestedComment                              WarningCode = "nested-comment"
	WarnNoncharacterCharacterReference             WarningCode = "noncharacter-character-reference"
	WarnNullCharacterReference                     WarningCode = "null-character-reference"
	WarnSurrogateCharacterReference                WarningCode = "surrogate-character-reference"
	WarnUnexpectedCharacterAfterSystemIdentifier   WarningCode = "unexpected-character-after-doctype-system-identifier"
	WarnUnexpectedCharacterInAttributeName         WarningCode = "unexpected-character-in-attribute-name"
	WarnUnexpectedCharacterInUnquotedAttrValue     WarningCode = "unexpected-character-in-unquoted-attribute-value"
	WarnUnexpectedEqualsSignBeforeAttributeName    WarningCode = "unexpected-equals-sign-before-attribute-name"
	WarnUnexpectedNullCharacter                    WarningCode = "unexpected-null-character"
	WarnUnexpectedQuestionMarkInsteadOfTagName     WarningCode = "unexpected-question-mark-instead-of-tag-name"
	WarnUnexpectedSolidusInTag                     WarningCode = "unexpected-solidus-in-tag"
	WarnUnknownNamedCharacterReference             WarningCode = "unknown-named-character-reference"
	WarnUnresolvedCharacterReference               WarningCode = "unresolved-character-reference"
)

// ParseWarning records one recoverable defect found during tokenization.
// Warnings never stop the token stream; they are collected in the order the
// defects were seen so a host application can surface them as diagnostics.
type ParseWarning struct {
	Code WarningCode
	Pos  Position
}

func (w ParseWarning) String() string {
	return fmt.Sprintf("%s at %d:%d", w.Code, w.Pos.Line, w.Pos.Col)
}
