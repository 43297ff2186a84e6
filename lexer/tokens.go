package lexer

import (
	"fmt"
	"strings"
)

// TokenType identifies the variant of a Token.
type TokenType uint8

const (
	TextToken TokenType = iota
	StartTagToken
	EndTagToken
	CommentToken
	DoctypeToken
	EndOfStreamToken
)

func (t TokenType) String() string {
	switch t {
	case TextToken:
		return "Text"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "Doctype"
	case EndOfStreamToken:
		return "EndOfStream"
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

// Attribute is one name/value pair on a start tag. Order of first appearance
// is preserved; a re-declared name overwrites the earlier value in place.
type Attribute struct {
	Name  string
	Value string
}

// Token is one completed lexical unit of markup, ready for a downstream
// consumer. Which fields are meaningful depends on Type: tags use Name,
// Attributes and SelfClosing; text and comments use Data; doctypes use Name,
// the identifier fields and ForceQuirks.
//
// Text tokens carry a single code point each. Consumers that want runs can
// merge them with Coalesce.
type Token struct {
	Type        TokenType
	Name        string
	Data        string
	Attributes  []Attribute
	SelfClosing bool
	PublicID    string
	SystemID    string
	HasPublicID bool
	HasSystemID bool
	ForceQuirks bool
}

func (t Token) String() string {
	switch t.Type {
	case TextToken:
		return fmt.Sprintf("%q", t.Data)
	case StartTagToken:
		var b strings.Builder
		b.WriteByte('<')
		b.WriteString(t.Name)
		for _, a := range t.Attributes {
			fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
		}
		if t.SelfClosing {
			b.WriteByte('/')
		}
		b.WriteByte('>')
		return b.String()
	case EndTagToken:
		return "</" + t.Name + ">"
	case CommentToken:
		return "<!--" + t.Data + "-->"
	case DoctypeToken:
		var b strings.Builder
		b.WriteString("<!DOCTYPE")
		if t.Name != "" {
			b.WriteByte(' ')
			b.WriteString(t.Name)
		}
		if t.HasPublicID {
			fmt.Fprintf(&b, " PUBLIC %q", t.PublicID)
		}
		if t.HasSystemID {
			fmt.Fprintf(&b, " SYSTEM %q", t.SystemID)
		}
		if t.ForceQuirks {
			b.WriteString(" (quirks)")
		}
		b.WriteByte('>')
		return b.String()
	case EndOfStreamToken:
		return "<end of stream>"
	}
	return t.Type.String()
}

// Coalesce merges runs of adjacent text tokens into single tokens, leaving
// every other token untouched. The merged stream is semantically equivalent
// to the input stream.
func Coalesce(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == TextToken && len(out) > 0 && out[len(out)-1].Type == TextToken {
			out[len(out)-1].Data += tok.Data
			continue
		}
		out = append(out, tok)
	}
	return out
}

func textToken(r rune) Token {
	return Token{Type: TextToken, Data: string(r)}
}

func endOfStreamToken() Token {
	return Token{Type: EndOfStreamToken}
}

type tagKind uint8

const (
	startTag tagKind = iota
	endTag
)

// tokenBuilder accumulates the fields of the token under construction across
// tokenization steps. One instance is reused for the whole run: reset begins
// a new token, the append methods grow individual fields one rune at a time,
// and the *Token constructors snapshot the builder into a finished Token.
//
// The temporary buffer deliberately survives reset: it belongs to whatever
// state is currently borrowing it (raw-text end tag matching, character
// references), not to the token being built.
type tokenBuilder struct {
	kind        tagKind
	name        strings.Builder
	data        strings.Builder
	attrName    strings.Builder
	attrValue   strings.Builder
	attrs       []Attribute
	publicID    strings.Builder
	systemID    strings.Builder
	hasPublicID bool
	hasSystemID bool
	selfClosing bool
	forceQuirks bool
	tempBuf     []rune
}

func newTokenBuilder() *tokenBuilder {
	return &tokenBuilder{}
}

// reset abandons any in-progress token and prepares the builder for a new
// one. The temporary buffer is left alone.
func (b *tokenBuilder) reset() {
	b.kind = startTag
	b.name.Reset()
	b.data.Reset()
	b.attrName.Reset()
	b.attrValue.Reset()
	b.attrs = nil
	b.publicID.Reset()
	b.systemID.Reset()
	b.hasPublicID = false
	b.hasSystemID = false
	b.selfClosing = false
	b.forceQuirks = false
}

func (b *tokenBuilder) appendName(r rune)      { b.name.WriteRune(r) }
func (b *tokenBuilder) appendData(r rune)      { b.data.WriteRune(r) }
func (b *tokenBuilder) appendAttrName(r rune)  { b.attrName.WriteRune(r) }
func (b *tokenBuilder) appendAttrValue(r rune) { b.attrValue.WriteRune(r) }

// commitAttribute finishes the pending name/value pair. An attribute with no
// value keeps the empty string. A name already present on the tag is not
// appended again; its value is replaced, so the last declaration wins. The
// return value reports whether that overwrite happened.
func (b *tokenBuilder) commitAttribute() (duplicate bool) {
	name := b.attrName.String()
	value := b.attrValue.String()
	b.attrName.Reset()
	b.attrValue.Reset()
	if name == "" {
		return false
	}
	for i := range b.attrs {
		if b.attrs[i].Name == name {
			b.attrs[i].Value = value
			return true
		}
	}
	b.attrs = append(b.attrs, Attribute{Name: name, Value: value})
	return false
}

func (b *tokenBuilder) setSelfClosing() { b.selfClosing = true }
func (b *tokenBuilder) setForceQuirks() { b.forceQuirks = true }

func (b *tokenBuilder) setPublicID() {
	b.hasPublicID = true
	b.publicID.Reset()
}

func (b *tokenBuilder) setSystemID() {
	b.hasSystemID = true
	b.systemID.Reset()
}

func (b *tokenBuilder) appendPublicID(r rune) { b.publicID.WriteRune(r) }
func (b *tokenBuilder) appendSystemID(r rune) { b.systemID.WriteRune(r) }

func (b *tokenBuilder) resetTemp()        { b.tempBuf = b.tempBuf[:0] }
func (b *tokenBuilder) appendTemp(r rune) { b.tempBuf = append(b.tempBuf, r) }
func (b *tokenBuilder) temp() string      { return string(b.tempBuf) }

func (b *tokenBuilder) tagToken() Token {
	typ := StartTagToken
	if b.kind == endTag {
		typ = EndTagToken
	}
	return Token{
		Type:        typ,
		Name:        b.name.String(),
		Attributes:  b.attrs,
		SelfClosing: b.selfClosing,
	}
}

func (b *tokenBuilder) commentToken() Token {
	return Token{Type: CommentToken, Data: b.data.String()}
}

func (b *tokenBuilder) doctypeToken() Token {
	return Token{
		Type:        DoctypeToken,
		Name:        b.name.String(),
		PublicID:    b.publicID.String(),
		SystemID:    b.systemID.String(),
		HasPublicID: b.hasPublicID,
		HasSystemID: b.hasSystemID,
		ForceQuirks: b.forceQuirks,
	}
}
