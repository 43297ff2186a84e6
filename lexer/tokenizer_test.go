package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type attributeAccuracyTestcase struct {
	inHTML string            // snippet to tokenize, first token must be a start tag
	attrs  map[string]string // expected attributes on that token
}

var attributeAccuracyTests = []attributeAccuracyTestcase{
	{"<head></head>", map[string]string{}},
	{"<script src='123' onload='test'></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<a href='https://example.com' onclick='alert(1)'>Click this</a>", map[string]string{
		"href":    "https://example.com",
		"onclick": "alert(1)",
	}},
	// later occurrences of a name replace earlier ones
	{"<script src='123' src='456'></script>", map[string]string{
		"src": "456",
	}},
	{"<script src=123 onload=test></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script src='123' onload='test' ></script>", map[string]string{
		"src":    "123",
		"onload": "test",
	}},
	{"<script =src='123'onload='test' ></script>", map[string]string{
		"=src":   "123",
		"onload": "test",
	}},
	{"<script src></script>", map[string]string{
		"src": "",
	}},
	{"<script src test></script>", map[string]string{
		"src":  "",
		"test": "",
	}},
	{"<script 'asd></script>", map[string]string{
		"'asd": "",
	}},
	{"<script <asd></script>", map[string]string{
		"<asd": "",
	}},
	{"<script ABC=123></script>", map[string]string{
		"abc": "123",
	}},
	{"<script abc='\u0000123'></script>", map[string]string{
		"abc": "\uFFFD123",
	}},
	{"<script abc=></script>", map[string]string{
		"abc": "",
	}},
	{"<script\tabc=123></script>", map[string]string{
		"abc": "123",
	}},
	// whitespace around = must not split the pair into two attributes
	{"<a x = 1>", map[string]string{
		"x": "1",
	}},
	{"<input value=\"a&amp;b\">", map[string]string{
		"value": "a&b",
	}},
	{"<input disabled value='x'/>", map[string]string{
		"disabled": "",
		"value":    "x",
	}},
}

func TestAttributeAccuracy(t *testing.T) {
	for _, tt := range attributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			tokens, _ := Tokenize(tt.inHTML)
			require.NotEmpty(t, tokens)
			tok := tokens[0]
			require.Equal(t, StartTagToken, tok.Type)
			got := map[string]string{}
			for _, a := range tok.Attributes {
				got[a.Name] = a.Value
			}
			assert.Equal(t, tt.attrs, got)
		})
	}
}

// firstTag returns the first tag token in the stream, failing the test if
// none exists.
func firstTag(t *testing.T, tokens []Token) Token {
	t.Helper()
	for _, tok := range tokens {
		if tok.Type == StartTagToken || tok.Type == EndTagToken {
			return tok
		}
	}
	t.Fatal("no tag token in stream")
	return Token{}
}

func TestTokenStreams(t *testing.T) {
	tests := []struct {
		name   string
		inHTML string
		want   []Token
	}{
		{
			name:   "empty input",
			inHTML: "",
			want:   []Token{{Type: EndOfStreamToken}},
		},
		{
			name:   "bare text",
			inHTML: "hi",
			want: []Token{
				{Type: TextToken, Data: "hi"},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "simple element",
			inHTML: "<p>x</p>",
			want: []Token{
				{Type: StartTagToken, Name: "p"},
				{Type: TextToken, Data: "x"},
				{Type: EndTagToken, Name: "p"},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "tag names fold to lowercase",
			inHTML: "<DIV></DiV>",
			want: []Token{
				{Type: StartTagToken, Name: "div"},
				{Type: EndTagToken, Name: "div"},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "self-closing tag",
			inHTML: "<br/>",
			want: []Token{
				{Type: StartTagToken, Name: "br", SelfClosing: true},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "character references in text",
			inHTML: "&amp;&#65;&#x42;",
			want: []Token{
				{Type: TextToken, Data: "&AB"},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "comment",
			inHTML: "<!-- note -->after",
			want: []Token{
				{Type: CommentToken, Data: " note "},
				{Type: TextToken, Data: "after"},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "lone ampersand is literal",
			inHTML: "a & b",
			want: []Token{
				{Type: TextToken, Data: "a & b"},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "stray less-than is literal",
			inHTML: "1 < 2",
			want: []Token{
				{Type: TextToken, Data: "1 < 2"},
				{Type: EndOfStreamToken},
			},
		},
		{
			name:   "unterminated tag yields end of stream",
			inHTML: "<a href",
			want: []Token{
				{Type: EndOfStreamToken},
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tokens, _ := Tokenize(tt.inHTML)
			if diff := cmp.Diff(tt.want, Coalesce(tokens)); diff != "" {
				t.Errorf("token stream mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScriptContentIsNotTokenized(t *testing.T) {
	tokens, _ := Tokenize("<script>if (a < b && c) { d(); }</script>")
	tokens = Coalesce(tokens)
	want := []Token{
		{Type: StartTagToken, Name: "script"},
		{Type: TextToken, Data: "if (a < b && c) { d(); }"},
		{Type: EndTagToken, Name: "script"},
		{Type: EndOfStreamToken},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

// Tokenizing the concatenation of two well-formed fragments yields the
// concatenation of their token streams.
func TestFragmentConcatenation(t *testing.T) {
	fragments := []struct{ a, b string }{
		{"<p>x</p>", "<div>y</div>"},
		{"text", "<!--c-->"},
		{"&amp;", "&#65;"},
		{"<script>a</script>", "<title>b</title>"},
		{"<!DOCTYPE html>", "<html></html>"},
	}
	for _, f := range fragments {
		aTokens, _ := Tokenize(f.a)
		bTokens, _ := Tokenize(f.b)
		joined, _ := Tokenize(f.a + f.b)

		var want []Token
		want = append(want, aTokens[:len(aTokens)-1]...) // drop a's end of stream
		want = append(want, bTokens...)
		if diff := cmp.Diff(want, joined); diff != "" {
			t.Errorf("Tokenize(%q + %q) mismatch (-want +got):\n%s", f.a, f.b, diff)
		}
	}
}

func TestAttributeKeepsUnresolvedReferenceLiteral(t *testing.T) {
	tokens, warnings := Tokenize("<a x='&notavalidname;'>")
	require.NotEmpty(t, tokens)
	require.Len(t, tokens[0].Attributes, 1)
	assert.Equal(t, "&notavalidname;", tokens[0].Attributes[0].Value)
	require.NotEmpty(t, warnings)
	assert.Equal(t, WarnUnresolvedCharacterReference, warnings[0].Code)
}

func TestScriptEndTagNeedsMatchingName(t *testing.T) {
	tokens, _ := Tokenize("<script></div></script>")
	tokens = Coalesce(tokens)
	want := []Token{
		{Type: StartTagToken, Name: "script"},
		{Type: TextToken, Data: "</div>"},
		{Type: EndTagToken, Name: "script"},
		{Type: EndOfStreamToken},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestScriptEscapedComment(t *testing.T) {
	// "<!--" inside script data suspends end-tag matching for other names
	// but the matching </script> still closes the element.
	tokens, _ := Tokenize("<script><!-- x --></script>")
	tokens = Coalesce(tokens)
	want := []Token{
		{Type: StartTagToken, Name: "script"},
		{Type: TextToken, Data: "<!-- x -->"},
		{Type: EndTagToken, Name: "script"},
		{Type: EndOfStreamToken},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestRCDATAResolvesCharacterReferences(t *testing.T) {
	tokens, _ := Tokenize("<title>a &amp; <b></title>")
	tokens = Coalesce(tokens)
	want := []Token{
		{Type: StartTagToken, Name: "title"},
		{Type: TextToken, Data: "a & <b>"},
		{Type: EndTagToken, Name: "title"},
		{Type: EndOfStreamToken},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestRawtextIgnoresMarkup(t *testing.T) {
	tokens, _ := Tokenize("<style>a > b { color: red; }</style>")
	tokens = Coalesce(tokens)
	want := []Token{
		{Type: StartTagToken, Name: "style"},
		{Type: TextToken, Data: "a > b { color: red; }"},
		{Type: EndTagToken, Name: "style"},
		{Type: EndOfStreamToken},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaintextConsumesEverything(t *testing.T) {
	tokens, _ := Tokenize("<plaintext></plaintext><div>&amp;")
	tokens = Coalesce(tokens)
	want := []Token{
		{Type: StartTagToken, Name: "plaintext"},
		{Type: TextToken, Data: "</plaintext><div>&amp;"},
		{Type: EndOfStreamToken},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("token stream mismatch (-want +got):\n%s", diff)
	}
}

func TestDoctype(t *testing.T) {
	tests := []struct {
		name   string
		inHTML string
		want   Token
	}{
		{
			name:   "html5",
			inHTML: "<!DOCTYPE html>",
			want:   Token{Type: DoctypeToken, Name: "html"},
		},
		{
			name:   "case folded keyword and name",
			inHTML: "<!doctype HTML>",
			want:   Token{Type: DoctypeToken, Name: "html"},
		},
		{
			name:   "missing name forces quirks",
			inHTML: "<!DOCTYPE>",
			want:   Token{Type: DoctypeToken, ForceQuirks: true},
		},
		{
			name:   "public identifier",
			inHTML: `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN">`,
			want: Token{
				Type:        DoctypeToken,
				Name:        "html",
				PublicID:    "-//W3C//DTD HTML 4.01//EN",
				HasPublicID: true,
			},
		},
		{
			name:   "public and system identifiers",
			inHTML: `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1.dtd">`,
			want: Token{
				Type:        DoctypeToken,
				Name:        "html",
				PublicID:    "-//W3C//DTD XHTML 1.0//EN",
				SystemID:    "http://www.w3.org/TR/xhtml1/DTD/xhtml1.dtd",
				HasPublicID: true,
				HasSystemID: true,
			},
		},
		{
			name:   "system identifier only",
			inHTML: `<!DOCTYPE html SYSTEM "about:legacy-compat">`,
			want: Token{
				Type:        DoctypeToken,
				Name:        "html",
				SystemID:    "about:legacy-compat",
				HasSystemID: true,
			},
		},
		{
			name:   "truncated doctype forces quirks",
			inHTML: "<!DOCTYPE html",
			want:   Token{Type: DoctypeToken, Name: "html", ForceQuirks: true},
		},
		{
			name:   "garbage after name forces quirks",
			inHTML: "<!DOCTYPE html nonsense>",
			want:   Token{Type: DoctypeToken, Name: "html", ForceQuirks: true},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tokens, _ := Tokenize(tt.inHTML)
			require.NotEmpty(t, tokens)
			assert.Equal(t, tt.want, tokens[0])
		})
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name     string
		inHTML   string
		wantData string
		wantCode WarningCode
	}{
		{"plain", "<!--x-->", "x", ""},
		{"empty", "<!---->", "", ""},
		{"abrupt empty", "<!-->", "", WarnAbruptClosingOfEmptyComment},
		{"abrupt dash", "<!--->", "", WarnAbruptClosingOfEmptyComment},
		{"dashes inside", "<!--a-b-->", "a-b", ""},
		{"bang close", "<!--a--!>", "a", WarnIncorrectlyClosedComment},
		{"nested open", "<!--a<!--b-->", "a<!--b", WarnNestedComment},
		{"unclosed", "<!--a", "a", WarnEOFInComment},
		{"bogus from pi", "<?xml?>", "?xml?", WarnUnexpectedQuestionMarkInsteadOfTagName},
		{"bogus from bad end tag", "</#>", "#", WarnInvalidFirstCharacterOfTagName},
		{"cdata degrades to bogus comment", "<![CDATA[x]]>", "[CDATA[x]]", WarnCDATAInHTMLContent},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tokens, warnings := Tokenize(tt.inHTML)
			require.NotEmpty(t, tokens)
			require.Equal(t, CommentToken, tokens[0].Type)
			assert.Equal(t, tt.wantData, tokens[0].Data)
			if tt.wantCode == "" {
				assert.Empty(t, warnings)
			} else {
				require.NotEmpty(t, warnings)
				codes := make([]WarningCode, len(warnings))
				for i, w := range warnings {
					codes[i] = w.Code
				}
				assert.Contains(t, codes, tt.wantCode)
			}
		})
	}
}

func TestEndTagDropsAttributesAndSolidus(t *testing.T) {
	tokens, warnings := Tokenize("</div class='x'/>")
	tok := firstTag(t, tokens)
	assert.Equal(t, EndTagToken, tok.Type)
	assert.Empty(t, tok.Attributes)
	assert.False(t, tok.SelfClosing)
	codes := make([]WarningCode, len(warnings))
	for i, w := range warnings {
		codes[i] = w.Code
	}
	assert.Contains(t, codes, WarnEndTagWithAttributes)
	assert.Contains(t, codes, WarnEndTagWithTrailingSolidus)
}

func TestDuplicateAttributeWarned(t *testing.T) {
	_, warnings := Tokenize("<a x='1' x='2'>")
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnDuplicateAttribute, warnings[0].Code)
}

func TestWarningPositions(t *testing.T) {
	_, warnings := Tokenize("ok\n<a x='1' x='2'>")
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Pos.Line)
}

func TestNewlineNormalization(t *testing.T) {
	tokens, _ := Tokenize("a\r\nb\rc")
	tokens = Coalesce(tokens)
	require.NotEmpty(t, tokens)
	assert.Equal(t, "a\nb\nc", tokens[0].Data)
}

func TestNullCharacterHandling(t *testing.T) {
	// literal in plain text, replaced inside markup constructs
	tokens, warnings := Tokenize("a\u0000b")
	tokens = Coalesce(tokens)
	assert.Equal(t, "a\u0000b", tokens[0].Data)
	require.Len(t, warnings, 1)
	assert.Equal(t, WarnUnexpectedNullCharacter, warnings[0].Code)

	tokens, _ = Tokenize("<title>a\u0000b</title>")
	tokens = Coalesce(tokens)
	assert.Equal(t, "a\uFFFDb", tokens[1].Data)
}

// Every input, however mangled, must end in exactly one end-of-stream token
// with no panic along the way.
func TestTotality(t *testing.T) {
	inputs := []string{
		"",
		"<",
		"</",
		"<!",
		"<!-",
		"<!--",
		"<!---",
		"<!doctyp",
		"<!DOCTYPE",
		"<![CDATA[",
		"<a",
		"<a ",
		"<a x",
		"<a x=",
		"<a x='",
		"<a x='y'",
		"<a x='y'/",
		"</a",
		"&",
		"&#",
		"&#x",
		"&#xD800;",
		"&#xFFFFFFFFFFFF;",
		"&not",
		"&noti",
		"<script>",
		"<script><!--",
		"<script><!--<script>",
		"<script><!--<script></script>",
		"<title>&",
		"<style><",
		"<style></sty",
		"<!DOCTYPE html PUBLIC",
		"<!DOCTYPE html PUBLIC '",
		"<!DOCTYPE html SYSTEM 'x'",
		strings.Repeat("<a b='&amp;'>", 50),
	}
	for _, in := range inputs {
		in := in
		t.Run(in, func(t *testing.T) {
			tokens, _ := Tokenize(in)
			require.NotEmpty(t, tokens)
			eos := 0
			for _, tok := range tokens {
				if tok.Type == EndOfStreamToken {
					eos++
				}
			}
			assert.Equal(t, 1, eos)
			assert.Equal(t, EndOfStreamToken, tokens[len(tokens)-1].Type)
		})
	}
}

// Tokenizing a document in one piece must match tokenizing any of its
// prefixes only in that the automaton never fails; the pull API must keep
// yielding until the end-of-stream token and then stop.
func TestPullAPITermination(t *testing.T) {
	tok := New("<p>x</p>")
	n := 0
	for tok.Next() {
		tok.Token()
		n++
		require.Less(t, n, 100)
	}
	assert.False(t, tok.Next())
	assert.Equal(t, EndOfStreamToken, tok.Token().Type)
}

// TestStateTransitions checks each handler returns the expected next state
// for its interesting inputs. Flows needing accumulated state are covered by
// the stream tests above; the basic edges are pinned here.
func TestStateTransitions(t *testing.T) {
	tests := []struct {
		r    rune
		in   state
		want state
	}{
		{'&', stateData, stateCharacterReference},
		{'<', stateData, stateTagOpen},
		{'\u0000', stateData, stateData},
		{'a', stateData, stateData},

		{'&', stateRCDATA, stateCharacterReference},
		{'<', stateRCDATA, stateRCDATALessThanSign},
		{'a', stateRCDATA, stateRCDATA},

		{'<', stateRawtext, stateRawtextLessThanSign},
		{'&', stateRawtext, stateRawtext},
		{'a', stateRawtext, stateRawtext},

		{'<', stateScriptData, stateScriptDataLessThanSign},
		{'a', stateScriptData, stateScriptData},

		{'<', statePlaintext, statePlaintext},
		{'&', statePlaintext, statePlaintext},

		{'!', stateTagOpen, stateMarkupDeclarationOpen},
		{'/', stateTagOpen, stateEndTagOpen},
		{'a', stateTagOpen, stateTagName},
		{'Z', stateTagOpen, stateTagName},
		{'?', stateTagOpen, stateBogusComment},
		{'1', stateTagOpen, stateData},

		{'a', stateEndTagOpen, stateTagName},
		{'>', stateEndTagOpen, stateData},
		{'1', stateEndTagOpen, stateBogusComment},

		{' ', stateTagName, stateBeforeAttributeName},
		{'/', stateTagName, stateSelfClosingStartTag},
		{'>', stateTagName, stateData},
		{'a', stateTagName, stateTagName},

		{' ', stateBeforeAttributeName, stateBeforeAttributeName},
		{'/', stateBeforeAttributeName, stateAfterAttributeName},
		{'=', stateBeforeAttributeName, stateAttributeName},
		{'a', stateBeforeAttributeName, stateAttributeName},

		{' ', stateAttributeName, stateAfterAttributeName},
		{'=', stateAttributeName, stateBeforeAttributeValue},
		{'a', stateAttributeName, stateAttributeName},

		{'/', stateAfterAttributeName, stateSelfClosingStartTag},
		{'=', stateAfterAttributeName, stateBeforeAttributeValue},
		{'>', stateAfterAttributeName, stateData},
		{'a', stateAfterAttributeName, stateAttributeName},

		{'"', stateBeforeAttributeValue, stateAttributeValueDoubleQuoted},
		{'\'', stateBeforeAttributeValue, stateAttributeValueSingleQuoted},
		{'>', stateBeforeAttributeValue, stateData},
		{'a', stateBeforeAttributeValue, stateAttributeValueUnquoted},

		{'"', stateAttributeValueDoubleQuoted, stateAfterAttributeValueQuoted},
		{'&', stateAttributeValueDoubleQuoted, stateCharacterReference},
		{'\'', stateAttributeValueSingleQuoted, stateAfterAttributeValueQuoted},
		{' ', stateAttributeValueUnquoted, stateBeforeAttributeName},
		{'>', stateAttributeValueUnquoted, stateData},

		{' ', stateAfterAttributeValueQuoted, stateBeforeAttributeName},
		{'/', stateAfterAttributeValueQuoted, stateSelfClosingStartTag},
		{'>', stateAfterAttributeValueQuoted, stateData},
		{'a', stateAfterAttributeValueQuoted, stateBeforeAttributeName},

		{'>', stateSelfClosingStartTag, stateData},
		{'a', stateSelfClosingStartTag, stateBeforeAttributeName},

		{'>', stateBogusComment, stateData},
		{'a', stateBogusComment, stateBogusComment},

		{'x', stateMarkupDeclarationOpen, stateBogusComment},

		{'-', stateCommentStart, stateCommentStartDash},
		{'a', stateCommentStart, stateComment},
		{'-', stateComment, stateCommentEndDash},
		{'<', stateComment, stateCommentLessThanSign},
		{'a', stateComment, stateComment},
		{'-', stateCommentEndDash, stateCommentEnd},
		{'a', stateCommentEndDash, stateComment},
		{'>', stateCommentEnd, stateData},
		{'!', stateCommentEnd, stateCommentEndBang},
		{'-', stateCommentEnd, stateCommentEnd},
		{'a', stateCommentEnd, stateComment},

		{' ', stateDoctype, stateBeforeDoctypeName},
		{'a', stateBeforeDoctypeName, stateDoctypeName},
		{' ', stateDoctypeName, stateAfterDoctypeName},
		{'>', stateDoctypeName, stateData},
		{'a', stateDoctypeName, stateDoctypeName},
		{'"', stateBeforeDoctypePublicIdentifier, stateDoctypePublicIdentifierDoubleQuoted},
		{'\'', stateBeforeDoctypePublicIdentifier, stateDoctypePublicIdentifierSingleQuoted},
		{'"', stateDoctypePublicIdentifierDoubleQuoted, stateAfterDoctypePublicIdentifier},
		{'>', stateBogusDoctype, stateData},
		{'a', stateBogusDoctype, stateBogusDoctype},
	}
	for _, tt := range tests {
		tok := New(string(tt.r))
		tok.pushReturnState(stateData) // charref entry edges pop on exit
		r, _ := tok.stream.Consume()
		require.Equal(t, tt.r, r)
		got := tok.step(tt.in, r, false)
		assert.Equal(t, tt.want, got, "state %d on %q", tt.in, string(tt.r))
	}
}

func TestContentStateSwitching(t *testing.T) {
	tests := []struct {
		name string
		want state
	}{
		{"title", stateRCDATA},
		{"textarea", stateRCDATA},
		{"style", stateRawtext},
		{"xmp", stateRawtext},
		{"iframe", stateRawtext},
		{"noembed", stateRawtext},
		{"noframes", stateRawtext},
		{"script", stateScriptData},
		{"plaintext", statePlaintext},
		{"div", stateData},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, contentStateFor(tt.name), tt.name)
	}
}
