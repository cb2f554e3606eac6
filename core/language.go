package core

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/dlclark/regexp2"
)

const DefaultTheme = "monokai"

// Language selects how a buffer is highlighted. It is chosen once, from the
// file name, when the buffer is opened.
type Language int

const (
	LanguageNone Language = iota
	LanguageHTML
	LanguageCSS
	LanguageMarkdown
	LanguageCommitMessage
	LanguageGo
	LanguageJSON
)

var languageNames = map[Language]string{
	LanguageNone:          "text",
	LanguageHTML:          "html",
	LanguageCSS:           "css",
	LanguageMarkdown:      "markdown",
	LanguageCommitMessage: "commit",
	LanguageGo:            "go",
	LanguageJSON:          "json",
}

func (l Language) String() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "text"
}

// DetectLanguage picks a language from the file name of path.
func DetectLanguage(path string) Language {
	base := filepath.Base(path)
	if base == "COMMIT_EDITMSG" {
		return LanguageCommitMessage
	}

	switch strings.ToLower(filepath.Ext(base)) {
	case ".html", ".htm":
		return LanguageHTML
	case ".css":
		return LanguageCSS
	case ".md", ".markdown":
		return LanguageMarkdown
	case ".go":
		return LanguageGo
	case ".json":
		return LanguageJSON
	default:
		return LanguageNone
	}
}

// HighlightToken colours the characters in [Start, End). Color is a
// "#rrggbb" string.
type HighlightToken struct {
	Start Position
	End   Position
	Color string
}

// Highlight tokenizes source with the default theme.
func (l Language) Highlight(source string) []HighlightToken {
	return l.HighlightWithTheme(source, DefaultTheme)
}

// HighlightWithTheme tokenizes source and returns coloured ranges. It returns
// nil for LanguageNone or when the source cannot be tokenized.
func (l Language) HighlightWithTheme(source, theme string) []HighlightToken {
	switch l {
	case LanguageNone:
		return nil
	case LanguageCommitMessage:
		return highlightCommitMessage(source)
	default:
		return highlightChroma(l.String(), source, theme)
	}
}

func highlightChroma(language, source, theme string) []HighlightToken {
	lexer := lexers.Get(language)
	if lexer == nil || source == "" {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var (
		tokens []HighlightToken
		pos    Position
	)
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		value := token.Value

		for value != "" {
			segment, rest, newline := strings.Cut(value, "\n")
			end := Position{Row: pos.Row, Col: pos.Col + len([]rune(segment))}
			if segment != "" && entry.Colour.IsSet() {
				tokens = append(tokens, HighlightToken{Start: pos, End: end, Color: entry.Colour.String()})
			}
			pos = end
			if newline {
				pos = Position{Row: pos.Row + 1}
			}
			value = rest
		}
	}

	return tokens
}

const (
	commitPrefixColor  = "#af87ff"
	commitCommentColor = "#808080"
	commitMessageColor = "#87ff00"
)

var commitSyntax = []struct {
	re    *regexp2.Regexp
	color string
}{
	{regexp2.MustCompile(`(#.*)`, regexp2.None), commitCommentColor},
	{regexp2.MustCompile(`^([a-zA-Z_-]+):`, regexp2.Multiline), commitPrefixColor},
	{regexp2.MustCompile(`[a-zA-Z_-]+(:)`, regexp2.None), commitCommentColor},
	{regexp2.MustCompile(`: (.+)$`, regexp2.Multiline), commitMessageColor},
}

// highlightCommitMessage colours conventional-commit headers ("fix: ...")
// and comment lines. Each pattern colours its first capture group.
func highlightCommitMessage(source string) []HighlightToken {
	runes := []rune(source)
	lineStarts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	toPosition := func(offset int) Position {
		row := 0
		for row+1 < len(lineStarts) && lineStarts[row+1] <= offset {
			row++
		}
		return Position{Row: row, Col: offset - lineStarts[row]}
	}

	var tokens []HighlightToken
	for _, syntax := range commitSyntax {
		m, err := syntax.re.FindRunesMatch(runes)
		for err == nil && m != nil {
			if g := m.GroupByNumber(1); g != nil && g.Length > 0 {
				tokens = append(tokens, HighlightToken{
					Start: toPosition(g.Index),
					End:   toPosition(g.Index + g.Length),
					Color: syntax.color,
				})
			}
			m, err = syntax.re.FindNextMatch(m)
		}
	}

	return tokens
}
