// Package book assembles a manuscript into a single-chapter EPUB.
package book

import (
	"errors"
	"fmt"
	stdhtml "html"
	"os"
	"strings"

	epub "github.com/go-shiori/go-epub"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"tublisher/internal/staging"
	"tublisher/internal/videoid"
)

// ErrPackaging indicates the document could not be produced. It is the
// only content-stage failure that surfaces to the caller.
var ErrPackaging = errors.New("document packaging failed")

// Assembler writes finished EPUB files into the staging tree.
type Assembler struct {
	stagingDir string
	author     string
	language   string
}

// NewAssembler constructs an Assembler writing into the staging tree.
func NewAssembler(stagingDir, author, language string) *Assembler {
	return &Assembler{stagingDir: stagingDir, author: author, language: language}
}

// Assemble renders the manuscript into an EPUB and returns the staged
// file path. Title and manuscript are normalized to composed form
// independently, since they arrive from different sources.
func (a *Assembler) Assemble(title, manuscriptMarkdown string, id videoid.ID, sourceURL string) (string, error) {
	title = norm.NFC.String(strings.TrimSpace(title))
	manuscriptMarkdown = norm.NFC.String(manuscriptMarkdown)

	body := renderChapter(title, manuscriptMarkdown, sourceURL)

	doc, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("%w: create document: %w", ErrPackaging, err)
	}
	doc.SetAuthor(a.author)
	doc.SetLang(a.language)
	doc.SetIdentifier("urn:uuid:" + uuid.NewString())
	doc.SetDescription(fmt.Sprintf("Generated from YouTube video %s", id))

	if _, err := doc.AddSection(body, title, "", ""); err != nil {
		return "", fmt.Errorf("%w: add chapter: %w", ErrPackaging, err)
	}

	if err := os.MkdirAll(staging.BookDir(a.stagingDir), 0o755); err != nil {
		return "", fmt.Errorf("%w: prepare staging: %w", ErrPackaging, err)
	}
	path := staging.BookPath(a.stagingDir, id.String())
	if err := doc.Write(path); err != nil {
		return "", fmt.Errorf("%w: write %s: %w", ErrPackaging, path, err)
	}
	return path, nil
}

// renderChapter wraps the converted manuscript with the disclaimer
// banner and the source attribution footer.
func renderChapter(title, manuscriptMarkdown, sourceURL string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	converted := markdown.ToHTML([]byte(manuscriptMarkdown), p, renderer)

	var b strings.Builder
	b.WriteString("<h1>")
	b.WriteString(htmlEscape(title))
	b.WriteString("</h1>\n")
	b.WriteString("<p><em>This chapter was rewritten from video content by an AI model and may contain errors.</em></p>\n")
	b.Write(converted)
	b.WriteString("\n<hr/>\n<p>Source: <a href=\"")
	b.WriteString(htmlEscape(sourceURL))
	b.WriteString("\">")
	b.WriteString(htmlEscape(sourceURL))
	b.WriteString("</a></p>\n")
	return b.String()
}

func htmlEscape(s string) string {
	return stdhtml.EscapeString(s)
}
