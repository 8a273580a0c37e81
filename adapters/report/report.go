// Package report renders a tally summary as Markdown and as a standalone HTML page.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"kuesioner/domain/core"
	"kuesioner/domain/survey"
)

// DefaultTitle heads reports when no title is given
const DefaultTitle = "Questionnaire summary"

// Markdown writes the summary as a heading, a per-dimension table and the overall rates
func Markdown(title string, summary survey.Summary, generatedAt time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", escapeMarkdown(cleanTitle(title)))
	fmt.Fprintf(&buf, "Generated %s from **%d** responses.\n\n", core.ISOTimestamp(generatedAt), summary.TotalResponses)

	buf.WriteString("| Dimension | Ya | Tidak | Answered | Yes rate |\n")
	buf.WriteString("|---|---:|---:|---:|---:|\n")
	for _, ds := range summary.Dimensions {
		fmt.Fprintf(&buf, "| %s | %d | %d | %d | %s |\n",
			ds.Dimension, ds.Yes, ds.No, ds.Answered, percent(ds.YesRate, ds.Answered))
	}

	fmt.Fprintf(&buf, "\nMean yes rate: %.1f%% (std dev %.1f points)\n",
		summary.MeanYesRate*100, summary.YesRateStdDev*100)
	return buf.Bytes()
}

// HTML renders the Markdown report as a complete HTML page
func HTML(title string, summary survey.Summary, generatedAt time.Time) []byte {
	title = cleanTitle(title)

	// Smartypants writes the page title without escaping it
	var pageTitle bytes.Buffer
	html.EscapeHTML(&pageTitle, []byte(title))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse(Markdown(title, summary, generatedAt))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage | html.SkipHTML | html.Safelink,
		Title: pageTitle.String(),
	})
	return markdown.Render(doc, renderer)
}

// cleanTitle keeps the title on a single heading line
func cleanTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	if title == "" {
		return DefaultTitle
	}
	return title
}

// escapeMarkdown backslash-escapes every character the parser treats as markup
func escapeMarkdown(text string) string {
	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if bytes.IndexByte(parser.EscapeChars, text[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

func percent(rate float64, answered int) string {
	if answered == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", rate*100)
}
