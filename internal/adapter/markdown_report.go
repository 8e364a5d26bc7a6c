package adapter

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

var markdownConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// renderMarkdownReport converts the HTML report page to Markdown, suitable
// for CI job summaries and review comments.
func renderMarkdownReport(page string) (string, error) {
	md, err := markdownConverter.ConvertString(page)
	if err != nil {
		return "", fmt.Errorf("render markdown report: %w", err)
	}

	return strings.TrimSpace(md) + "\n", nil
}
