package godoc

import (
	"regexp"
	"strings"
)

// summaryPostProcessor is a function type that post-processes a rendered doc comment.
type summaryPostProcessor func(summary string) string

func postProcessSummary(summary string, processors ...summaryPostProcessor) string {
	for _, process := range processors {
		summary = process(summary)
	}
	return strings.TrimSpace(summary)
}

var (
	enumDeclarationRegex = regexp.MustCompile(`(?s)ENUM(.*)`)
	deprecatedRegex      = regexp.MustCompile(`(?m)^Deprecated:\s*(.*)$`)
)

// removeEnumDeclaration removes ENUM (used with go-enum generator) declarations from the code docs.
func removeEnumDeclaration(summary string) string {
	return enumDeclarationRegex.ReplaceAllString(summary, "")
}

// extractDeprecatedInformation moves the deprecation notice to the front of the summary.
func extractDeprecatedInformation(summary string) string {
	matches := deprecatedRegex.FindStringSubmatch(summary)
	if len(matches) < 2 {
		return summary
	}
	rest := strings.TrimSpace(deprecatedRegex.ReplaceAllString(summary, ""))
	notice := "**Deprecated:** " + strings.TrimSpace(matches[1])
	if rest == "" {
		return notice
	}
	return notice + "\n\n" + rest
}

// joinLines folds the markdown into a single line.
// Summaries are embedded in table cells, which cannot span lines.
func joinLines(summary string) string {
	return strings.Join(strings.Fields(summary), " ")
}
