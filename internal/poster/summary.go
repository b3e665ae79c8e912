package poster

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Summary wording is negotiated per request. Traditional Chinese is listed
// first and therefore wins for empty or unrecognized locales, matching the
// product's home audience.
var summaryMatcher = language.NewMatcher([]language.Tag{
	language.TraditionalChinese,
	language.English,
})

type summaryWording struct {
	header       string
	sizeLine     string
	successCount string
	failureCount string
	item         string
}

var summaryWordings = []summaryWording{
	{
		header:       "海報產生結果",
		sizeLine:     "尺寸：%s（%d×%d）",
		successCount: "成功：%d 張",
		failureCount: "失敗：%d 張",
		item:         "  - %s：%s\n",
	},
	{
		header:       "Poster generation result",
		sizeLine:     "Size: %s (%d×%d)",
		successCount: "Successful: %d",
		failureCount: "Failed: %d",
		item:         "  - %s: %s\n",
	},
}

// renderSummary builds the human-readable report: size, success count with
// per-style output paths, and failure count with per-style error text.
func renderSummary(locale string, size Size, outcomes []Outcome) string {
	_, idx := language.MatchStrings(summaryMatcher, locale)
	w := summaryWordings[idx]

	successful := make([]Outcome, 0, len(outcomes))
	failed := make([]Outcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Success {
			successful = append(successful, outcome)
		} else {
			failed = append(failed, outcome)
		}
	}

	var b strings.Builder
	b.WriteString(w.header)
	b.WriteString("\n")
	fmt.Fprintf(&b, w.sizeLine, size.Name, size.Width, size.Height)
	b.WriteString("\n")
	fmt.Fprintf(&b, w.successCount, len(successful))
	b.WriteString("\n")
	for _, outcome := range successful {
		fmt.Fprintf(&b, w.item, outcome.StyleName, outcome.OutputPath)
	}
	if len(failed) > 0 {
		fmt.Fprintf(&b, w.failureCount, len(failed))
		b.WriteString("\n")
		for _, outcome := range failed {
			fmt.Fprintf(&b, w.item, outcome.StyleName, outcome.Error)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
