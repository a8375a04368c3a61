package answerer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/extractor"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"
)

// Metric phrases scanned in order; the first substring hit wins, so broader
// phrases deliberately precede narrower ones.
var metricCandidates = []string{
	"revenue",
	"net income",
	"net loss",
	"profit",
	"total assets",
	"cash",
	"operating income",
	"gross profit",
}

var (
	yearPattern       = regexp.MustCompile(`(20\d{2})`)
	lastPeriodPattern = regexp.MustCompile(`last (year|quarter|q[1-4])`)
)

const notFoundAnswer = "I couldn't find a precise answer in the extracted data."

// ScopedDocument is one document's extraction result as seen by the answerer.
type ScopedDocument struct {
	Name    string
	Metrics *models.MetricMapping
}

// Context carries the documents in scope for one question, in store order.
// The answerer is a pure function of the question and this context.
type Context struct {
	Documents []ScopedDocument
}

// Result is the rule-based answer with its heuristic confidence in [0,1].
type Result struct {
	Answer     string
	Confidence float64
}

// Answer resolves a free-text question against the scoped metric mappings.
// Matching is first-wins across documents, sections, and labels in insertion
// order; there is no ranking of candidates.
func Answer(question string, ctx Context) Result {
	q := strings.ToLower(question)

	var metric string
	for _, m := range metricCandidates {
		if strings.Contains(q, m) {
			metric = m
			break
		}
	}

	year := yearPattern.FindString(q)
	latest := strings.Contains(q, "latest") ||
		strings.Contains(q, "most recent") ||
		(strings.Contains(q, "last") && lastPeriodPattern.MatchString(q))

	if metric != "" {
		for _, doc := range ctx.Documents {
			for _, kind := range doc.Metrics.Kinds() {
				set, _ := doc.Metrics.Get(kind)
				for _, label := range set.Labels() {
					if !strings.Contains(label, metric) {
						continue
					}
					series, _ := set.Get(label)
					if year != "" {
						for _, k := range series.Periods() {
							if strings.Contains(k, year) {
								v, _ := series.Get(k)
								return Result{
									Answer:     fmt.Sprintf("%s for %s is %s", label, year, formatValue(v)),
									Confidence: 0.9,
								}
							}
						}
					}
					if latest {
						if k, v, ok := series.First(); ok {
							return Result{
								Answer:     fmt.Sprintf("%s (most recent found: %s) = %s", label, k, formatValue(v)),
								Confidence: 0.8,
							}
						}
					}
					if k, v, ok := series.First(); ok {
						return Result{
							Answer:     fmt.Sprintf("%s (%s) = %s", label, k, formatValue(v)),
							Confidence: 0.7,
						}
					}
				}
			}
		}
	}

	// No structured match: surface any numbers present in the serialized
	// mappings so the caller at least sees what was extracted.
	for _, doc := range ctx.Documents {
		numbers := extractor.ExtractNumbers(doc.Metrics.String())
		if len(numbers) == 0 {
			continue
		}
		if len(numbers) > 5 {
			numbers = numbers[:5]
		}
		parts := make([]string, len(numbers))
		for i, n := range numbers {
			parts[i] = formatValue(n)
		}
		return Result{
			Answer: fmt.Sprintf(
				"I found numbers in the document but couldn't map them precisely to your question. Examples: %s",
				strings.Join(parts, ", "),
			),
			Confidence: 0.4,
		}
	}

	return Result{Answer: notFoundAnswer, Confidence: 0.0}
}

// Summary renders a compact text form of the scoped mappings, suitable as
// context for a generative backend.
func Summary(ctx Context) string {
	var parts []string
	for _, doc := range ctx.Documents {
		parts = append(parts, fmt.Sprintf("Document: %s", doc.Name))
		for _, kind := range doc.Metrics.Kinds() {
			parts = append(parts, fmt.Sprintf("Section: %s", kind))
			set, _ := doc.Metrics.Get(kind)
			for _, label := range set.Labels() {
				series, _ := set.Get(label)
				parts = append(parts, fmt.Sprintf("- %s: %s", label, series))
			}
		}
	}
	return strings.Join(parts, "\n")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
