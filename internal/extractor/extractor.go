package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"

	"go.uber.org/zap"
)

// Trigger phrases: a statement kind is processed when any of its phrases
// appears in the document text (case-insensitive substring match).
var (
	incomeStatementTriggers = []string{"income statement", "statement of operations", "profit and loss", "revenue"}
	balanceSheetTriggers    = []string{"balance sheet", "assets", "liabilities", "equity"}
	cashFlowTriggers        = []string{"cash flow", "cash flows", "net cash", "cash and cash equivalents"}
)

// Row-label keyword lists used to reduce tables for each statement kind.
var (
	incomeStatementKeywords = []string{"revenue", "net income", "gross profit", "operating income", "total revenue", "profit"}
	balanceSheetKeywords    = []string{"total assets", "total liabilities", "shareholders' equity", "equity"}
	cashFlowKeywords        = []string{"net cash provided", "net cash", "cash flows from operating", "cash and cash equivalents"}
	fallbackKeywords        = []string{"revenue", "net income", "total assets"}
)

// Period-like header cells: four-digit years, fiscal-year markers, quarters.
var periodHeaderPattern = regexp.MustCompile(`20\d{2}|FY|Q[1-4]`)

// Extractor classifies a parsed document by statement kind and reduces its
// tables into a metric mapping. It holds no state between calls.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Normalize classifies the document text against each statement kind and
// reduces all tables once per triggered kind. When no kind triggers, a single
// generic pass runs and any matches land under KindExtracted; the generic
// pass never supplements a triggered kind.
func (e *Extractor) Normalize(text string, tables []models.Table) *models.MetricMapping {
	result := models.NewMetricMapping()

	if containsAny(text, incomeStatementTriggers) {
		if set := e.ReduceTables(tables, incomeStatementKeywords); set != nil {
			result.Set(models.KindIncomeStatement, set)
		}
	}
	if containsAny(text, balanceSheetTriggers) {
		if set := e.ReduceTables(tables, balanceSheetKeywords); set != nil {
			result.Set(models.KindBalanceSheet, set)
		}
	}
	if containsAny(text, cashFlowTriggers) {
		if set := e.ReduceTables(tables, cashFlowKeywords); set != nil {
			result.Set(models.KindCashFlow, set)
		}
	}

	if result.Len() == 0 {
		if set := e.ReduceTables(tables, fallbackKeywords); set != nil {
			result.Set(models.KindExtracted, set)
		}
	}

	e.logger.Debug("document normalized",
		zap.Int("tables", len(tables)),
		zap.Int("sections", result.Len()),
	)
	return result
}

// ReduceTables scans every table for rows whose first cell contains one of
// the keywords and collects that row's cleaned numeric cells keyed by the
// corresponding row-0 heading (or a synthetic colN when row 0 has no heading
// there). Returns nil when no row matched in any table.
func (e *Extractor) ReduceTables(tables []models.Table, keywords []string) *models.MetricSet {
	metrics := models.NewMetricSet()

	for ti, t := range tables {
		if t.NumRows() == 0 {
			continue
		}

		// Period headers in row 0 are detected for diagnostics only;
		// extraction does not depend on them.
		headerHits := 0
		for _, cell := range t.Rows[0] {
			if periodHeaderPattern.MatchString(cell) {
				headerHits++
			}
		}
		e.logger.Debug("table header scan",
			zap.Int("table", ti),
			zap.Int("period_headers", headerHits),
		)

		for _, row := range t.Rows {
			if len(row) == 0 {
				continue
			}
			label := strings.TrimSpace(strings.ToLower(row[0]))
			for _, kw := range keywords {
				if !strings.Contains(label, kw) {
					continue
				}
				series := models.NewPeriodSeries()
				for col := 1; col < len(row); col++ {
					val, ok := CleanNumber(row[col])
					if !ok {
						continue
					}
					heading := strings.TrimSpace(t.Cell(0, col))
					if heading == "" {
						heading = fmt.Sprintf("col%d", col)
					}
					series.Set(heading, val)
				}
				metrics.Set(label, series)
			}
		}
	}

	if metrics.Len() == 0 {
		return nil
	}
	return metrics
}

func containsAny(text string, phrases []string) bool {
	low := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(low, p) {
			return true
		}
	}
	return false
}
