package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"

	"github.com/ledongthuc/pdf"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ParseError reports a total parse failure for one uploaded file. Per-page
// and per-sheet extraction problems are swallowed and never reach the caller.
type ParseError struct {
	FileName string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.FileName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const (
	// Horizontal gap (in PDF points) that separates two cells on a row.
	cellGap = 12.0
	// Rows of each sheet rendered into the text preview.
	sheetPreviewRows = 20
)

// Parser converts one staged upload into a RawDocument.
type Parser struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse reads the staged file at path, dispatching on the uploaded file's
// declared type (by extension of fileName). A file that cannot be opened or
// read at all yields a *ParseError carrying the file name.
func (p *Parser) Parse(path, fileName string) (models.RawDocument, error) {
	docType, ok := models.DocumentTypeForName(fileName)
	if !ok {
		return models.RawDocument{}, &ParseError{FileName: fileName, Err: fmt.Errorf("unsupported file type")}
	}

	switch docType {
	case models.DocumentTypePDF:
		return p.parsePDF(path, fileName)
	default:
		return p.parseSpreadsheet(path, fileName)
	}
}

// parsePDF extracts page text in page order and attempts one best-effort
// table per page. Pages without a usable table contribute nothing.
func (p *Parser) parsePDF(path, fileName string) (models.RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.RawDocument{}, &ParseError{FileName: fileName, Err: err}
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return models.RawDocument{}, &ParseError{FileName: fileName, Err: err}
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return models.RawDocument{}, &ParseError{FileName: fileName, Err: err}
	}

	var textParts []string
	var tables []models.Table
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		if txt, err := page.GetPlainText(nil); err == nil && txt != "" {
			textParts = append(textParts, txt)
		}

		tbl, ok := p.pageTable(page, i)
		if ok {
			tables = append(tables, tbl)
		}
	}

	p.logger.Info("pdf parsed",
		zap.String("file", fileName),
		zap.Int("pages", numPages),
		zap.Int("tables", len(tables)),
	)

	return models.RawDocument{
		Text:   strings.Join(textParts, "\n"),
		Tables: tables,
	}, nil
}

// pageTable builds a table from the page's positioned text rows, splitting
// each row into cells wherever a wide horizontal gap appears. Any failure is
// treated as "no table on this page".
func (p *Parser) pageTable(page pdf.Page, pageNum int) (tbl models.Table, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("table extraction panicked, skipping page",
				zap.Int("page", pageNum),
				zap.Any("cause", r),
			)
			ok = false
		}
	}()

	rows, err := page.GetTextByRow()
	if err != nil {
		p.logger.Debug("no table on page", zap.Int("page", pageNum), zap.Error(err))
		return models.Table{}, false
	}

	var out [][]string
	for _, row := range rows {
		cells := splitRowCells(row.Content)
		if len(cells) > 0 {
			out = append(out, cells)
		}
	}

	// A lone row or a single column is prose, not a table.
	if len(out) < 2 {
		return models.Table{}, false
	}
	wide := 0
	for _, r := range out {
		if len(r) >= 2 {
			wide++
		}
	}
	if wide < 2 {
		return models.Table{}, false
	}

	return models.Table{Rows: out}, true
}

// splitRowCells groups a row's text fragments into cells: fragments separated
// by less than cellGap belong to the same cell.
func splitRowCells(texts []pdf.Text) []string {
	var cells []string
	var cur strings.Builder
	prevEnd := 0.0

	for i, t := range texts {
		if i > 0 && t.X-prevEnd > cellGap {
			if s := strings.TrimSpace(cur.String()); s != "" {
				cells = append(cells, s)
			}
			cur.Reset()
		}
		cur.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		cells = append(cells, s)
	}
	return cells
}

// parseSpreadsheet reads every sheet with no assumed header row. Each sheet
// becomes one raw table and contributes a short text preview to the aggregate
// text. excelize is tried first; tealeg/xlsx is the fallback engine.
func (p *Parser) parseSpreadsheet(path, fileName string) (models.RawDocument, error) {
	doc, err := p.parseWithExcelize(path, fileName)
	if err == nil {
		return doc, nil
	}

	p.logger.Warn("excelize failed, retrying with tealeg engine",
		zap.String("file", fileName),
		zap.Error(err),
	)

	doc, terr := p.parseWithTealeg(path, fileName)
	if terr != nil {
		return models.RawDocument{}, &ParseError{FileName: fileName, Err: err}
	}
	return doc, nil
}

func (p *Parser) parseWithExcelize(path, fileName string) (models.RawDocument, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.RawDocument{}, err
	}
	defer f.Close()

	var previews []string
	var tables []models.Table
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			p.logger.Debug("skipping unreadable sheet",
				zap.String("file", fileName),
				zap.String("sheet", sheetName),
				zap.Error(err),
			)
			continue
		}
		previews = append(previews, sheetPreview(sheetName, rows))
		tables = append(tables, models.Table{Rows: rows})
	}

	p.logger.Info("spreadsheet parsed",
		zap.String("file", fileName),
		zap.String("engine", "excelize"),
		zap.Int("sheets", len(tables)),
	)

	return models.RawDocument{
		Text:   strings.Join(previews, "\n\n"),
		Tables: tables,
	}, nil
}

func (p *Parser) parseWithTealeg(path, fileName string) (models.RawDocument, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return models.RawDocument{}, err
	}

	var previews []string
	var tables []models.Table
	for _, sheet := range f.Sheets {
		var rows [][]string
		for _, row := range sheet.Rows {
			var cells []string
			for _, cell := range row.Cells {
				cells = append(cells, cell.String())
			}
			rows = append(rows, cells)
		}
		previews = append(previews, sheetPreview(sheet.Name, rows))
		tables = append(tables, models.Table{Rows: rows})
	}

	p.logger.Info("spreadsheet parsed",
		zap.String("file", fileName),
		zap.String("engine", "tealeg"),
		zap.Int("sheets", len(tables)),
	)

	return models.RawDocument{
		Text:   strings.Join(previews, "\n\n"),
		Tables: tables,
	}, nil
}

func sheetPreview(name string, rows [][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sheet: %s\n", name)
	for i, row := range rows {
		if i >= sheetPreviewRows {
			break
		}
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
