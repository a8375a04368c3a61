package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentTypePDF         DocumentType = "pdf"
	DocumentTypeSpreadsheet DocumentType = "spreadsheet"
)

// DocumentTypeForName maps a file name to its declared type by extension.
func DocumentTypeForName(name string) (DocumentType, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return DocumentTypePDF, true
	case ".xls", ".xlsx":
		return DocumentTypeSpreadsheet, true
	default:
		return "", false
	}
}

type Document struct {
	ID           uuid.UUID    `json:"id"`
	FileName     string       `json:"file_name"`
	FileSize     int64        `json:"file_size"`
	Type         DocumentType `json:"type"`
	MetricGroups int          `json:"metric_groups"`
	ProcessedAt  time.Time    `json:"processed_at"`
}

// RawDocument is the parser output for one uploaded file: the full extracted
// text plus every table found, in document order.
type RawDocument struct {
	Text   string
	Tables []Table
}

// Table is an ordered sequence of rows of cell strings. Rows may be ragged;
// Cell returns "" for any coordinate outside the stored data.
type Table struct {
	Rows [][]string
}

func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func (t Table) NumRows() int {
	return len(t.Rows)
}

// Width returns the widest row of the table.
func (t Table) Width() int {
	w := 0
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

type AnswerSource string

const (
	SourceRuleBased          AnswerSource = "rule-based"
	SourceGenerativeFallback AnswerSource = "generative-fallback"
)

// ConversationTurn is one question/answer exchange. Turns are append-only and
// never mutated after being recorded.
type ConversationTurn struct {
	Question   string       `json:"question"`
	Answer     string       `json:"answer"`
	Source     AnswerSource `json:"source"`
	Confidence float64      `json:"confidence"`
	AskedAt    time.Time    `json:"asked_at"`
}
