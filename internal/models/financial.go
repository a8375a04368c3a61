package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StatementKind identifies which financial statement a group of extracted
// metrics was classified under. KindExtracted is the generic bucket used only
// when no specific statement was detected in the document text.
type StatementKind string

const (
	KindIncomeStatement StatementKind = "Income Statement"
	KindBalanceSheet    StatementKind = "Balance Sheet"
	KindCashFlow        StatementKind = "Cash Flow"
	KindExtracted       StatementKind = "Extracted"
)

// PeriodSeries maps a reporting period key (e.g. "2023", "FY22", "col2") to a
// numeric value, preserving insertion order. The question answerer picks the
// first entry when no period is requested, so iteration order matters.
type PeriodSeries struct {
	keys   []string
	values map[string]float64
}

func NewPeriodSeries() *PeriodSeries {
	return &PeriodSeries{values: make(map[string]float64)}
}

// Set inserts or overwrites a period value. Overwriting keeps the key's
// original position.
func (s *PeriodSeries) Set(period string, value float64) {
	if _, ok := s.values[period]; !ok {
		s.keys = append(s.keys, period)
	}
	s.values[period] = value
}

func (s *PeriodSeries) Get(period string) (float64, bool) {
	v, ok := s.values[period]
	return v, ok
}

// First returns the earliest-inserted period entry.
func (s *PeriodSeries) First() (string, float64, bool) {
	if len(s.keys) == 0 {
		return "", 0, false
	}
	k := s.keys[0]
	return k, s.values[k], true
}

func (s *PeriodSeries) Periods() []string {
	return s.keys
}

func (s *PeriodSeries) Len() int {
	return len(s.keys)
}

func (s *PeriodSeries) String() string {
	var b strings.Builder
	for i, k := range s.keys {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strconv.FormatFloat(s.values[k], 'f', -1, 64))
	}
	return b.String()
}

func (s *PeriodSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MetricSet maps a lowercased metric label (e.g. "total assets") to its
// period series, preserving insertion order.
type MetricSet struct {
	labels []string
	series map[string]*PeriodSeries
}

func NewMetricSet() *MetricSet {
	return &MetricSet{series: make(map[string]*PeriodSeries)}
}

func (m *MetricSet) Set(label string, s *PeriodSeries) {
	if _, ok := m.series[label]; !ok {
		m.labels = append(m.labels, label)
	}
	m.series[label] = s
}

func (m *MetricSet) Get(label string) (*PeriodSeries, bool) {
	s, ok := m.series[label]
	return s, ok
}

func (m *MetricSet) Labels() []string {
	return m.labels
}

func (m *MetricSet) Len() int {
	return len(m.labels)
}

func (m *MetricSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range m.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.series[label])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MetricMapping is the structured extraction result for one document:
// statement kind -> metric label -> period -> value. Kinds that produced no
// matched rows are never present.
type MetricMapping struct {
	kinds    []StatementKind
	sections map[StatementKind]*MetricSet
}

func NewMetricMapping() *MetricMapping {
	return &MetricMapping{sections: make(map[StatementKind]*MetricSet)}
}

func (m *MetricMapping) Set(kind StatementKind, set *MetricSet) {
	if _, ok := m.sections[kind]; !ok {
		m.kinds = append(m.kinds, kind)
	}
	m.sections[kind] = set
}

func (m *MetricMapping) Get(kind StatementKind) (*MetricSet, bool) {
	if m == nil {
		return nil, false
	}
	s, ok := m.sections[kind]
	return s, ok
}

func (m *MetricMapping) Kinds() []StatementKind {
	if m == nil {
		return nil
	}
	return m.kinds
}

// Len reports the number of statement sections present.
func (m *MetricMapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.kinds)
}

func (m *MetricMapping) String() string {
	if m == nil {
		return ""
	}
	var b strings.Builder
	for _, kind := range m.kinds {
		set := m.sections[kind]
		fmt.Fprintf(&b, "%s:\n", kind)
		for _, label := range set.Labels() {
			s, _ := set.Get(label)
			fmt.Fprintf(&b, "  %s: %s\n", label, s)
		}
	}
	return b.String()
}

func (m *MetricMapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kind := range m.kinds {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(kind))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.sections[kind])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
