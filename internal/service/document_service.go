package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/dto"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/extractor"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/parser"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const noMetricsNote = "No clear metrics found. Try another document or check that the document contains standard statement tables."

var errUnsupportedType = errors.New("unsupported file type")

// Upload is one file received from the HTTP layer.
type Upload struct {
	FileName string
	Reader   io.Reader
}

type DocumentService struct {
	parser    *parser.Parser
	extractor *extractor.Extractor
	store     *store.Store
	logger    *zap.Logger
}

func NewDocumentService(p *parser.Parser, e *extractor.Extractor, st *store.Store, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		parser:    p,
		extractor: e,
		store:     st,
		logger:    logger,
	}
}

// ProcessUploads runs extraction for each upload strictly sequentially and
// replaces the document store wholesale with the batch's successful entries.
// Per-file failures are reported in the response and never abort the batch.
func (s *DocumentService) ProcessUploads(ctx context.Context, uploads []Upload) *dto.ProcessResponse {
	resp := &dto.ProcessResponse{}
	var entries []*store.Entry

	for _, u := range uploads {
		result := dto.ProcessFileResult{FileName: u.FileName}

		entry, err := s.processOne(ctx, u)
		if err != nil {
			s.logger.Error("failed to process upload",
				zap.String("file", u.FileName),
				zap.Error(err),
			)
			result.Error = err.Error()
			resp.Failed++
		} else {
			entries = append(entries, entry)
			result.MetricGroups = entry.Metrics.Len()
			if result.MetricGroups == 0 {
				result.Note = noMetricsNote
			}
			resp.Processed++
			s.logger.Info("document processed",
				zap.String("file", u.FileName),
				zap.Int("metric_groups", result.MetricGroups),
			)
		}

		resp.Files = append(resp.Files, result)
	}

	s.store.ReplaceAll(entries)
	return resp
}

// processOne stages the upload to a temporary file for the duration of its
// own extraction; the staged copy is removed on success and failure alike.
func (s *DocumentService) processOne(ctx context.Context, u Upload) (*store.Entry, error) {
	docType, ok := models.DocumentTypeForName(u.FileName)
	if !ok {
		return nil, &parser.ParseError{FileName: u.FileName, Err: errUnsupportedType}
	}

	tmp, err := os.CreateTemp("", "finqa-*"+filepath.Ext(u.FileName))
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, copyErr := io.Copy(tmp, u.Reader)
	closeErr := tmp.Close()
	if copyErr != nil {
		return nil, copyErr
	}
	if closeErr != nil {
		return nil, closeErr
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := s.parser.Parse(tmpPath, u.FileName)
	if err != nil {
		return nil, err
	}

	mapping := s.extractor.Normalize(raw.Text, raw.Tables)

	return &store.Entry{
		Document: models.Document{
			ID:           uuid.New(),
			FileName:     u.FileName,
			FileSize:     size,
			Type:         docType,
			MetricGroups: mapping.Len(),
			ProcessedAt:  time.Now(),
		},
		Raw:     raw,
		Metrics: mapping,
	}, nil
}

// ListDocuments returns metadata for every stored document in processing order.
func (s *DocumentService) ListDocuments() []models.Document {
	return s.store.Documents()
}

// DocumentMetrics returns the metric mapping for one stored document.
func (s *DocumentService) DocumentMetrics(name string) (*models.MetricMapping, bool) {
	entry, ok := s.store.Get(name)
	if !ok {
		return nil, false
	}
	return entry.Metrics, true
}

// Reset clears the document store.
func (s *DocumentService) Reset() {
	s.store.Reset()
	s.logger.Info("document store reset")
}
