package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/answerer"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/backend"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/dto"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/models"
	"github.com/boddupallykavya9-cloud/FINANCIAL-DOC-QA-ASSISTANT/internal/store"

	"go.uber.org/zap"
)

const promptTemplate = `You are a financial assistant. Answer clearly and concisely.
Document extracted summary:
%s

User question:
%s

Provide the best possible factual answer using the document. If not answerable, say you couldn't find it.
`

// ScopeAll selects every processed document for a question.
const ScopeAll = "all"

type QAService struct {
	store     *store.Store
	completer backend.Completer // nil when the generative backend is disabled
	threshold float64
	timeout   time.Duration
	logger    *zap.Logger
}

func NewQAService(st *store.Store, completer backend.Completer, threshold float64, timeout time.Duration, logger *zap.Logger) *QAService {
	return &QAService{
		store:     st,
		completer: completer,
		threshold: threshold,
		timeout:   timeout,
		logger:    logger,
	}
}

// Ask answers a question against the scoped documents. The rule-based answer
// is computed first; when its confidence falls below the threshold and a
// generative backend is configured, one bounded completion request is made.
// Backend failures are reported as a warning and never replace the rule-based
// answer. Every exchange is appended to the conversation history.
func (s *QAService) Ask(ctx context.Context, question, scope string) *dto.AskResponse {
	qaCtx := s.scopedContext(scope)
	result := answerer.Answer(question, qaCtx)

	resp := &dto.AskResponse{
		Answer:     result.Answer,
		Confidence: result.Confidence,
		Source:     string(models.SourceRuleBased),
	}

	if result.Confidence < s.threshold && s.completer != nil {
		prompt := fmt.Sprintf(promptTemplate, answerer.Summary(qaCtx), question)

		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		text, err := s.completer.Complete(cctx, prompt)
		if err != nil {
			s.logger.Warn("generative backend failed, keeping rule-based answer",
				zap.Error(err),
			)
			resp.Warning = fmt.Sprintf("generative backend unavailable: %v", err)
		} else {
			resp.Answer = text
			resp.Source = string(models.SourceGenerativeFallback)
		}
	}

	s.store.AppendTurn(models.ConversationTurn{
		Question:   question,
		Answer:     resp.Answer,
		Source:     models.AnswerSource(resp.Source),
		Confidence: resp.Confidence,
		AskedAt:    time.Now(),
	})

	s.logger.Info("question answered",
		zap.String("scope", scope),
		zap.Float64("confidence", resp.Confidence),
		zap.String("source", resp.Source),
	)
	return resp
}

// Conversation returns the recorded turns in ask order.
func (s *QAService) Conversation() []models.ConversationTurn {
	return s.store.Conversation()
}

// scopedContext builds the answerer's view of the store: every document for
// ScopeAll, or just the named one. An unknown name yields an empty context,
// which resolves to the not-found answer.
func (s *QAService) scopedContext(scope string) answerer.Context {
	var ctx answerer.Context
	if scope == "" || scope == ScopeAll {
		for _, e := range s.store.Entries() {
			ctx.Documents = append(ctx.Documents, answerer.ScopedDocument{
				Name:    e.Document.FileName,
				Metrics: e.Metrics,
			})
		}
		return ctx
	}

	if e, ok := s.store.Get(scope); ok {
		ctx.Documents = append(ctx.Documents, answerer.ScopedDocument{
			Name:    e.Document.FileName,
			Metrics: e.Metrics,
		})
	}
	return ctx
}
