package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Egor213/LogTrail/internal/broker"
	"github.com/Egor213/LogTrail/internal/classifier"
	"github.com/Egor213/LogTrail/internal/domain"
	"github.com/Egor213/LogTrail/internal/filter"
	"github.com/Egor213/LogTrail/internal/metrics"
	"github.com/Egor213/LogTrail/internal/parser"
	errorsUtils "github.com/Egor213/LogTrail/pkg/errors"
	"github.com/Egor213/LogTrail/pkg/logger"
)

const untagged = "none"

type Result struct {
	Entries []domain.LogEntry
	// Total is the number of entries parsed before filtering.
	Total int
	Stats parser.Stats
}

// TriageService runs one query: parse, classify, filter and optionally
// publish. It keeps no state between calls.
type TriageService struct {
	parser     *parser.Parser
	classifier *classifier.Classifier
	counters   *metrics.Counters
	producer   broker.Producer
	codec      broker.Codec
}

// NewTriageService wires a service; producer may be nil to skip publishing.
func NewTriageService(p *parser.Parser, c *classifier.Classifier, cnt *metrics.Counters, producer broker.Producer, codec broker.Codec) *TriageService {
	return &TriageService{
		parser:     p,
		classifier: c,
		counters:   cnt,
		producer:   producer,
		codec:      codec,
	}
}

func (s *TriageService) Run(ctx context.Context, text string, req filter.Request) (Result, error) {
	chain, err := filter.NewChain(req)
	if err != nil {
		s.counters.FilterRequests.Inc("rejected")
		logger.LogRejected(req.String(), err)
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
	}

	entries, stats := s.parser.Parse(text)
	s.recordParse(stats)

	s.classifier.Classify(entries)
	for _, e := range entries {
		label := e.Breadcrumb
		if label == "" {
			label = untagged
		}
		s.counters.Breadcrumbs.Inc(label)
	}

	selected := chain.Apply(entries)
	s.counters.FilterRequests.Inc("ok")
	logger.LogFiltered(chain.Steps(), len(entries), len(selected))

	res := Result{Entries: selected, Total: len(entries), Stats: stats}

	if s.producer != nil {
		if err := s.publish(ctx, selected); err != nil {
			return res, errorsUtils.WrapPathErr(fmt.Errorf("%w: %w", ErrPublish, err))
		}
	}

	return res, nil
}

func (s *TriageService) recordParse(stats parser.Stats) {
	for grammar, n := range stats.Parsed {
		s.counters.EntriesParsed.Add(float64(n), grammar)
	}
	if stats.Skipped > 0 {
		s.counters.RecordsDropped.Add(float64(stats.Skipped), "malformed")
	}
	for _, err := range stats.Errors {
		reason := "other"
		if errors.Is(err, parser.ErrInvalidTimestamp) {
			reason = "invalid_timestamp"
		}
		s.counters.RecordsDropped.Inc(reason)
		logger.LogDropped(err)
	}
	logger.LogParsed(stats.Parsed, stats.Skipped, len(stats.Errors))
}

func (s *TriageService) publish(ctx context.Context, entries []domain.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	values := make([][]byte, 0, len(entries))
	for _, e := range entries {
		v, err := s.codec.Encode(e)
		if err != nil {
			s.counters.EntriesPublished.Add(float64(len(entries)), "failed")
			logger.LogPublishError(len(entries), err)
			return err
		}
		values = append(values, v)
	}

	if err := s.producer.SendMessages(ctx, values); err != nil {
		s.counters.EntriesPublished.Add(float64(len(entries)), "failed")
		logger.LogPublishError(len(entries), err)
		return err
	}

	s.counters.EntriesPublished.Add(float64(len(entries)), "ok")
	return nil
}
