package service

import (
	"context"

	"github.com/Egor213/LogTrail/internal/broker"
	"github.com/Egor213/LogTrail/internal/classifier"
	"github.com/Egor213/LogTrail/internal/filter"
	"github.com/Egor213/LogTrail/internal/metrics"
	"github.com/Egor213/LogTrail/internal/parser"
)

type Triage interface {
	Run(ctx context.Context, text string, req filter.Request) (Result, error)
}

type Services struct {
	Triage
}

type ServicesDependencies struct {
	Parser         *parser.Parser
	Classifier     *classifier.Classifier
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
	Codec          broker.Codec
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Triage: NewTriageService(deps.Parser, deps.Classifier, deps.Counters, deps.BrokerProducer, deps.Codec),
	}
}
