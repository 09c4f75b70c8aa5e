package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Egor213/LogTrail/internal/broker"
	kafkabroker "github.com/Egor213/LogTrail/internal/broker/kafka"
	"github.com/Egor213/LogTrail/internal/classifier"
	"github.com/Egor213/LogTrail/internal/config"
	"github.com/Egor213/LogTrail/internal/filter"
	"github.com/Egor213/LogTrail/internal/metrics"
	"github.com/Egor213/LogTrail/internal/parser"
	"github.com/Egor213/LogTrail/internal/presenter"
	"github.com/Egor213/LogTrail/internal/service"
	errorsUtils "github.com/Egor213/LogTrail/pkg/errors"
	"github.com/Egor213/LogTrail/pkg/logger"

	log "github.com/sirupsen/logrus"
)

var counters = sync.OnceValue(metrics.New)

func Run() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	// Config
	cfg, err := config.New()
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	opts.override(cfg)

	// Logger
	logger.SetupLogger(cfg.Log.Level)
	log.Debug("Logger has been set up")

	// Filter request is checked before any input is read
	req := opts.request()
	if _, err := filter.NewChain(req); err != nil {
		logger.LogRejected(req.String(), err)
		return err
	}

	// Input
	text, err := readInput(cfg.Input.Path, in)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	// Classifier
	table, err := cfg.Table()
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	// Output
	codec, err := broker.NewCodec(cfg.Kafka.Encoding)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	renderer, err := presenter.New(cfg.Output.Format)
	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	// Broker
	var producer broker.Producer
	if cfg.KafkaEnabled() {
		log.Infof("Publishing to Kafka topic %s", cfg.Kafka.Topic)
		p := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
		defer func() {
			if err := p.Close(); err != nil {
				log.Error(errorsUtils.WrapPathErr(err))
			}
		}()
		producer = p
	}

	// Services
	services := service.NewServices(service.ServicesDependencies{
		Parser:         parser.New(),
		Classifier:     classifier.New(table),
		Counters:       counters(),
		BrokerProducer: producer,
		Codec:          codec,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := services.Run(ctx, text, req)
	if runErr != nil && res.Entries == nil {
		return runErr
	}

	if err := renderer.Render(out, res.Entries); err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	// Metrics
	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}

	return runErr
}

func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
