package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Egor213/LogTrail/internal/broker"
	"github.com/Egor213/LogTrail/internal/classifier"
	"github.com/Egor213/LogTrail/internal/filter"
	"github.com/Egor213/LogTrail/internal/metrics"
	brokermocks "github.com/Egor213/LogTrail/internal/mocks/broker"
	countermocks "github.com/Egor213/LogTrail/internal/mocks/counters"
	"github.com/Egor213/LogTrail/internal/parser"
	"github.com/Egor213/LogTrail/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const blockText = `[2025-05-10_1230hr_15sec]
"""
make finished, nvcc warnings
"""
[2025-06-01_0000hr_00sec]
"""
deploy done
"""
[2025-05-01_0900hr_00sec]
"""
make started with nvcc
"""
`

const leveledText = `[2010-04-24 07:51:54,401] INFO - [main] OrderEngine: Received market sell order for 75,000 ES futures contracts
[2010-04-24 07:51:56,220] ERROR - [main] CircuitBreaker: Threshold crossed, circuit-breaker error on 5 symbols
[2010-04-24 07:51:58,120] ERROR - [main] MarketDataFeed: error reading feed
`

func newService(t *testing.T, table classifier.Table, producer *brokermocks.MockProducer) *service.TriageService {
	t.Helper()
	codec, err := broker.NewCodec(broker.EncodingJSON)
	require.NoError(t, err)

	var p *service.TriageService
	if producer == nil {
		p = service.NewTriageService(parser.New(), classifier.New(table), metrics.NewTestCounters(), nil, codec)
	} else {
		p = service.NewTriageService(parser.New(), classifier.New(table), metrics.NewTestCounters(), producer, codec)
	}
	return p
}

func TestTriageService_Run(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		table     classifier.Table
		req       filter.Request
		wantMsgs  []string
		wantCrumb []string
		wantTotal int
	}{
		{
			name:      "month filter",
			text:      blockText,
			table:     classifier.Incident(),
			req:       filter.Request{Date: "2025-05"},
			wantMsgs:  []string{"make started with nvcc", "make finished, nvcc warnings"},
			wantCrumb: []string{"", ""},
			wantTotal: 3,
		},
		{
			name:      "month range and latest",
			text:      blockText,
			table:     classifier.Incident(),
			req:       filter.Request{Date: "05-06", Latest: true},
			wantMsgs:  []string{"deploy done"},
			wantCrumb: []string{""},
			wantTotal: 3,
		},
		{
			name: "content rules take priority order",
			text: leveledText,
			table: classifier.ByContent(classifier.LabelInfo,
				classifier.ContentRule{Phrases: []string{"circuit-breaker"}, Label: "🔴 Control Failure"},
				classifier.ContentRule{Phrases: []string{"error"}, Label: "🔴 Error"},
			),
			req:       filter.Request{Keywords: []string{"error"}},
			wantMsgs:  []string{"Threshold crossed, circuit-breaker error on 5 symbols", "error reading feed"},
			wantCrumb: []string{"🔴 Control Failure", "🔴 Error"},
			wantTotal: 3,
		},
		{
			name:      "tagged only with level rules",
			text:      leveledText + blockText,
			table:     classifier.Incident(),
			req:       filter.Request{Tagged: true},
			wantMsgs:  []string{"Threshold crossed, circuit-breaker error on 5 symbols", "error reading feed"},
			wantCrumb: []string{"🔴 Critical", "🔴 Critical"},
			wantTotal: 6,
		},
		{
			name:      "empty input",
			text:      "",
			table:     classifier.Trading(),
			req:       filter.Request{Keywords: []string{"x"}, Latest: true},
			wantMsgs:  []string{},
			wantCrumb: []string{},
			wantTotal: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(t, tc.table, nil)

			res, err := svc.Run(context.Background(), tc.text, tc.req)
			require.NoError(t, err)

			msgs, crumbs := []string{}, []string{}
			for _, e := range res.Entries {
				msgs = append(msgs, e.Message)
				crumbs = append(crumbs, e.Breadcrumb)
			}
			assert.Equal(t, tc.wantMsgs, msgs)
			assert.Equal(t, tc.wantCrumb, crumbs)
			assert.Equal(t, tc.wantTotal, res.Total)
		})
	}
}

func TestTriageService_InvalidFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests := countermocks.NewMockCounter(ctrl)
	requests.EXPECT().Inc("rejected").Times(1)

	cnt := metrics.NewTestCounters()
	cnt.FilterRequests = requests

	svc := service.NewTriageService(parser.New(), classifier.New(classifier.Incident()), cnt, nil, broker.Codec{})

	_, err := svc.Run(context.Background(), blockText, filter.Request{Date: "May 2025"})
	assert.ErrorIs(t, err, service.ErrInvalidFilter)
	assert.ErrorIs(t, err, filter.ErrInvalidDateSpec)
}

func TestTriageService_CountsDroppedRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dropped := countermocks.NewMockCounter(ctrl)
	dropped.EXPECT().Add(2.0, "malformed").Times(1)
	dropped.EXPECT().Inc("invalid_timestamp").Times(1)

	cnt := metrics.NewTestCounters()
	cnt.RecordsDropped = dropped

	svc := service.NewTriageService(parser.New(), classifier.New(classifier.Trading()), cnt, nil, broker.Codec{})

	text := "garbage\n[2025-02-30_1000hr_00sec]\n\"\"\"\nno such day\n\"\"\"\nmore garbage\n" + blockText
	res, err := svc.Run(context.Background(), text, filter.Request{})
	require.NoError(t, err)

	assert.Len(t, res.Entries, 3)
	assert.Equal(t, 2, res.Stats.Skipped)
	require.Len(t, res.Stats.Errors, 1)
	assert.ErrorIs(t, res.Stats.Errors[0], parser.ErrInvalidTimestamp)
}

func TestTriageService_Publish(t *testing.T) {
	ctx := context.Background()
	codec, err := broker.NewCodec(broker.EncodingJSON)
	require.NoError(t, err)

	testCases := []struct {
		name         string
		req          filter.Request
		mockBehavior func(p *brokermocks.MockProducer)
		wantErr      error
	}{
		{
			name: "success",
			req:  filter.Request{Date: "2025-05"},
			mockBehavior: func(p *brokermocks.MockProducer) {
				p.EXPECT().
					SendMessages(ctx, gomock.Len(2)).
					DoAndReturn(func(_ context.Context, values [][]byte) error {
						first, err := codec.Decode(values[0])
						require.NoError(t, err)
						assert.Equal(t, "make started with nvcc", first.Message)
						assert.Equal(t, "2025-05-01_0900hr_00sec", first.RawTimestamp)
						return nil
					})
			},
		},
		{
			name: "broker error",
			req:  filter.Request{Latest: true},
			mockBehavior: func(p *brokermocks.MockProducer) {
				p.EXPECT().
					SendMessages(ctx, gomock.Len(1)).
					Return(errors.New("broker down"))
			},
			wantErr: service.ErrPublish,
		},
		{
			name:         "nothing selected",
			req:          filter.Request{Date: "1999"},
			mockBehavior: func(p *brokermocks.MockProducer) {},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			producer := brokermocks.NewMockProducer(ctrl)
			tc.mockBehavior(producer)

			svc := newService(t, classifier.Incident(), producer)

			res, err := svc.Run(ctx, blockText, tc.req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.NotEmpty(t, res.Entries)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewServices(t *testing.T) {
	services := service.NewServices(service.ServicesDependencies{
		Parser:     parser.New(),
		Classifier: classifier.New(classifier.Incident()),
		Counters:   metrics.NewTestCounters(),
	})

	res, err := services.Run(context.Background(), blockText, filter.Request{Entries: []int{2}})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "make finished, nvcc warnings", res.Entries[0].Message)
}
