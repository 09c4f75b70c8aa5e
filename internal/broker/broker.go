package broker

import "context"

type Producer interface {
	SendMessages(ctx context.Context, values [][]byte) error
	Close() error
}
