package client

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDialer implements Dialer using the official MongoDB driver.
type MongoDialer struct{}

// NewMongoDialer constructs a MongoDialer.
func NewMongoDialer() *MongoDialer {
	return &MongoDialer{}
}

// clientOptions builds driver options from dial options. The dial timeout is
// applied to connection establishment, server selection, and per-operation
// deadlines; the prober additionally enforces its own bound, since driver
// timeouts do not cover every phase uniformly.
func clientOptions(opts Options) *options.ClientOptions {
	co := options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.Timeout).
		SetServerSelectionTimeout(opts.Timeout).
		SetTimeout(opts.Timeout)
	if opts.AuthSource != "" && co.Auth != nil {
		co.Auth.AuthSource = opts.AuthSource
	}
	return co
}

// Dial opens a connection and verifies nothing; liveness is the prober's job.
func (d *MongoDialer) Dial(ctx context.Context, opts Options) (Conn, error) {
	cl, err := mongo.Connect(ctx, clientOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &mongoConn{client: cl}, nil
}

type mongoConn struct {
	client *mongo.Client

	closeOnce sync.Once
	closeErr  error
}

func (c *mongoConn) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

func (c *mongoConn) ServerStatus(ctx context.Context) (bson.M, error) {
	res := c.client.Database("admin").RunCommand(ctx, bson.D{{Key: "serverStatus", Value: 1}})
	var status bson.M
	if err := res.Decode(&status); err != nil {
		return nil, fmt.Errorf("serverStatus: %w", err)
	}
	return status, nil
}

// Close disconnects the client. Subsequent calls return the first result, so
// a probe's deferred close and the monitor's stray sweep cannot double-release.
func (c *mongoConn) Close(ctx context.Context) error {
	c.closeOnce.Do(func() {
		c.closeErr = c.client.Disconnect(ctx)
	})
	return c.closeErr
}
