// Package mongodb implements the persistence interfaces on top of the
// official MongoDB driver.
package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/fx"

	"wanderly/config"
)

const defaultConnectTimeout = 10 * time.Second

// Params defines the dependencies for the database handle.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
}

// New connects to the configured MongoDB deployment and returns the database
// handle. The client disconnects on application shutdown.
func New(params Params) (*mongo.Database, error) {
	if params.Config.Mongo == nil || params.Config.Mongo.URI == "" {
		return nil, errors.New("mongo configuration must be provided")
	}

	timeout := params.Config.Mongo.Timeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	client, err := mongo.Connect(options.Client().
		ApplyURI(params.Config.Mongo.URI).
		SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "failed to ping mongodb")
	}

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.Wrap(client.Disconnect(ctx), "failed to disconnect from mongodb")
		},
	})

	return client.Database(params.Config.Mongo.Database), nil
}
