package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"doc-pager/cmd/internal/logger"
	"doc-pager/config"
	"doc-pager/db"
	"doc-pager/models"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

// addressStore is what the commands need from repositories.AddressRepository.
type addressStore interface {
	Source() pagination.Source[models.Address]
	InsertMany(ctx context.Context, items []models.Address) (int, error)
	Drop(ctx context.Context) error
	DeleteByCity(ctx context.Context, city string) (int64, error)
	SetStatusForUser(ctx context.Context, userID int, status string) (int64, int64, error)
}

var _ addressStore = (*repositories.AddressRepository)(nil)

// app holds what a command runs against; opened once per invocation.
type app struct {
	addresses     addressStore
	engine        *pagination.Engine
	ensureIndexes func(ctx context.Context) error
	close         func()
}

// annotationNoMongo marks commands that talk to the HTTP API instead of the database.
const annotationNoMongo = "no-mongo"

type opener func(ctx context.Context) (*app, error)

// openMongo connects with the settings from config.yaml / .env.
func openMongo(ctx context.Context) (*app, error) {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level, "doc-pager-cli")

	if err := db.Init(ctx, cfg.Mongo); err != nil {
		return nil, err
	}
	d := db.Database()
	return &app{
		addresses:     repositories.NewAddressRepository(d),
		engine:        pagination.New(cfg.Pagination),
		ensureIndexes: func(ctx context.Context) error { return db.EnsureIndexes(ctx, d) },
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Disconnect(ctx)
		},
	}, nil
}

func newRootCmd(open opener) *cobra.Command {
	var a *app

	cmd := &cobra.Command{
		Use:           "pager",
		Short:         "Seed and paginate the doc-pager collections",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationNoMongo] == "true" {
				return nil
			}
			var err error
			a, err = open(cmd.Context())
			return err
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a != nil && a.close != nil {
				a.close()
			}
		},
	}

	get := func() *app { return a }
	cmd.AddCommand(
		newSeedCmd(get),
		newIndexesCmd(get),
		newPageCmd(get),
		newWalkCmd(get),
		newDeleteCmd(get),
		newSetStatusCmd(get),
		newRemoteWalkCmd(),
	)
	return cmd
}
