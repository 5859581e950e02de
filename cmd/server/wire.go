//go:build wireinject
// +build wireinject

package main

import (
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/app"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/config"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/email"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/geocode"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/jobs"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/database"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/platform/logger"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/property"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		database.ProvidePool,

		user.NewGORMRepository,

		property.NewGORMRepository,
		property.NewService,
		property.NewHandler,

		review.NewGORMRepository,
		review.NewService,
		review.NewHandler,

		email.NewTransport,
		email.NewNotifier,
		wire.Bind(new(email.Sender), new(*email.Notifier)),
		email.NewHandler,

		geocode.NewGeocoder,
		geocode.NewHandler,

		jobs.NewStoreHealthJob,
		wire.Bind(new(jobs.Pinger), new(*database.Pool)),

		app.NewServer,
	)
	return nil, nil, nil
}
