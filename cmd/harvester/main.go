package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/acrossjobs/harvester/internal/clients/ats"
	"github.com/acrossjobs/harvester/internal/config"
	"github.com/acrossjobs/harvester/internal/entities"
	"github.com/acrossjobs/harvester/internal/logger"
	"github.com/acrossjobs/harvester/internal/metrics"
	"github.com/acrossjobs/harvester/internal/repositories"
	"github.com/acrossjobs/harvester/internal/services"
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

func buildHarvester(cfg *config.Config, dbContext *repositories.DbContext, bus EventBus.Bus) *services.Harvester {

	roster, err := config.LoadCompanies(cfg.Harvest.CompaniesFile)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeConfig).
			Fatalf("can't load companies roster: %v", err)
	}

	sources := lo.Map(roster, func(c config.CompanySource, _ int) ats.Source {
		return ats.Source{
			Name:          c.Name,
			Platform:      entities.AtsPlatform(c.Platform),
			Identifier:    c.Identifier,
			WorkdayDomain: c.WorkdayDomain,
			WorkdaySiteID: c.WorkdaySiteID,
		}
	})

	atsClient := ats.NewClient()
	atsClient.SetRateLimit(cfg.Harvest.AtsMaxRequestsPerSecond)

	companies := repositories.NewCompaniesRepository(dbContext.DB)
	jobs := repositories.NewJobsRepository(dbContext.DB)

	resolver := services.NewCompanyResolver(companies)

	if _, err = services.NewJobPublisher(bus, jobs, cfg.Harvest.PublishBatchSize, cfg.Harvest.PublishWindowDays); err != nil {
		log.Fatalf("can't create job publisher: %v", err)
	}

	harvester, err := services.NewHarvester(bus, atsClient, resolver, jobs, sources,
		cfg.Harvest.CompanyDelay, cfg.Harvest.RetentionDays)
	if err != nil {
		log.Fatalf("can't create harvester: %v", err)
	}
	return harvester
}

func runScheduled(ctx context.Context, cfg *config.Config, dbContext *repositories.DbContext,
	harvester *services.Harvester) {

	cleaner, err := services.NewJobsCleaner(repositories.NewJobsRepository(dbContext.DB), cfg.Harvest.RetentionDays)
	if err != nil {
		log.Fatalf("can't create jobs cleaner: %v", err)
	}
	defer cleaner.Stop()

	c := cron.New()
	_, err = c.AddFunc(cfg.Harvest.Cron, func() {
		if _, err := harvester.RunOnce(ctx); err != nil {
			log.Errorf("harvest pass aborted: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("can't schedule harvest: %v", err)
	}

	c.Start()
	log.Infof("harvester scheduled with cron expression %q", cfg.Harvest.Cron)

	<-ctx.Done()

	log.Info("Shutting down services...")
	<-c.Stop().Done()
	log.Info("Services stopped.")
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metrics.StartMetricsServer()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	bus := EventBus.New()
	harvester := buildHarvester(cfg, dbContext, bus)

	if cfg.Harvest.Cron != "" {
		runScheduled(ctx, cfg, dbContext, harvester)
		return
	}

	summary, err := harvester.RunOnce(ctx)
	if err != nil {
		log.Errorf("harvest pass aborted: %v", err)
		dbContext.Close()
		logger.Cleanup()
		os.Exit(1)
	}
	if len(summary.FailedSources) > 0 && summary.JobsSynced == 0 {
		log.Error("harvest pass produced no postings")
		dbContext.Close()
		logger.Cleanup()
		os.Exit(1)
	}
}
