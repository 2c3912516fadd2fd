package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/markdave123-py/Comparo/internal/config"
	"github.com/markdave123-py/Comparo/internal/core"
	"github.com/markdave123-py/Comparo/internal/core/extraction_engine"
	"github.com/markdave123-py/Comparo/internal/core/ingestion_engine"
	objectclient "github.com/markdave123-py/Comparo/internal/core/object-client"
	"github.com/markdave123-py/Comparo/internal/core/staging"
)

type App struct {
	Server *Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	appCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	disk, err := staging.NewDiskStager(cfg.StagingDir, cfg.KeepStagedFiles, logger)
	if err != nil {
		return nil, fmt.Errorf("couldn't prepare staging directory: %w", err)
	}
	var stager core.Stager = disk

	if cfg.ArchiveBucket != "" {
		objClient, err := objectclient.NewS3Client(appCtx, cfg)
		if err != nil {
			return nil, fmt.Errorf("couldn't initialize the archive client: %w", err)
		}
		stager = staging.NewArchivingStager(disk, objClient, cfg.ArchiveBucket, cfg.ArchivePrefix, logger)
		logger.Info("archive enabled", "bucket", cfg.ArchiveBucket, "prefix", cfg.ArchivePrefix)
	}

	ingCfg := &ingestion_engine.IngestConfig{
		PageWorkers:    cfg.PageWorkers,
		UseReadability: cfg.UseReadability,
	}
	extractor := ingestion_engine.NewDocconvExtractor(ingCfg, logger)
	assembler := extraction_engine.NewAssembler(nil)

	docIngestor := ingestion_engine.NewDocumentIngestor(stager, extractor, assembler, logger)

	return &App{Server: NewServer(cfg, docIngestor, logger)}, nil
}
