package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spigell/cv-matcher/internal/ingestion"
	"github.com/spigell/cv-matcher/internal/logger"
	"github.com/spigell/cv-matcher/internal/resume"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultExtractWorkers = 4

type extractedDocument struct {
	File   string                   `json:"file"`
	Resume *resume.StructuredResume `json:"resume,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract structured data from résumé files and print it as JSON",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		extract(cmd.Context(), args)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntP("workers", "w", defaultExtractWorkers, "number of documents processed concurrently")

	viper.BindPFlag("extract.workers", extractCmd.Flags().Lookup("workers"))
}

func extract(ctx context.Context, paths []string) {
	if ctx == nil {
		ctx = context.Background()
	}

	log, config := setup()

	extractor, err := newExtractor(config)
	if err != nil {
		log.Fatal("preparing the extractor", zap.Error(err))
	}

	workers := defaultExtractWorkers
	if config.Extract != nil && config.Extract.Workers > 0 {
		workers = config.Extract.Workers
	}

	docs, failed := extractDocuments(ctx, extractor, paths, workers, log)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		log.Fatal("writing results", zap.Error(err))
	}

	if failed > 0 {
		log.Fatal("some documents could not be read", zap.Int("failed", failed), zap.Int("total", len(paths)))
	}
}

// extractDocuments decodes and extracts every path, keeping argument order in the result.
// A document that cannot be decoded carries its error instead of a résumé.
func extractDocuments(ctx context.Context, extractor *resume.Extractor, paths []string, workers int, log *zap.Logger) ([]extractedDocument, int) {
	docs := make([]extractedDocument, len(paths))
	failures := make([]bool, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	for i, path := range paths {
		g.Go(func() error {
			docs[i].File = path
			docLog := log.With(logger.DocumentFields(path, filepath.Ext(path))...)

			if err := ctx.Err(); err != nil {
				return err
			}

			text, err := ingestion.ReadDocument(path)
			if err != nil {
				docLog.Error("reading a document", zap.Error(err))
				docs[i].Error = err.Error()
				failures[i] = true
				return nil
			}

			record := extractor.Extract(text)
			docs[i].Resume = &record

			docLog.Debug("extracted a document",
				zap.Int("certifications", len(record.Certifications)),
				zap.Int("experience", len(record.Experience)),
				zap.Int("education", len(record.Education)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("extraction interrupted", zap.Error(err))
	}

	failed := 0
	for _, f := range failures {
		if f {
			failed++
		}
	}

	return docs, failed
}
