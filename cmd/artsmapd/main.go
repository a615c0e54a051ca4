// Command artsmapd serves the arts-space dashboard API: the feature
// snapshot, the map token, town boundaries, and the renderer's state and
// event endpoints.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/artsmap/artsmap/internal/config"
	"github.com/artsmap/artsmap/internal/logging"
	"github.com/artsmap/artsmap/internal/refdata"
	"github.com/artsmap/artsmap/internal/server"
	"github.com/artsmap/artsmap/internal/session"
)

func main() {
	_ = godotenv.Load(".env.local")
	log := logging.Setup()

	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("configuration invalid", "path", cfgPath, "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	sess := session.New(log)
	client := refdata.NewClient(log)

	loadFeatures(ctx, log, cfg, sess, client)
	sess.SetReferenceData(client.FetchAll(ctx, cfg.BoundaryFile, cfg.NeighborhoodEndpoints))

	srv := server.New(log, sess, cfg.ResolveToken, cfg.BoundaryFile)
	if err := srv.ListenAndServe(cfg.Listen); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadFeatures performs the one-time snapshot load. Failure is logged and
// leaves the session empty with its error flag set; the server still
// starts so the renderer can show the empty-with-error state.
func loadFeatures(ctx context.Context, log *slog.Logger, cfg config.Configuration, sess *session.Session, client *refdata.Client) {
	var (
		data []byte
		err  error
	)
	switch {
	case cfg.FeaturesFile != "":
		data, err = os.ReadFile(cfg.FeaturesFile)
	case cfg.FeaturesURL != "":
		data, err = client.FetchFeatures(ctx, cfg.FeaturesURL)
	default:
		log.Warn("no feature source configured")
		sess.LoadFeatures(nil)
		return
	}
	if err != nil {
		log.Error("feature snapshot unavailable", "error", err)
		sess.LoadFeatures(nil)
		return
	}
	sess.LoadFeatures(data)
}
