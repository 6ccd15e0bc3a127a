// Command csvcompare compares two delimited tables cell by cell.
//
// Usage:
//
//	csvcompare [file1] [file2]        serve the web UI
//	csvcompare diff <file1> <file2>   print differences and exit
//
// Sources are file paths, "pg:<table>" when DATABASE_URL is set, or
// "s3://<bucket>/<key>" when S3_ENABLED is true.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/csvcompare/internal/compare"
	"github.com/JonMunkholm/csvcompare/internal/config"
	"github.com/JonMunkholm/csvcompare/internal/logging"
	"github.com/JonMunkholm/csvcompare/internal/table"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "0.3.2"

// Exit codes follow diff(1).
const (
	exitDiffer  = 1
	exitTrouble = 2
)

// errFilesDiffer makes diff exit with exitDiffer without printing an error.
var errFilesDiffer = errors.New("files differ")

func main() {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, errFilesDiffer):
		os.Exit(exitDiffer)
	default:
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitTrouble)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "csvcompare [file1] [file2]",
		Short:         "Compare two CSV files cell by cell",
		Long:          "Serve a web UI that shows two tables interleaved row by row, coloring each cell by whether the files agree. When both files are given they are compared at startup.",
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var file1, file2 string
			if len(args) > 0 {
				file1 = args[0]
			}
			if len(args) > 1 {
				file2 = args[1]
			}
			return runServe(cmd.Context(), file1, file2)
		},
	}
	root.AddCommand(newDiffCmd())
	return root
}

// app holds what both commands share.
type app struct {
	cfg      *config.Config
	csv      *table.CSVLoader
	resolver *table.Resolver
	service  *compare.Service
	pool     *pgxpool.Pool
}

// setup loads configuration, installs the logger writing to logOut and
// connects the optional database and object store.
func setup(ctx context.Context, logOut io.Writer) (*app, error) {
	// Load .env file if it exists; the process environment takes precedence
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logging.Setup(logOut, cfg.Logging.Level, cfg.Logging.Format)
	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"delimiter", cfg.Compare.Delimiter,
		"max_file_size", cfg.Compare.MaxFileSize,
		"max_concurrent", cfg.Compare.MaxConcurrent,
		"database", cfg.Database.Enabled(),
		"s3", cfg.S3.Enabled,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	a := &app{cfg: cfg}
	a.pool = connectDatabase(ctx, &cfg.Database)

	a.csv = table.NewCSVLoader(cfg.Compare.Delimiter, cfg.Compare.MaxFileSize)
	a.resolver = table.NewResolver(a.csv, table.NewPostgresLoader(a.pool))
	if client := connectS3(&cfg.S3); client != nil {
		a.resolver.S3 = table.NewS3Loader(client, a.csv)
	}

	a.service = compare.NewService(a.resolver, compare.Options{
		MaxConcurrent: cfg.Compare.MaxConcurrent,
		MaxWait:       cfg.Compare.MaxWaitTime,
		LoadTimeout:   cfg.Compare.LoadTimeout,
	})
	return a, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// connectDatabase opens the optional pool used for "pg:" sources. Failures
// are logged and leave database sources unavailable.
func connectDatabase(ctx context.Context, cfg *config.DatabaseConfig) *pgxpool.Pool {
	if !cfg.Enabled() {
		slog.Debug("no database configured, pg: sources disabled")
		return nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		slog.Warn("failed to parse database URL, pg: sources disabled", "error", err)
		return nil
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Warn("failed to connect to database, pg: sources disabled", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		slog.Warn("failed to ping database, pg: sources disabled", "error", err)
		pool.Close()
		return nil
	}

	if u, err := url.Parse(cfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}
	return pool
}

// connectS3 builds the client used for "s3://" sources. Static credentials
// are used when configured, otherwise the default AWS chain.
func connectS3(cfg *config.S3Config) *s3.S3 {
	if !cfg.Enabled {
		slog.Debug("s3 disabled, s3:// sources unavailable")
		return nil
	}

	awsCfg := aws.NewConfig().
		WithRegion(cfg.Region).
		WithS3ForcePathStyle(cfg.ForcePathStyle)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		slog.Warn("failed to create S3 session, s3:// sources unavailable", "error", err)
		return nil
	}

	slog.Info("s3 sources enabled", "region", cfg.Region, "endpoint", cfg.Endpoint)
	return s3.New(sess)
}
