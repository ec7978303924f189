// Package cli implements the eventdesk command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"eventdesk/internal/blob"
	"eventdesk/internal/config"
	"eventdesk/internal/core"
	"eventdesk/internal/logging"
	"eventdesk/pkg/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// app carries the state shared by every command of one invocation.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	environ    []string
	configPath string
	output     string
	cfg        config.Config
	svc        *core.Service
	registry   *prometheus.Registry
}

// Run executes the command line args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, environ []string) int {
	a := &app{stdout: stdout, stderr: stderr, environ: environ, cfg: config.Defaults()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if cerr := a.teardown(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// NewRootCommand builds the command tree writing to stdout and stderr.
// Callers that execute it themselves do not get metrics files written or
// the storage backend closed; use Run for that.
func NewRootCommand(stdout, stderr io.Writer, environ []string) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr, environ: environ, cfg: config.Defaults()}
	root := a.rootCommand()
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "eventdesk",
		Short:             "Keep employee, client, supplier and event records for an event planning business",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (.yaml, .yml, .json, .toml); defaults to EVENTDESK_CONFIG")
	pf.String("data-dir", a.cfg.DataDir, "Directory holding snapshots")
	pf.String("storage-driver", a.cfg.Storage.Driver, "Snapshot backend: file|memory|sqlite|postgres|blob")
	pf.Bool("strict-save", false, "Roll back a change when its snapshot cannot be saved")
	pf.String("client-delete-policy", a.cfg.ClientDeletePolicy, "Events of a deleted client: allow|restrict|cascade")
	pf.String("log-level", a.cfg.Log.Level, "Log level: debug|info|warn|error|disabled")
	pf.String("log-format", a.cfg.Log.Format, "Log format: console|json")
	pf.String("metrics-file", "", "Write Prometheus metrics to this textfile on exit")
	pf.StringVarP(&a.output, "output", "o", "table", "Output format: table|json|yaml")

	root.AddCommand(
		entityCommand(a, employeeSpec()),
		entityCommand(a, clientSpec()),
		entityCommand(a, supplierSpec()),
		entityCommand(a, eventSpec()),
	)
	return root
}

// setup resolves configuration and opens the record store before any
// entity command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch a.output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q", a.output)
	}
	path := a.configPath
	if path == "" {
		path = lookupEnv(a.environ, "EVENTDESK_CONFIG")
	}
	cfg, err := config.Resolve(path, a.environ, flagOverrides(cmd))
	if err != nil {
		return err
	}
	a.cfg = cfg

	zl, err := logging.New(a.stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	policy, err := core.ParseClientDeletePolicy(cfg.ClientDeletePolicy)
	if err != nil {
		return err
	}
	a.registry = prometheus.NewRegistry()
	recorder, err := core.NewPrometheusRecorder(a.registry)
	if err != nil {
		return err
	}
	snapshots, err := core.OpenSnapshotStore(cmd.Context(), storageConfig(cfg))
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	svc, err := core.OpenStore(cmd.Context(), snapshots,
		core.WithLogger(logging.NewAdapter(zl)),
		core.WithMetricsRecorder(recorder),
		core.WithStrictSave(cfg.StrictSave),
		core.WithClientDeletePolicy(policy),
	)
	if err != nil {
		_ = snapshots.Close()
		return err
	}
	a.svc = svc
	return nil
}

// teardown closes the storage backend and writes the metrics textfile.
func (a *app) teardown() error {
	var err error
	if a.svc != nil {
		err = a.svc.Close()
		a.svc = nil
	}
	if a.registry != nil && a.cfg.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(a.cfg.MetricsFile, a.registry); werr != nil && err == nil {
			err = fmt.Errorf("write metrics: %w", werr)
		}
	}
	return err
}

func flagOverrides(cmd *cobra.Command) config.Override {
	return func(c *config.Config) error {
		flags := cmd.Flags()
		strs := map[string]*string{
			"data-dir":             &c.DataDir,
			"storage-driver":       &c.Storage.Driver,
			"client-delete-policy": &c.ClientDeletePolicy,
			"log-level":            &c.Log.Level,
			"log-format":           &c.Log.Format,
			"metrics-file":         &c.MetricsFile,
		}
		for name, dst := range strs {
			if !flags.Changed(name) {
				continue
			}
			v, err := flags.GetString(name)
			if err != nil {
				return err
			}
			*dst = v
		}
		if flags.Changed("strict-save") {
			v, err := flags.GetBool("strict-save")
			if err != nil {
				return err
			}
			c.StrictSave = v
		}
		return nil
	}
}

func storageConfig(cfg config.Config) core.StorageConfig {
	s3 := cfg.Storage.Blob.S3
	return core.StorageConfig{
		Driver:      core.StorageDriver(cfg.Storage.Driver),
		DataDir:     cfg.DataDir,
		SQLitePath:  cfg.Storage.SQLitePath,
		PostgresDSN: cfg.Storage.PostgresDSN,
		BlobPrefix:  cfg.Storage.Blob.Prefix,
		Blob: blob.Config{
			Driver: blob.Driver(cfg.Storage.Blob.Driver),
			FSRoot: cfg.Storage.Blob.FSRoot,
			S3: blob.S3Config{
				Bucket:          s3.Bucket,
				Region:          s3.Region,
				Endpoint:        s3.Endpoint,
				PathStyle:       s3.PathStyle,
				AccessKeyID:     s3.AccessKeyID,
				SecretAccessKey: s3.SecretAccessKey,
			},
		},
	}
}

func lookupEnv(environ []string, key string) string {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}

// exitCode maps error kinds onto distinct process exit codes.
func exitCode(err error) int {
	switch {
	case domain.IsValidation(err):
		return 2
	case domain.IsNotFound(err):
		return 3
	case domain.IsDuplicateID(err), domain.IsReference(err):
		return 4
	case domain.IsPersistence(err):
		return 5
	default:
		return 1
	}
}
