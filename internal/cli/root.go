package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
)

// Execute runs fitctl with args and releases the store afterwards.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, opts ...Option) (err error) {
	a := &app{now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	defer func() {
		err = multierr.Append(err, a.close())
	}()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fitctl",
		Short:         "Generate workouts and track daily completions from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configDir, "config", ".", "directory holding config.yaml")
	flags.StringVar(&a.backend, "backend", "", "storage backend (memory, sqlite, redis, mongo, s3)")
	flags.StringVar(&a.dbPath, "db", "", "sqlite database file")
	flags.StringVar(&a.namespace, "namespace", "", "storage namespace")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log at the configured level instead of warn")

	root.AddCommand(
		newGenerateCmd(a),
		newShowCmd(a),
		newCompleteCmd(a),
		newStatusCmd(a),
		newExportCmd(a),
		newDeleteCmd(a),
		newQuestionsCmd(),
		newPointsCmd(a),
	)
	return root
}
