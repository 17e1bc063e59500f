package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nsxbet/abap-reviewer/pkg/reviewer"
	"github.com/nsxbet/abap-reviewer/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the remediation endpoints over HTTP",
	Long: `Start an HTTP server exposing:

  GET  /health            liveness and rule information
  POST /remediate         scan one unit and return it with its findings
  POST /remediate-array   scan many units and return those with findings`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "address to listen on")
	serveCmd.Flags().StringP("rules", "r", "", "path to rules configuration file")
	serveCmd.Flags().Int("concurrency", 0, "units scanned in parallel per batch request (0 uses all CPUs)")
	serveCmd.Flags().Int64("max-body-bytes", 32<<20, "maximum request body size")
	serveCmd.Flags().Duration("request-timeout", 60*time.Second, "per-request timeout")

	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.rules", serveCmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("server.concurrency", serveCmd.Flags().Lookup("concurrency"))
	_ = viper.BindPFlag("server.max-body-bytes", serveCmd.Flags().Lookup("max-body-bytes"))
	_ = viper.BindPFlag("server.request-timeout", serveCmd.Flags().Lookup("request-timeout"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	r := reviewer.New()
	if rulesPath := viper.GetString("server.rules"); rulesPath != "" {
		if err := r.WithConfig(rulesPath); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:           viper.GetString("server.addr"),
		Reviewer:       r,
		Logger:         slog.Default(),
		MaxBodyBytes:   viper.GetInt64("server.max-body-bytes"),
		RequestTimeout: viper.GetDuration("server.request-timeout"),
		Concurrency:    viper.GetInt("server.concurrency"),
	})
	return srv.Serve(ctx)
}
