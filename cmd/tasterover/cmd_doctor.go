package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tasterover/internal/failure"
)

// nowFunc is replaced in tests.
var nowFunc = time.Now

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration and probe the backend",
	Long: `Validates the configuration, then probes the health and menu endpoints
concurrently. A quota failure on the menu probe is reported as such.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

type probe struct {
	name    string
	ok      bool
	detail  string
	elapsed time.Duration
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(out, "✗ config    %v\n", err)
		return errFailed
	}
	fmt.Fprintf(out, "✓ config    %s\n", configPath)

	sess, client := newSession(cfg)
	probes := make([]probe, 2)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		start := nowFunc()
		ok, err := client.Health(ctx)
		p := probe{name: "health", ok: err == nil && ok, elapsed: nowFunc().Sub(start)}
		switch {
		case err != nil:
			p.detail = err.Error()
		case !ok:
			p.detail = "backend reports unhealthy"
		default:
			p.detail = client.BaseURL()
		}
		probes[0] = p
		return nil
	})
	g.Go(func() error {
		start := nowFunc()
		st, err := sess.MenuFlow().Run(ctx, struct{}{})
		if err != nil {
			return err
		}
		p := probe{name: "menu", ok: st.IsSuccess(), elapsed: nowFunc().Sub(start)}
		switch {
		case st.IsSuccess():
			p.detail = fmt.Sprintf("%d products", len(st.Result))
		case st.Kind == failure.QuotaExhausted:
			p.detail = "quota exhausted: " + st.Message
		default:
			p.detail = st.Message
		}
		probes[1] = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	failed := false
	for _, p := range probes {
		mark := "✓"
		if !p.ok {
			mark, failed = "✗", true
		}
		fmt.Fprintf(out, "%s %-9s %s\n", mark, p.name, p.detail)
		logger.Debug("probe", zap.String("name", p.name), zap.Bool("ok", p.ok), zap.Duration("elapsed", p.elapsed))
	}
	if failed {
		return errFailed
	}
	return nil
}
