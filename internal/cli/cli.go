package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/gateway"
	"github.com/i474232898/weather-lookup/internal/lookup"
	"github.com/i474232898/weather-lookup/internal/onboarding"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/widget"
)

const (
	cmdUnit = ":unit"
	cmdQuit = ":quit"
)

type sessionConfig struct {
	city     string
	unit     weather.Unit
	timeout  time.Duration
	live     bool
	renderer *widget.Renderer
	hintOpts []onboarding.Option
	ctrlOpts []lookup.Option
}

// GatewayFactory builds the gateway used by commands. Tests swap it out.
type GatewayFactory func(cfg *config.ClientConfig) lookup.Gateway

func defaultGateway(cfg *config.ClientConfig) lookup.Gateway {
	// The controller owns the deadline.
	return gateway.New(cfg.GatewayURL, 0)
}

// New builds the weather command tree.
func New() *cobra.Command {
	return newRoot(defaultGateway, nil)
}

func newRoot(gw GatewayFactory, renderer *widget.Renderer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "weather",
		Short:         "CLI application for looking up current weather",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "weather.yaml", "path to the client config file")

	loadConfig := func() (*config.ClientConfig, error) {
		return config.LoadClient(configPath)
	}
	pickRenderer := func(cmd *cobra.Command) *widget.Renderer {
		if renderer != nil {
			return renderer
		}
		if cmd.OutOrStdout() == os.Stdout {
			return widget.NewTerminalRenderer()
		}
		return widget.NewRenderer(cmd.OutOrStdout())
	}

	root.AddCommand(newSearchCmd(loadConfig, gw, pickRenderer))
	root.AddCommand(newInteractiveCmd(loadConfig, gw, pickRenderer))
	return root
}

func newSearchCmd(
	loadConfig func() (*config.ClientConfig, error),
	gw GatewayFactory,
	pickRenderer func(*cobra.Command) *widget.Renderer,
) *cobra.Command {
	var unitFlag string

	cmd := &cobra.Command{
		Use:   "search [city]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Look up current weather for a city once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			unit := cfg.PreferredUnit()
			if unitFlag != "" {
				u, ok := weather.ParseUnit(unitFlag)
				if !ok {
					return fmt.Errorf("unknown unit %q (want C or F)", unitFlag)
				}
				unit = u
			}

			city := cfg.DefaultCity
			if len(args) == 1 {
				city = args[0]
			}

			s := newSession(gw(cfg), sessionConfig{
				city:     city,
				unit:     unit,
				timeout:  cfg.Timeout,
				renderer: pickRenderer(cmd),
			})

			state, err := s.ctrl.Search(cmd.Context(), city)
			if err != nil {
				return err
			}
			s.redraw()

			if state.Phase == lookup.PhaseFailure {
				return errors.New(state.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&unitFlag, "unit", "u", "", "temperature unit: C or F")
	return cmd
}

func newInteractiveCmd(
	loadConfig func() (*config.ClientConfig, error),
	gw GatewayFactory,
	pickRenderer func(*cobra.Command) *widget.Renderer,
) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Search repeatedly; type a city, " + cmdUnit + " to toggle units, " + cmdQuit + " to exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			s := newSession(gw(cfg), sessionConfig{
				city:     cfg.DefaultCity,
				unit:     cfg.PreferredUnit(),
				timeout:  cfg.Timeout,
				live:     true,
				renderer: pickRenderer(cmd),
				hintOpts: []onboarding.Option{onboarding.WithReady(func() bool { return isTerminal(in) })},
			})

			return runInteractive(cmd.Context(), s, in, cmd.ErrOrStderr())
		},
	}
}

// runInteractive reads commands until EOF, :quit or ctx cancellation. Searches
// run in the background so a newer search can supersede one still in flight.
func runInteractive(ctx context.Context, s *session, in io.Reader, errOut io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		s.hint.Deactivate()
		cancel()
		wg.Wait()
	}()

	s.hint.Activate()
	s.redraw()

	lines, readErr := readLines(ctx, in)
	for {
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case cmdQuit:
			return nil
		case cmdUnit:
			s.ctrl.ToggleUnit()
			continue
		case "":
			// Enter alone re-runs the pending city.
		default:
			s.ctrl.SetCity(line)
		}

		city := s.ctrl.City()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ctrl.Search(ctx, city); errors.Is(err, lookup.ErrEmptyCity) {
				fmt.Fprintln(errOut, onboarding.HintText)
			}
		}()
	}
}

// readLines scans in on its own goroutine so the caller can stop waiting on
// a blocked read. The lines channel is closed at EOF, after the scan error
// (possibly nil) is sent on the error channel.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
