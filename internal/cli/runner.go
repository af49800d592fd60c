package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/app"
	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/liststore"
	"github.com/idilsaglam/shoplist/internal/logging"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/tui"
	"github.com/idilsaglam/shoplist/internal/ui"
	"github.com/idilsaglam/shoplist/internal/web"
)

// Options are the root flags; empty strings defer to the config file.
type Options struct {
	ConfigPath string
	Backend    string
	DataDir    string
	Theme      string
	NoColor    bool
	Verbose    bool
}

// usageError marks failures caused by bad input (exit code 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usage(format string, a ...any) error { return usageError{fmt.Errorf(format, a...)} }

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{fmt.Errorf("%w\nusage: %s", err, cmd.UseLine())}
		}
		return nil
	}
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage).
func Execute(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(stderr, err.Error())
	var ue usageError
	if errors.As(err, &ue) ||
		errors.Is(err, liststore.ErrEmptyName) ||
		errors.Is(err, liststore.ErrInvalidQuantity) {
		return 2
	}
	return 1
}

type runner struct {
	opt Options
	cfg *config.Config
}

func (r *runner) config() (*config.Config, error) {
	if r.cfg != nil {
		return r.cfg, nil
	}
	cfg, err := config.Load(r.opt.ConfigPath)
	if err != nil {
		return nil, err
	}
	if r.opt.Backend != "" {
		cfg.Backend = r.opt.Backend
	}
	if r.opt.DataDir != "" {
		cfg.DataDir = r.opt.DataDir
	}
	if r.opt.Theme != "" {
		cfg.Theme = r.opt.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, usageError{err}
	}
	ui.SetTheme(cfg.Theme)
	if r.opt.NoColor {
		ui.SetColorMode(ui.ColorNever)
	}
	r.cfg = cfg
	return cfg, nil
}

// withStore opens the configured list, runs fn and closes the substrate.
func (r *runner) withStore(newLogger func(config.LoggingConfig, bool) (*zap.Logger, error),
	fn func(s *liststore.Store, log *zap.Logger) error) error {
	cfg, err := r.config()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Logging, r.opt.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	s, kv, err := app.Open(cfg, log)
	if err != nil {
		return err
	}
	defer kv.Close()
	return fn(s, log)
}

// NewRootCmd builds the shoplist command tree.
func NewRootCmd() *cobra.Command {
	r := &runner{}

	root := &cobra.Command{
		Use:   "shoplist",
		Short: "shoplist - a shopping list for the terminal and the browser",
		Long: `shoplist keeps a shopping list of named items with a quantity and an
optional image. Adding a name that is already on the list adds to its
quantity. The list is saved after every change.

Run without arguments to open the interactive list.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&r.opt.ConfigPath, "config", "shoplist.yaml", "config file")
	pf.StringVar(&r.opt.Backend, "backend", "", "storage backend: json, sqlite or memory")
	pf.StringVar(&r.opt.DataDir, "data-dir", "", "directory holding the saved list")
	pf.StringVar(&r.opt.Theme, "theme", "", "output theme: "+strings.Join(ui.ThemeNames(), ", "))
	pf.BoolVar(&r.opt.NoColor, "no-color", false, "never color output")
	pf.BoolVarP(&r.opt.Verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		r.addCmd(),
		r.listCmd(),
		r.boughtCmd(),
		r.removeCmd(),
		r.clearCmd(),
		r.exportCmd(),
		r.tuiCmd(),
		r.serveCmd(),
	)
	return root
}

// -------------- subcommand impls ----------------

func (r *runner) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <name> <quantity> [imageUrl]",
		Short:   "Add an item, or add to its quantity if it is already listed",
		Example: "  shoplist add \"Pão\" 2\n  shoplist add Maçã 1 https://example.com/maca.jpeg",
		Args:    usageArgs(cobra.RangeArgs(2, 3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			image := ""
			if len(args) == 3 {
				image = args[2]
			}
			return r.withStore(logging.New, func(s *liststore.Store, _ *zap.Logger) error {
				if err := s.AddInput(args[0], args[1], image); err != nil {
					return fmt.Errorf("add: %w", err)
				}
				it, _ := s.Find(strings.TrimSpace(args[0]))
				ui.OK(cmd.OutOrStdout(), "added "+it.Label())
				return nil
			})
		},
	}
}

func (r *runner) listCmd() *cobra.Command {
	var group bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Show the list",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(logging.New, func(s *liststore.Store, _ *zap.Logger) error {
				renderList(cmd.OutOrStdout(), s, group)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "group output by pending/bought")
	return cmd
}

func (r *runner) boughtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bought <name>",
		Short: "Toggle the bought mark of an item",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(logging.New, func(s *liststore.Store, _ *zap.Logger) error {
				name := args[0]
				if err := requireItem(cmd, s, name); err != nil {
					return err
				}
				if err := s.ToggleBought(name); err != nil {
					return err
				}
				it, _ := s.Find(name)
				msg := "marked bought: "
				if !it.Bought {
					msg = "marked pending: "
				}
				ui.OK(cmd.OutOrStdout(), msg+it.Name)
				return nil
			})
		},
	}
}

func (r *runner) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an item",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(logging.New, func(s *liststore.Store, _ *zap.Logger) error {
				if err := requireItem(cmd, s, args[0]); err != nil {
					return err
				}
				if err := s.Remove(args[0]); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "removed "+args[0])
				return nil
			})
		},
	}
}

func (r *runner) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(logging.New, func(s *liststore.Store, _ *zap.Logger) error {
				if err := s.Clear(); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "cleared")
				return nil
			})
		},
	}
}

func (r *runner) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the saved list as JSON",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(logging.New, func(s *liststore.Store, _ *zap.Logger) error {
				b, err := s.Snapshot()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			})
		},
	}
}

func (r *runner) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive list",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runTUI()
		},
	}
}

func (r *runner) runTUI() error {
	return r.withStore(logging.ForTUI, func(s *liststore.Store, log *zap.Logger) error {
		return tui.Run(s, log)
	})
}

func (r *runner) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the list as a web page",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(logging.New, func(s *liststore.Store, log *zap.Logger) error {
				if addr == "" {
					addr = r.cfg.Web.Addr
				}
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return web.New(s, log).Run(ctx, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func requireItem(cmd *cobra.Command, s *liststore.Store, name string) error {
	if _, ok := s.Find(name); ok {
		return nil
	}
	ui.Hint(cmd.ErrOrStderr(), "run `shoplist ls` to see item names (they are case-sensitive)")
	return usage("no item named %q", name)
}

// -------------- rendering helpers --------------

func renderList(w io.Writer, s *liststore.Store, group bool) {
	t := ui.Current()
	items := s.Items()
	b, p := s.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(t.Title, "Shopping list"),
		ui.C(t.Success, t.SymBought), b,
		ui.C(t.Pending, t.SymPending), p,
		ui.C(t.Accent, "Total"), len(items),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, ui.C(t.Muted, ui.ProgressBar(b, b+p, 28)))
	lines = append(lines, "")
	if group {
		lines = append(lines, groupLines(items)...)
	} else {
		lines = append(lines, flatLines(items)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.C(t.Muted, "Tip: add with `shoplist add \"Pão\" 2`"))
	ui.Panel(w, lines)
}

func flatLines(items []model.Item) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{ui.C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		box, color := t.BoxPending, t.Muted
		if it.Bought {
			box, color = t.BoxBought, t.Success
		}
		label := it.Label()
		if len([]rune(label)) > 60 {
			label = string([]rune(label)[:57]) + "..."
		}
		line := fmt.Sprintf("%s %s %s", ui.Dim(fmt.Sprintf("%2d.", i+1)), ui.C(color, box), label)
		if it.HasImage() {
			line += "  " + ui.C(t.Muted, shorten(it.ImageURL, 40))
		}
		out = append(out, line)
	}
	return out
}

func groupLines(items []model.Item) []string {
	t := ui.Current()
	var pend, bought []model.Item
	for _, it := range items {
		if it.Bought {
			bought = append(bought, it)
		} else {
			pend = append(pend, it)
		}
	}
	section := func(title string, its []model.Item) []string {
		lines := []string{ui.C(t.Accent, title)}
		if len(its) == 0 {
			return append(lines, ui.C(t.Muted, "(none)"))
		}
		return append(lines, flatLines(its)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Bought", bought)...)
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
