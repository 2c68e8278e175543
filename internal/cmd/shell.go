package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/MeKo-Tech/noisetex/internal/params"
	"github.com/MeKo-Tech/noisetex/internal/render"
	"github.com/MeKo-Tech/noisetex/internal/session"
	"github.com/MeKo-Tech/noisetex/internal/texture"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Tune parameters interactively and generate on demand",
	Long: `Read commands from stdin, one per line:

  set <param> <value>   write a raw control value (clamped to bounds)
  inc <param>           step a parameter up
  dec <param>           step a parameter down
  generate              render with a fresh random seed
  save <path>           write the current texture as PNG
  clear                 drop the current texture
  show                  list parameters
  quit                  exit`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	addTextureFlags(shellCmd, "shell")
	shellCmd.Flags().Int64("seed", 0, "Use this seed for every generation instead of random ones")
	if err := viper.BindPFlag("shell.seed", shellCmd.Flags().Lookup("seed")); err != nil {
		panic(fmt.Sprintf("failed to bind flag seed: %v", err))
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	cfg, err := readTextureConfig("shell")
	if err != nil {
		return err
	}
	gen, err := texture.NewGenerator(cfg.generator)
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}

	var seeds session.SeedSource
	if seed := viper.GetInt64("shell.seed"); seed != 0 {
		seeds = session.FixedSeed(seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sh := &shell{
		session:     session.New(cfg.model, gen, seeds, logger),
		render:      cfg.render,
		compression: cfg.compression,
		out:         cmd.OutOrStdout(),
	}
	return sh.run(ctx, cmd.InOrStdin())
}

type shell struct {
	session     *session.Session
	render      render.Options
	compression png.CompressionLevel
	out         io.Writer
}

var errQuit = errors.New("quit")

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := sh.exec(ctx, strings.Fields(line))
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			// A failed command leaves the session as it was.
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (sh *shell) exec(ctx context.Context, fields []string) error {
	switch fields[0] {
	case "set":
		if len(fields) != 3 {
			return fmt.Errorf("usage: set <param> <value>")
		}
		name, err := params.ParseName(fields[1])
		if err != nil {
			return err
		}
		v, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", fields[2], err)
		}
		got, err := sh.session.Set(name, v)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "%s = %d\n", name, got)

	case "inc", "dec":
		if len(fields) != 2 {
			return fmt.Errorf("usage: %s <param>", fields[0])
		}
		name, err := params.ParseName(fields[1])
		if err != nil {
			return err
		}
		delta := 1
		if fields[0] == "dec" {
			delta = -1
		}
		got, err := sh.session.Nudge(name, delta)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "%s = %d\n", name, got)

	case "generate":
		buf, err := sh.session.Generate(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "generated %dx%d seed=%d\n", buf.Width, buf.Height, sh.session.LastSeed())

	case "save":
		if len(fields) != 2 {
			return fmt.Errorf("usage: save <path>")
		}
		img, err := render.Process(sh.session.Buffer(), sh.render)
		if err != nil {
			return err
		}
		if err := render.WritePNG(fields[1], img, sh.compression); err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "saved %s\n", fields[1])

	case "clear":
		sh.session.Clear()
		fmt.Fprintln(sh.out, "cleared")

	case "show":
		return sh.session.ViewModel(func(m *params.Model) error {
			return printParams(sh.out, m)
		})

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
	return nil
}
