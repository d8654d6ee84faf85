// ztags generates a vi-compatible tags file for Zig source code.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/ztags/internal/config"
	zerrors "github.com/standardbeagle/ztags/internal/errors"
	"github.com/standardbeagle/ztags/internal/indexing"
	"github.com/standardbeagle/ztags/internal/parser"
	"github.com/standardbeagle/ztags/internal/syntax"
	"github.com/standardbeagle/ztags/internal/tags"
	"github.com/standardbeagle/ztags/internal/version"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// -v belongs to --verbose; keep the built-in version flag long-form only.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	return &cli.App{
		Name:    "ztags",
		Usage:   "generate a tags file for Zig source code",
		Version: version.Info(),
		UsageText: `ztags [options] FILE...

Tags are written in input order. To produce a sorted tags file without
--sort, pipe through sort on the first field:

   ztags src/*.zig | sort -t"$(printf '\t')" -k1,1 > tags`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write tags to `FILE` instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "sort",
				Usage: "sort tag lines before writing",
			},
			&cli.BoolFlag{
				Name:    "recurse",
				Aliases: []string{"R"},
				Usage:   "recurse into directory arguments",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "keep running and regenerate on source changes (requires --output)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   ".ztags.kdl",
				Usage:   "load settings from `FILE`",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "glob `PATTERN` for files picked up when recursing",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "glob `PATTERN` for files skipped when recursing",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	setupLogging(c.Bool("verbose"))

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}

	args := c.Args().Slice()
	files, err := indexing.Expand(args, cfg.Recurse, cfg.Include, cfg.Exclude)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}

	zp, err := parser.NewZigParser()
	if err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}
	defer zp.Close()

	if cfg.Watch.Enabled {
		return runWatch(c, zp, cfg, args)
	}

	if cfg.Output == "" && !cfg.Sort {
		// Stream straight to stdout; nothing to post-process.
		processed, err := generate(zp, files, os.Stdout)
		if err != nil {
			return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
		}
		if processed == 0 {
			return noInput(c)
		}
		return nil
	}

	content, processed, err := generateBuffered(zp, files, cfg.Sort)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}
	if processed == 0 {
		return noInput(c)
	}

	if cfg.Output == "" {
		if _, err := os.Stdout.Write(content); err != nil {
			return cli.Exit(fmt.Sprintf("ztags: write tags: %v", err), 1)
		}
		return nil
	}
	if err := os.WriteFile(cfg.Output, content, 0644); err != nil {
		return cli.Exit(fmt.Sprintf("ztags: write %s: %v", cfg.Output, err), 1)
	}
	return nil
}

// generate parses each file and streams its tags to out. Files that cannot
// be read or parsed are reported and skipped; only sink write failures stop
// the run. Returns how many files produced output.
func generate(zp *parser.ZigParser, files []string, out io.Writer) (int, error) {
	emitter := tags.NewEmitter(out)
	gen := tags.NewGenerator(emitter)

	processed := 0
	for _, path := range files {
		tree, err := parseFile(zp, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ztags: %v, skipping\n", err)
			continue
		}
		if err := gen.File(tree); err != nil {
			return processed, err
		}
		processed++
	}
	return processed, nil
}

// generateBuffered collects the full tag output in memory, optionally
// sorting the lines, for --sort, --output, and watch mode.
func generateBuffered(zp *parser.ZigParser, files []string, sortLines bool) ([]byte, int, error) {
	var buf bytes.Buffer
	emitter := tags.NewEmitter(&buf)
	gen := tags.NewGenerator(emitter)

	processed := 0
	for _, path := range files {
		tree, err := parseFile(zp, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ztags: %v, skipping\n", err)
			continue
		}
		if err := gen.File(tree); err != nil {
			return nil, processed, err
		}
		processed++
	}

	content := buf.Bytes()
	if sortLines && len(content) > 0 {
		lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
		sort.Strings(lines)
		content = []byte(strings.Join(lines, "\n") + "\n")
	}
	return content, processed, nil
}

func parseFile(zp *parser.ZigParser, path string) (*syntax.Tree, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, zerrors.NewFileError("read", path, err)
	}
	return zp.Parse(path, content)
}

func runWatch(c *cli.Context, zp *parser.ZigParser, cfg *config.Config, args []string) error {
	rebuild := func() ([]byte, error) {
		files, err := indexing.Expand(args, cfg.Recurse, cfg.Include, cfg.Exclude)
		if err != nil {
			return nil, err
		}
		content, processed, err := generateBuffered(zp, files, cfg.Sort)
		if err != nil {
			return nil, err
		}
		if processed == 0 {
			return nil, fmt.Errorf("no input files processed")
		}
		return content, nil
	}

	// Watch the directories of the initial expansion; new files in those
	// directories are picked up because every rebuild re-expands args.
	files, err := indexing.Expand(args, cfg.Recurse, cfg.Include, cfg.Exclude)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}
	if len(files) == 0 {
		return noInput(c)
	}

	watcher, err := indexing.NewWatcher(files, cfg.Output, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, rebuild)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}
	defer watcher.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "ztags: watching for changes, writing %s; press Ctrl-C to stop\n", cfg.Output)
	if err := watcher.Run(ctx); err != nil {
		return cli.Exit(fmt.Sprintf("ztags: %v", err), 1)
	}
	return nil
}

func noInput(c *cli.Context) error {
	cli.ShowAppHelp(c)
	return cli.Exit("\nztags: no input files processed", 1)
}

// loadConfigWithOverrides reads the config file (if present) and layers
// explicitly-set CLI flags on top.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("sort") {
		cfg.Sort = c.Bool("sort")
	}
	if c.IsSet("recurse") {
		cfg.Recurse = c.Bool("recurse")
	}
	if c.IsSet("watch") {
		cfg.Watch.Enabled = c.Bool("watch")
	}
	if c.IsSet("include") {
		cfg.Include = c.StringSlice("include")
	}
	if c.IsSet("exclude") {
		cfg.Exclude = c.StringSlice("exclude")
	}
	return cfg, nil
}

func setupLogging(verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
