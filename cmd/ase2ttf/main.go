// Command ase2ttf converts an Aseprite sprite sheet or a raster image into a
// TrueType bitmap font.
//
// Usage:
//
//	ase2ttf [options] INPUT
//
// Layers named "U+XXXX" are cut into glyph cells; cell i of a layer maps to
// codepoint XXXX+i in row-major order. Options come from built-in defaults,
// then the --config TOML file, then the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jessevdk/go-flags"

	"github.com/gogpu/spritefont"
)

type command struct {
	Output  string `short:"o" long:"output" value-name:"FILE" description:"font file to write (default: INPUT with .ttf extension)"`
	Config  string `long:"config" value-name:"FILE" description:"TOML file with font options"`
	Preview string `long:"preview" value-name:"PNG" description:"write a contact sheet comparing cells and outlines"`
	Zoom    int    `long:"zoom" default:"4" description:"preview magnification"`
	Verify  bool   `long:"verify" description:"read the written font back and check every glyph"`
	Verbose bool   `short:"v" long:"verbose" description:"log every glyph"`

	spritefont.Options `group:"Font Options"`

	Args struct {
		Input string `positional-arg-name:"INPUT" description:"sprite sheet (.aseprite, .ase, .png, .gif, ...)"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd, err := parse(os.Args[1:])
	if err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}
	if err := run(ctx, cmd); err != nil {
		fmt.Fprintln(os.Stderr, "ase2ttf:", err)
		os.Exit(1)
	}
}

// parse reads the command line twice: once for --config alone, then fully
// on top of the options loaded from it, so flags override the file.
func parse(args []string) (*command, error) {
	var pre struct {
		Config string `long:"config"`
	}
	if _, err := flags.NewParser(&pre, flags.IgnoreUnknown).ParseArgs(args); err != nil {
		fmt.Fprintln(os.Stderr, "ase2ttf:", err)
		return nil, err
	}

	opts := spritefont.DefaultOptions()
	if pre.Config != "" {
		var err error
		if opts, err = spritefont.LoadOptions(pre.Config); err != nil {
			fmt.Fprintln(os.Stderr, "ase2ttf:", err)
			return nil, err
		}
	}

	cmd := &command{Options: opts}
	if _, err := flags.NewParser(cmd, flags.Default).ParseArgs(args); err != nil {
		return nil, err
	}
	return cmd, nil
}

func run(ctx context.Context, cmd *command) error {
	level := slog.LevelInfo
	if cmd.Verbose {
		level = slog.LevelDebug
	}
	spritefont.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	conv, err := spritefont.NewConverter(cmd.Options)
	if err != nil {
		return err
	}

	input := cmd.Args.Input
	s, err := conv.LoadSheet(input)
	if err != nil {
		return err
	}
	glyphs, report, err := conv.Trace(ctx, s)
	if err != nil {
		var dim *spritefont.DimensionError
		if errors.As(err, &dim) {
			return fmt.Errorf("%w (set --glyph-width and --glyph-height)", err)
		}
		return err
	}
	data, err := conv.Encode(glyphs, spritefont.Stem(input))
	if err != nil {
		return err
	}

	output := cmd.Output
	if output == "" {
		output = filepath.Join(filepath.Dir(input), spritefont.Stem(input)+".ttf")
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	spritefont.Logger().Info("wrote font", "path", output, "glyphs", report.Glyphs, "forced", report.Stats.Forced)

	if cmd.Verify {
		if err := spritefont.Verify(data, glyphs); err != nil {
			return err
		}
		spritefont.Logger().Info("font verified")
	}
	if cmd.Preview != "" {
		if err := writePreview(cmd.Preview, glyphs, cmd.Zoom); err != nil {
			return err
		}
		spritefont.Logger().Info("wrote preview", "path", cmd.Preview)
	}
	return nil
}

func writePreview(path string, glyphs []spritefont.Glyph, zoom int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return spritefont.WritePreview(f, glyphs, zoom)
}
