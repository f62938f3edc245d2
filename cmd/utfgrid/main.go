// utfgrid - UTFGrid tile tool
//
// Usage:
//
//	utfgrid compact [file]                      Re-encode a tile, dropping unreferenced features
//	utfgrid inspect [file]                      Print grid size and feature counts
//	utfgrid blank <width> <height>              Print a tile with no features
//	utfgrid snapshot [--codec=msgpack|json] [file]  Write a binary snapshot of a decoded tile
//	utfgrid version                             Print version info
//
// If no file is given, or the file is "-", reads from stdin.
// Set UTFGRID_DEBUG=1 to log codec diagnostics to stderr.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/fblackburn/mapcache"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	if err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fatal("%v", err)
	}
}

func run(cmd string, args []string, stdin io.Reader, stdout io.Writer) error {
	switch cmd {
	case "compact":
		return cmdCompact(newCodec(mapcache.Config{}), args, stdin, stdout)
	case "inspect":
		return cmdInspect(newCodec(mapcache.Config{}), args, stdin, stdout)
	case "blank":
		return cmdBlank(newCodec(mapcache.Config{}), args, stdout)
	case "snapshot":
		return cmdSnapshot(args, stdin, stdout)
	case "version":
		_, err := fmt.Fprintf(stdout, "utfgrid %s\n", mapcache.Version())
		return err
	case "help", "-h", "--help":
		printUsage()
		return nil
	}
	return fmt.Errorf("unknown command: %s", cmd)
}

func newCodec(cfg mapcache.Config) *mapcache.Codec {
	if os.Getenv("UTFGRID_DEBUG") != "" {
		cfg.Logger = mapcache.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return mapcache.New(cfg)
}

func cmdCompact(c *mapcache.Codec, args []string, stdin io.Reader, stdout io.Writer) error {
	g, table, err := readTile(c, fileArg(args), stdin)
	if err != nil {
		return err
	}
	out, err := c.Marshal(g, table)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}

func cmdInspect(c *mapcache.Codec, args []string, stdin io.Reader, stdout io.Writer) error {
	g, table, err := readTile(c, fileArg(args), stdin)
	if err != nil {
		return err
	}
	referenced := make(map[int]bool)
	blank := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			switch idx := g.Feature(x, y); {
			case idx == 0:
				blank++
			case idx > 0:
				referenced[idx] = true
			}
		}
	}
	_, err = fmt.Fprintf(stdout, "size:       %dx%d\nfeatures:   %d\nreferenced: %d\nblank:      %d\n",
		g.Width, g.Height, len(table), len(referenced), blank)
	return err
}

func cmdBlank(c *mapcache.Codec, args []string, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("blank: want <width> <height>")
	}
	w, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("blank: width: %w", err)
	}
	h, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("blank: height: %w", err)
	}
	out, err := mapcache.NewUTFGridFormat("utfgrid").CreateEmpty(c, w, h)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", out)
	return err
}

func cmdSnapshot(args []string, stdin io.Reader, stdout io.Writer) error {
	codecName := "msgpack"
	var rest []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "--codec=") {
			codecName = strings.TrimPrefix(arg, "--codec=")
			continue
		}
		rest = append(rest, arg)
	}
	sc, err := mapcache.SnapshotCodecByName(codecName)
	if err != nil {
		return err
	}
	c := newCodec(mapcache.Config{SnapshotCodec: sc})
	g, table, err := readTile(c, fileArg(rest), stdin)
	if err != nil {
		return err
	}
	b, err := c.MarshalSnapshot(g, table)
	if err != nil {
		return err
	}
	_, err = stdout.Write(b)
	return err
}

func readTile(c *mapcache.Codec, path string, stdin io.Reader) (*mapcache.Grid, mapcache.FeatureTable, error) {
	var input io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		input = f
	}
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}
	g, table, err := c.Unmarshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}
	return g, table, nil
}

func fileArg(args []string) string {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			return arg
		}
	}
	return ""
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `utfgrid - UTFGrid tile tool

Usage:
  utfgrid compact [file]                          Re-encode a tile, dropping unreferenced features
  utfgrid inspect [file]                          Print grid size and feature counts
  utfgrid blank <width> <height>                  Print a tile with no features
  utfgrid snapshot [--codec=msgpack|json] [file]  Write a binary snapshot of a decoded tile
  utfgrid version                                 Print version info

If no file is given, or the file is "-", reads from stdin.`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "utfgrid: "+format+"\n", args...)
	os.Exit(1)
}
