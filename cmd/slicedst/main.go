// Command slicedst inspects header slice layouts and demonstrates the
// construction paths of the headerslice package.
package main

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/slicedst/alloc"
	"github.com/wippyai/slicedst/headerslice"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: slicedst layout [--header u32] [--elem u64] [-n 0,1,3] [-i]")
	fmt.Fprintln(os.Stderr, "       slicedst demo [--chunk-size 64KB] [--capacity 1MB] [--metrics]")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "layout":
		err = layoutCmd(os.Args[2:])
	case "demo":
		err = demoCmd(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func layoutCmd(args []string) error {
	fs := pflag.NewFlagSet("layout", pflag.ExitOnError)
	var (
		headerName  = fs.String("header", "u32", "header shape: a WIT type ("+shapeNames()+", list<T>, option<T>, tuple<...>, record{...}) or [N]shape")
		elemName    = fs.String("elem", "u64", "element shape")
		lengths     = fs.StringP("lengths", "n", "0,1,2,3", "element counts, comma separated; ranges like 0-8 allowed")
		interactive = fs.BoolP("interactive", "i", false, "interactive explorer")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	header, err := parseShape(*headerName)
	if err != nil {
		return err
	}
	elem, err := parseShape(*elemName)
	if err != nil {
		return err
	}
	ns, err := parseLengths(*lengths)
	if err != nil {
		return err
	}

	if *interactive {
		return runInteractive(header, elem, ns[len(ns)-1])
	}

	r := renderer{color: term.IsTerminal(int(os.Stdout.Fd()))}
	writeTable(os.Stdout, r, header, elem, computeRows(header, elem, ns))
	return nil
}

func demoCmd(args []string) error {
	fs := pflag.NewFlagSet("demo", pflag.ExitOnError)
	var (
		chunk    = alloc.DefaultChunkSize
		capacity = 1 * datasize.MB
		level    = zap.NewAtomicLevelAt(zap.WarnLevel)
	)
	fs.TextVar(&chunk, "chunk-size", alloc.DefaultChunkSize, "arena chunk size")
	fs.TextVar(&capacity, "capacity", 1*datasize.MB, "arena capacity")
	fs.TextVar(&level, "log-level", zap.NewAtomicLevelAt(zap.WarnLevel), "log level")
	metrics := fs.Bool("metrics", false, "print allocator metrics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = level
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()
	headerslice.SetLogger(logger.Named("headerslice"))
	alloc.SetLogger(logger.Named("alloc"))

	r := renderer{color: term.IsTerminal(int(os.Stdout.Fd()))}
	return runDemo(os.Stdout, r, demoConfig{
		arena:   alloc.ArenaConfig{ChunkSize: chunk, Capacity: capacity},
		metrics: *metrics,
	})
}
