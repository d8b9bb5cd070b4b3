package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"wrt/application"
	"wrt/config"
	"wrt/files"
)

var errUsage = errors.New("usage error")

type options struct {
	target    files.Target
	width     int
	configDir string
	logPath   string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	flags := flag.NewFlagSet("wrt", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.IntVar(&opts.width, "width", 0, "line width, 0 uses the config value")
	flags.StringVar(&opts.configDir, "config", config.DefaultDir(), "config directory")
	flags.StringVar(&opts.logPath, "log", "", "log file (default <config dir>/wrt.log)")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: wrt [flags] [file]")
		fmt.Fprintln(stderr, "Without a file the text is printed to the console on exit.")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return opts, errUsage
	}
	switch flags.NArg() {
	case 0:
		opts.target = files.Console()
	case 1:
		opts.target = files.Persisted(flags.Arg(0))
	default:
		flags.Usage()
		return opts, errUsage
	}
	if opts.width < 0 {
		opts.width = 1
	}
	if opts.logPath == "" {
		opts.logPath = filepath.Join(opts.configDir, "wrt.log")
	}
	return opts, nil
}

func NewLogger(path string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, err
	}
	return log.New(file, "", log.LstdFlags|log.Lshortfile), file, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return 2
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(stderr, "wrt: stdin is not a terminal")
		return 2
	}

	logger, closer, err := NewLogger(opts.logPath)
	if err != nil {
		fmt.Fprintf(stderr, "wrt: opening log: %v\n", err)
		return 1
	}
	defer closer.Close()

	cfg := config.NewConfig(logger, opts.configDir)
	if err := cfg.Init(); err != nil {
		fmt.Fprintf(stderr, "wrt: %v\n", err)
		return 1
	}
	logger.Printf("Starting session on %v", opts.target)

	app := application.New(application.Options{
		Target: opts.target,
		Config: cfg,
		Width:  opts.width,
		Log:    logger,
	})
	text, err := app.Run()
	if err != nil {
		logger.Printf("%+v", err)
		fmt.Fprintf(stderr, "wrt: %v\n", err)
		return 1
	}
	if opts.target.IsConsole() {
		fmt.Fprintln(stdout, text)
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
