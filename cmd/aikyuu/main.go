package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/aikyuu/pkg/apix"
	"github.com/Abraxas-365/aikyuu/pkg/config"
	"github.com/Abraxas-365/aikyuu/pkg/logx"
	"github.com/Abraxas-365/aikyuu/pkg/storex"
)

type command func(ctx context.Context, c *Container, args []string) error

var commands = map[string]command{
	"login":     runLogin,
	"logout":    runLogout,
	"signup":    runSignup,
	"verify":    runVerify,
	"forgot":    runForgot,
	"reset":     runReset,
	"positions": runPositions,
	"criteria":  runCriteria,
	"resumes":   runResumes,
	"analyze":   runAnalyze,
	"export":    runExport,
	"billing":   runBilling,
	"profile":   runProfile,
	"password":  runPassword,
	"feedback":  runFeedback,
}

func main() {
	global := flag.NewFlagSet("aikyuu", flag.ExitOnError)
	configPath := global.String("config", os.Getenv("AIKYUU_CONFIG"), "path to a YAML config file")
	verbose := global.Bool("v", false, "debug logging")
	global.Usage = usage
	_ = global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	run, ok := commands[args[0]]
	if !ok {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	if *verbose {
		logx.SetLevel(logx.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := NewContainer(ctx, cfg, &storex.WriterNotifier{W: os.Stderr})
	if err != nil {
		fatalf("init: %v", err)
	}
	defer container.Close()

	if err := run(ctx, container, args[1:]); err != nil {
		container.Close()
		fatalf("%s", apix.Message(err, err.Error()))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: aikyuu [-config file] [-v] <command> [...]

commands:
  login | logout | signup | verify | forgot | reset
  positions <list|get|create|update|delete|duplicate>
  criteria <list|add|delete>
  resumes <list|upload|delete|download>
  analyze <position-id>
  export <position-id> [-format csv|xlsx|json]
  billing <history|buy>
  profile [photo <file>]
  password change
  feedback`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "aikyuu: "+format+"\n", args...)
	os.Exit(1)
}

// subcommand splits args into a verb and the rest, failing with the given usage
func subcommand(args []string, usageLine string) (string, []string, error) {
	if len(args) < 1 {
		return "", nil, fmt.Errorf("usage: aikyuu %s", usageLine)
	}
	return args[0], args[1:], nil
}

// positional parses fs and returns its first positional argument
func positional(fs *flag.FlagSet, args []string, name string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() < 1 {
		return "", fmt.Errorf("usage: aikyuu %s <%s>", fs.Name(), name)
	}
	return fs.Arg(0), nil
}
