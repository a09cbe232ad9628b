// berctl - TLV codec CLI
//
// Usage:
//
//	berctl encode [file]           JSON notation -> BER (hex or raw)
//	berctl decode [file]           BER -> JSON notation
//	berctl inspect [file]          element dump of a BER buffer
//	berctl pack [file]             JSON notation stream -> framed messages
//	berctl unpack [file]           framed messages -> JSON lines
//	berctl sample                  print the reference tree
//	berctl config init|show|validate
//
// If no file is given, or the file is "-", input is read from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/bertlv/internal/config"
	"github.com/danmuck/bertlv/internal/logging"
)

const version = "berctl 0.1.0"

type encodeCmd struct {
	Input  string `arg:"positional" help:"JSON notation input (default stdin)"`
	Output string `arg:"-o,--output" help:"output file (default stdout)"`
	Format string `arg:"-f,--format" help:"hex or raw (default from config)"`
}

type decodeCmd struct {
	Input         string `arg:"positional" help:"encoded input (default stdin)"`
	Format        string `arg:"-f,--format" help:"input format: hex or raw (default from config)"`
	AllowTrailing bool   `arg:"--allow-trailing" help:"report bytes after the first value instead of failing"`
}

type inspectCmd struct {
	Input  string `arg:"positional" help:"encoded input (default stdin)"`
	Format string `arg:"-f,--format" help:"input format: hex or raw (default from config)"`
}

type packCmd struct {
	Input       string `arg:"positional" help:"JSON notation stream (default stdin)"`
	Output      string `arg:"-o,--output" help:"output file (default stdout)"`
	Compression string `arg:"-z,--compression" help:"none, gzip, lz4, snappy or zstd (default from config)"`
	FirstID     uint64 `arg:"--id" default:"1" help:"message id of the first frame"`
}

type unpackCmd struct {
	Input string `arg:"positional" help:"framed input (default stdin)"`
}

type sampleCmd struct {
	Encoded bool `arg:"-e,--encoded" help:"print the hex encoding instead of JSON"`
}

type configInitCmd struct {
	Output string `arg:"positional" default:"berctl.toml" help:"path to write"`
	Force  bool   `arg:"--force" help:"overwrite an existing file"`
}

type configShowCmd struct{}

type configValidateCmd struct {
	Input string `arg:"positional,required" help:"config file to validate"`
}

type configCmd struct {
	Init     *configInitCmd     `arg:"subcommand:init" help:"write a commented config template"`
	Show     *configShowCmd     `arg:"subcommand:show" help:"print the effective config"`
	Validate *configValidateCmd `arg:"subcommand:validate" help:"load and validate a config file"`
}

type cliArgs struct {
	Config   string `arg:"-c,--config,env:BERCTL_CONFIG" help:"TOML config file"`
	LogLevel string `arg:"--log-level" help:"trace, debug, info, warn, error or off"`
	Metrics  bool   `arg:"--metrics" help:"print codec metrics to stderr on exit"`

	Encode  *encodeCmd  `arg:"subcommand:encode" help:"encode JSON notation to BER"`
	Decode  *decodeCmd  `arg:"subcommand:decode" help:"decode BER to JSON notation"`
	Inspect *inspectCmd `arg:"subcommand:inspect" help:"dump BER element headers"`
	Pack    *packCmd    `arg:"subcommand:pack" help:"frame a stream of values"`
	Unpack  *unpackCmd  `arg:"subcommand:unpack" help:"read framed values"`
	Sample  *sampleCmd  `arg:"subcommand:sample" help:"print the reference tree"`
	Cfg     *configCmd  `arg:"subcommand:config" help:"manage the config file"`
}

func (cliArgs) Description() string {
	return "berctl encodes and decodes BER-style TLV values.\n"
}

func (cliArgs) Version() string {
	return version
}

// env carries the process streams so commands can run against buffers.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    config.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var args cliArgs
	p, err := arg.NewParser(arg.Config{Program: "berctl", Out: stdout}, &args)
	if err != nil {
		fmt.Fprintf(stderr, "berctl: %v\n", err)
		return 2
	}
	switch err := p.Parse(argv); {
	case errors.Is(err, arg.ErrHelp):
		_ = p.WriteHelpForSubcommand(stdout, p.SubcommandNames()...)
		return 0
	case errors.Is(err, arg.ErrVersion):
		fmt.Fprintln(stdout, version)
		return 0
	case err != nil:
		p.WriteUsage(stderr)
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	if p.Subcommand() == nil {
		p.WriteUsage(stderr)
		return 2
	}

	cfg, err := config.LoadOrDefault(args.Config)
	if err != nil {
		fmt.Fprintf(stderr, "berctl: %v\n", err)
		return 1
	}
	level := cfg.Log.Level
	if args.LogLevel != "" {
		level = args.LogLevel
	}
	logging.Configure(logging.ProfileRuntime, level)

	e := &env{stdin: stdin, stdout: stdout, stderr: stderr, cfg: cfg}
	err = dispatch(e, &args)
	if args.Metrics {
		if merr := writeMetrics(stderr); merr != nil {
			log.Warn().Err(merr).Msg("berctl.metrics")
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "berctl: %v\n", err)
		return 1
	}
	return 0
}

func dispatch(e *env, args *cliArgs) error {
	switch {
	case args.Encode != nil:
		return cmdEncode(e, args.Encode)
	case args.Decode != nil:
		return cmdDecode(e, args.Decode)
	case args.Inspect != nil:
		return cmdInspect(e, args.Inspect)
	case args.Pack != nil:
		return cmdPack(e, args.Pack)
	case args.Unpack != nil:
		return cmdUnpack(e, args.Unpack)
	case args.Sample != nil:
		return cmdSample(e, args.Sample)
	case args.Cfg != nil:
		return cmdConfig(e, args.Cfg)
	default:
		return errors.New("no command")
	}
}
