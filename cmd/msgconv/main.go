package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/reoring/msgconv"
	"github.com/reoring/msgconv/config"
	"github.com/reoring/msgconv/dictionary"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	logger := initLogger("msgconv")
	var err error
	switch os.Args[1] {
	case "convert":
		err = convertCmd(os.Args[2:], os.Stdout, logger, false)
	case "roundtrip":
		err = convertCmd(os.Args[2:], os.Stdout, logger, true)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error().Err(err).Msg(os.Args[1] + " failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "msgconv CLI\n\nUsage:\n  msgconv convert -type T [-dict dict.yaml] [-config msgconv.toml] [-yaml] [file]\n  msgconv roundtrip -type T [-dict dict.yaml] [-config msgconv.toml] [-yaml] [file]\n\nNotes:\n  - The body is read from file, or stdin when omitted.\n  - convert prints the typed message; roundtrip prints the flattened body as JSON.")
}

type cmdFlags struct {
	typeName   string
	dictPath   string
	configPath string
	yamlInput  bool
	schemaless bool
}

func convertCmd(args []string, out io.Writer, logger zerolog.Logger, roundtrip bool) error {
	name := "convert"
	if roundtrip {
		name = "roundtrip"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var f cmdFlags
	fs.StringVar(&f.typeName, "type", "", "message type name")
	fs.StringVar(&f.dictPath, "dict", "", "YAML dictionary (overrides the config file)")
	fs.StringVar(&f.configPath, "config", "", "TOML parameter file")
	fs.BoolVar(&f.yamlInput, "yaml", false, "read the body as YAML instead of JSON")
	fs.BoolVar(&f.schemaless, "schemaless", false, "ignore the dictionary and convert by body shape")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if f.typeName == "" {
		fs.Usage()
		return fmt.Errorf("-type is required")
	}

	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return err
		}
	}
	if f.dictPath != "" {
		cfg.Dictionary = f.dictPath
	}

	opts := append(cfg.Options(), msgconv.WithLogger(logger))
	useSchema := false
	if cfg.Dictionary != "" && !f.schemaless {
		reg, err := dictionary.Load(cfg.Dictionary)
		if err != nil {
			return err
		}
		opts = append(opts, msgconv.WithRegistry(reg))
		useSchema = true
	}

	data, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}
	decodeOpt := msgconv.DecodeOpt{MaxDepth: cfg.ToTyped.MaxDepth}
	var body msgconv.Node
	if f.yamlInput {
		body, err = msgconv.DecodeYAML(data, decodeOpt)
	} else {
		body, err = msgconv.DecodeJSON(data, decodeOpt)
	}
	if err != nil {
		return err
	}

	c := msgconv.NewConverter(opts...)
	m, err := c.ToTyped(f.typeName, body, useSchema)
	if err != nil {
		return err
	}
	logger.Debug().Str("type", m.Name).Str("namespace", m.Namespace).Int("fields", m.Len()).Msg("converted")
	if !roundtrip {
		_, err = fmt.Fprintln(out, m.String())
		return err
	}
	b, err := msgconv.EncodeJSON(msgconv.TypedToUntyped(m, cfg.FromTyped))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
