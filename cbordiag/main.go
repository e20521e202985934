package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	cbor "github.com/gridkv/cbor.go/runtime"
)

// CLI defines the cbordiag command-line interface.
//
// Input comes from exactly one of:
//   - --hex: an inline hex string (whitespace ignored)
//   - --file: a path holding raw encoded bytes, or "-" for stdin
//
// By default the first item is rendered in diagnostic notation. With
// --all the whole input is treated as a sequence of items, one line
// each. --check suppresses output and only reports well-formedness.
type CLI struct {
	Hex   string `short:"x" help:"Inline hex-encoded input (whitespace ignored)"`
	File  string `short:"f" help:"File holding raw encoded bytes ('-' for stdin)"`
	All   bool   `short:"a" help:"Render every item in the input, not just the first"`
	Check bool   `short:"c" help:"Validate only; print nothing on success"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cbordiag"),
		kong.Description("Render encoded items in RFC 8949 diagnostic notation."),
	)

	if err := run(&cli); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

func run(cli *CLI) error {
	data, err := readInput(cli)
	if err != nil {
		return err
	}

	if cli.Check {
		if cli.All {
			return cbor.ValidDocument(data)
		}
		_, err := cbor.Valid(data)
		return err
	}

	for {
		s, n, err := cbor.Diag(data)
		if err != nil {
			return err
		}
		fmt.Println(s)
		data = data[n:]
		if !cli.All || len(data) == 0 {
			return nil
		}
	}
}

func readInput(cli *CLI) ([]byte, error) {
	switch {
	case cli.Hex != "" && cli.File != "":
		return nil, errors.New("--hex and --file are mutually exclusive")

	case cli.Hex != "":
		clean := strings.Map(func(r rune) rune {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				return -1
			}
			return r
		}, cli.Hex)
		data, err := hex.DecodeString(clean)
		if err != nil {
			return nil, fmt.Errorf("decode hex input: %w", err)
		}
		return data, nil

	case cli.File == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil

	case cli.File != "":
		data, err := os.ReadFile(cli.File)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", cli.File, err)
		}
		return data, nil

	default:
		return nil, errors.New("one of --hex or --file is required")
	}
}
