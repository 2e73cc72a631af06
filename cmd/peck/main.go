// Command peck inspects raw HTTP-style messages from the command line.
//
//	peck inspect request.bin --field host:text:required --field content-length:int
//	peck headers request.bin
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/corvidlabs/peck"
)

var rootCmd = &cobra.Command{
	Use:   "peck",
	Short: "peck - typed header-block inspection",
	Long: `peck parses the header block of an HTTP-style message from a file
and prints the extracted fields. Field descriptors are given as
name:kind[:cardinality] with kinds text, string, bytes, int, uint,
float, bool, tokens and cardinalities required, optional,
required-multi, multi (default optional).`,
}

var (
	fieldSpecs []string
	strict     bool
	duplicates string
	showBody   bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Parse a message against a field registry and dump the record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		reg, err := buildRegistry(fieldSpecs, strict, duplicates)
		if err != nil {
			return err
		}

		rec, body, err := peck.Parse(raw, reg)
		if err != nil {
			var perr *peck.ParseError
			if errors.As(err, &perr) && perr.Offset >= 0 {
				return fmt.Errorf("%w (byte %d of %s)", err, perr.Offset, args[0])
			}
			return err
		}

		// Detach so the dump shows owned values rather than views into
		// the file buffer.
		snap := rec.Detach()
		for _, f := range snap.Fields {
			fmt.Printf("%s:\n", f.Name)
			for _, v := range f.Values {
				fmt.Printf("  %s", spew.Sdump(payload(v)))
			}
		}
		fmt.Printf("body: %d bytes at offset %d\n", len(body), rec.BodyOffset())
		if showBody {
			os.Stdout.Write(body)
		}
		return nil
	},
}

var headersCmd = &cobra.Command{
	Use:   "headers FILE",
	Short: "List every raw header in the message head",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		headers, body, err := peck.ParseLoose(raw)
		if err != nil {
			return err
		}
		for _, h := range headers {
			fmt.Printf("%s: %s\n", h.Name, h.Value)
		}
		fmt.Printf("(%d headers, %d body bytes)\n", len(headers), len(body))
		return nil
	},
}

func buildRegistry(specs []string, strict bool, duplicates string) (*peck.Registry, error) {
	b := peck.NewRegistry().Strict(strict)

	switch duplicates {
	case "", "last":
		b.Duplicates(peck.DuplicateLastWins)
	case "first":
		b.Duplicates(peck.DuplicateFirstWins)
	case "reject":
		b.Duplicates(peck.DuplicateReject)
	default:
		return nil, fmt.Errorf("unknown duplicate policy %q (want last, first, or reject)", duplicates)
	}

	for _, spec := range specs {
		parts := strings.SplitN(spec, ":", 3)
		if len(parts) < 2 {
			return nil, fmt.Errorf("field spec %q: want name:kind[:cardinality]", spec)
		}
		name := parts[0]

		card := peck.Optional
		if len(parts) == 3 {
			switch parts[2] {
			case "required":
				card = peck.Required
			case "optional":
				card = peck.Optional
			case "required-multi":
				card = peck.RequiredMulti
			case "multi":
				card = peck.OptionalMulti
			default:
				return nil, fmt.Errorf("field spec %q: unknown cardinality %q", spec, parts[2])
			}
		}

		switch parts[1] {
		case "text":
			b.Text(name, card)
		case "string":
			b.String(name, card)
		case "bytes":
			b.Bytes(name, card)
		case "int":
			b.Int(name, card)
		case "uint":
			b.Uint(name, card)
		case "float":
			b.Float(name, card)
		case "bool":
			b.Bool(name, card)
		case "tokens":
			b.TokenList(name, card)
		default:
			return nil, fmt.Errorf("field spec %q: unknown kind %q", spec, parts[1])
		}
	}
	return b.Build()
}

// payload unwraps the meaningful member of a detached value for dumping.
func payload(v peck.DetachedValue) any {
	switch v.Kind {
	case peck.KindText, peck.KindString:
		return v.Str
	case peck.KindBytes:
		return v.Bytes
	case peck.KindInt:
		return v.Int
	case peck.KindUint:
		return v.Uint
	case peck.KindFloat:
		return v.Float
	case peck.KindBool:
		return v.Bool
	}
	return v
}

func main() {
	inspectCmd.Flags().StringArrayVar(&fieldSpecs, "field", nil, "field descriptor name:kind[:cardinality] (repeatable)")
	inspectCmd.Flags().BoolVar(&strict, "strict", false, "validate header names and values against RFC 7230")
	inspectCmd.Flags().StringVar(&duplicates, "duplicates", "last", "duplicate policy for single fields: last, first, reject")
	inspectCmd.Flags().BoolVar(&showBody, "body", false, "write the message body to stdout")
	rootCmd.AddCommand(inspectCmd, headersCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
