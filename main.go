package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/bencview/internal/encoder"
	"github.com/mcncl/bencview/internal/errors"
	"github.com/mcncl/bencview/internal/formatter"
	"github.com/mcncl/bencview/internal/models"
	"github.com/mcncl/bencview/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input bencode file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Raw         bool   `help:"Emit the canonical bencode re-encoding instead of the tree view." short:"r"`
	Strict      bool   `help:"Treat trailing bytes after the first value as an error." short:"s"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct bencode input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Strict bool
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	cliParser := kong.Must(&CLI,
		kong.Name("bencview"),
		kong.Description("A tool to inspect bencoded data"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := cliParser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("bencview version %s\n", Version)
		return
	}

	err = run(&Context{Strict: CLI.Strict})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: bencview --help\n")

		os.Exit(1)
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Parse one bencode value from the input
	value, remaining, err := parseInput()
	if err != nil {
		// Error is already wrapped by parseInput
		return err
	}

	// 2. Apply the trailing-bytes policy. The parser itself never judges
	// trailing bytes; that decision belongs to the caller.
	if len(remaining) > 0 {
		if ctx.Strict {
			return errors.NewInputError(
				fmt.Sprintf("%d trailing bytes after the first value", len(remaining)), nil)
		}
		fmt.Fprintf(os.Stderr, "Warning: %d trailing bytes after the first value were not parsed\n", len(remaining))
	}

	// 3. Render the tree
	var out string
	if CLI.Raw {
		out = string(encoder.Marshal(value))
	} else {
		formatterInst := formatter.NewFormatter()
		out = formatterInst.Format(value)
	}

	// 4. Output the result
	return writeOutput(out)
}

// parseInput reads bencode from file or stdin
func parseInput() (models.Value, []byte, error) {
	if CLI.Input != "" {
		// Parse from file
		return parser.ParseFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Value{}, nil, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			// Interactive mode
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return models.Value{}, nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	return parser.ParseReader(os.Stdin)
}

// writeOutput writes the rendered tree to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(out), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Output written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(strings.TrimRight(out, "\n"))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste
// bencode and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (models.Value, []byte, error) {
	fmt.Fprintln(os.Stderr, "Bencview Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your bencode below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var sb strings.Builder

	for {
		line, err := reader.ReadString('\n')
		sb.WriteString(line)
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return models.Value{}, nil, errors.NewInputError("error reading input", err)
		}
	}

	data := sb.String()
	if len(data) == 0 {
		return models.Value{}, nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing bencode...")
	return parser.ParseString(strings.TrimSuffix(data, "\n"))
}
