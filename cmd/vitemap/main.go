// Command vitemap is a thin front-end over the vitemap codec: read a file,
// compress or decompress it, write the result. Kept deliberately small so
// the interesting logic stays in the library.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/AlSchlo/ViteMap"
)

func main() {
	app := cli.NewApp()
	app.Name = "vitemap"
	app.Usage = "compress or decompress a file with the vitemap bitmap codec"
	app.UsageText = "vitemap c|d input output"
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vitemap:", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	args := ctx.Args()
	if len(args) != 3 {
		return cli.NewExitError("usage: vitemap c|d input output", 1)
	}
	mode, inPath, outPath := args[0], args[1], args[2]

	data, err := os.ReadFile(inPath)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("reading %s: %v", inPath, err), 1)
	}

	var out []byte
	switch mode {
	case "c":
		out, err = compress(data)
	case "d":
		out, err = decompress(data)
	default:
		return cli.NewExitError(fmt.Sprintf("unknown mode %q, want c or d", mode), 1)
	}
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return cli.NewExitError(fmt.Sprintf("writing %s: %v", outPath, err), 1)
	}
	return nil
}

func compress(data []byte) ([]byte, error) {
	c, err := vitemap.NewContext(len(data))
	if err != nil {
		return nil, fmt.Errorf("creating context: %w", err)
	}
	defer c.Close()

	copy(c.Input(), data)
	n, err := c.Compress(len(data))
	if err != nil {
		return nil, fmt.Errorf("compressing: %w", err)
	}

	out := make([]byte, n)
	copy(out, c.Output())
	return out, nil
}

func decompress(data []byte) ([]byte, error) {
	_, bufferSize, err := vitemap.PeekDecodedSize(data)
	if err != nil {
		return nil, fmt.Errorf("reading frame header: %w", err)
	}

	out := make([]byte, bufferSize)
	if err := vitemap.Decompress(data, out); err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return out, nil
}
