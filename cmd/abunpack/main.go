// Command abunpack rewrites a UnityFS asset bundle with its payload stored
// uncompressed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ametori/unityfs"
)

func main() {
	game := flag.String("game", "std", "game variant: std or arknights")
	workers := flag.Int("workers", 1, "number of blocks to decompress concurrently")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-game std|arknights] [-workers n] <input.ab> [output.ab]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*game, *workers, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(game string, workers int, args []string) error {
	var variant unityfs.Variant
	switch game {
	case "std":
		variant = unityfs.VariantStandard
	case "arknights":
		variant = unityfs.VariantArknights
	default:
		return fmt.Errorf("unknown game mode %q", game)
	}

	if len(args) < 1 {
		return errors.New("missing input file")
	}
	input := args[0]
	output := defaultOutputPath(input)
	if len(args) > 1 {
		output = args[1]
	}

	if input == output {
		// Converting in place: write a temp file and swap it in afterwards.
		tmp := output + ".tmp"
		if err := convertFile(input, tmp, variant, workers); err != nil {
			os.Remove(tmp)
			return err
		}
		return os.Rename(tmp, output)
	}
	return convertFile(input, output, variant, workers)
}

// defaultOutputPath derives <stem>_unpacked<ext> next to the input file.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(filepath.Base(input), ext)
	return filepath.Join(filepath.Dir(input), stem+"_unpacked"+ext)
}

func convertFile(input, output string, variant unityfs.Variant, workers int) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}

	progress := func(ev unityfs.ProgressEvent) {
		switch ev.Stage {
		case unityfs.StageDecompressing:
			fmt.Printf("\rBlock %d/%d (%d -> %d)",
				ev.BlocksDone, ev.BlocksTotal, ev.BlockCompressed, ev.BlockUncompressed)
		case unityfs.StageRebuilding:
			fmt.Println("\nBlocks decompressed. Rebuilding header...")
		}
	}

	err = unityfs.Convert(data, out,
		unityfs.WithVariant(variant),
		unityfs.WithWorkers(workers),
		unityfs.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
		unityfs.WithProgress(progress),
	)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Printf("Success. Output written to %s\n", output)
	return nil
}
