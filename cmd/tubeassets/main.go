// tubeassets is a CLI utility for creating and inspecting the tube scene's
// texture assets.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/tubescene/internal/engine/heightfield"
	"github.com/Faultbox/tubescene/internal/engine/texture"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tubeassets - tube scene asset utility

Usage:
  tubeassets <command> [options]

Commands:
  generate [-out dir] [-w N] [-h N]   Write height.tiff, normal.png and stickers.png
  info <file>                         Show image size and height range

Examples:
  tubeassets generate -out assets
  tubeassets info assets/height.tiff`)
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	out := fs.String("out", "assets", "Output directory")
	width := fs.Int("w", 512, "Texture width")
	height := fs.Int("h", 256, "Texture height")
	strength := fs.Float64("strength", 8, "Normal map slope scale")
	fs.Parse(args)

	if *width < 2 || *height < 2 {
		fmt.Fprintln(os.Stderr, "Error: textures must be at least 2x2")
		os.Exit(1)
	}
	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	field := Ridges(*width, *height)
	files := []struct {
		name  string
		write func(path string) error
	}{
		{"height.tiff", func(p string) error { return WriteHeightTIFF(p, field) }},
		{"normal.png", func(p string) error { return WritePNG(p, NormalMap(field, float32(*strength))) }},
		{"stickers.png", func(p string) error { return WritePNG(p, Stickers(*width, *height)) }},
	}

	for _, f := range files {
		path := filepath.Join(*out, f.name)
		if err := f.write(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: tubeassets info <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	img, err := texture.Decode(data, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	field, err := heightfield.FromImage(img)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lo, hi := field.Range()

	fmt.Printf("File:   %s\n", args[0])
	fmt.Printf("Type:   %T\n", img)
	fmt.Printf("Size:   %dx%d\n", field.Width, field.Height)
	fmt.Printf("Aspect: %.4f (height/width)\n", float64(field.Height)/float64(field.Width))
	fmt.Printf("Height: %.4f .. %.4f\n", lo, hi)
}
