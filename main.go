package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene  string
	width  int
	height int
	depth  int
	format string
	out    string
	help   bool
}

func parseFlags(args []string, output io.Writer) (options, *flag.FlagSet, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name, a name under scenes/, or a .json scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum reflection/refraction depth (0 = scene default)")
	fs.StringVar(&opts.format, "format", "png", "Output format: 'png' or 'ppm'")
	fs.StringVar(&opts.out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	opts.format = strings.ToLower(opts.format)
	if opts.format != "png" && opts.format != "ppm" {
		return opts, fs, fmt.Errorf("unknown format %q, want png or ppm", opts.format)
	}
	if opts.width < 0 || opts.height < 0 || opts.depth < 0 {
		return opts, fs, fmt.Errorf("width, height and depth must not be negative")
	}
	return opts, fs, nil
}

func printHelp(fs *flag.FlagSet) {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, name := range scene.ListBuiltins() {
		fmt.Printf("  %-9s - %s\n", name, scene.BuiltinDescription(name))
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

// createScene resolves a scene name: built-ins first, then scenes/<name>.json,
// then the argument as a path
func createScene(sceneType string, width, height int) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	logger := renderer.NewDefaultLogger()

	if s, err := scene.NewBuiltin(sceneType, width, height); err == nil {
		return s, nil
	}
	if filepath.Ext(sceneType) == "" {
		candidate := filepath.Join("scenes", sceneType+".json")
		if _, err := os.Stat(candidate); err == nil {
			return scene.Load(candidate, width, height, logger)
		}
		return nil, fmt.Errorf("unknown scene %q (built-in: %s)", sceneType, strings.Join(scene.ListBuiltins(), ", "))
	}
	return scene.Load(sceneType, width, height, logger)
}

// outputName turns a scene argument into a directory-safe name
func outputName(sceneType string) string {
	return strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
}

func outputPath(sceneType, format string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", outputName(sceneType), fmt.Sprintf("render_%s.%s", timestamp, format))
}

func writeImage(canvas *renderer.Canvas, filename, format string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if format == "ppm" {
		err = canvas.WritePPM(file)
	} else {
		err = canvas.WritePNG(file)
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", strings.ToUpper(format), err)
	}
	return file.Close()
}

func run(ctx context.Context, opts options) error {
	fmt.Println("Starting Whitted Raytracer...")

	s, err := createScene(opts.scene, opts.width, opts.height)
	if err != nil {
		return err
	}
	if opts.depth > 0 {
		s.World.MaxDepth = opts.depth
	}
	fmt.Printf("Using %s scene (%d primitives, %dx%d, depth %d)...\n",
		s.Name, s.PrimitiveCount(), s.Camera.HSize, s.Camera.VSize, s.World.MaxDepth)

	raytracer := renderer.NewRaytracer(s.World, s.Camera, renderer.NewDefaultLogger())
	canvas, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Render completed in %v\n", stats.Duration)
	fmt.Printf("Coverage: %.1f%% of %d pixels lit\n", stats.Coverage()*100, stats.TotalPixels)

	filename := opts.out
	if filename == "" {
		filename = outputPath(opts.scene, opts.format, time.Now())
	}
	if err := writeImage(canvas, filename, opts.format); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

func main() {
	opts, fs, err := parseFlags(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printHelp(fs)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
