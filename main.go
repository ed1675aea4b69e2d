package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-csg-pathtracer/pkg/core"
	"github.com/df07/go-csg-pathtracer/pkg/imageio"
	"github.com/df07/go-csg-pathtracer/pkg/integrator"
	"github.com/df07/go-csg-pathtracer/pkg/renderer"
	"github.com/df07/go-csg-pathtracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType   string
	Width       int
	Height      int
	NumWorkers  int
	BatchSize   int
	Supersample int
	MaxBounces  int
	Format      string
	Output      string
	Help        bool
}

func main() {
	fs := flag.NewFlagSet("pathtracer", flag.ExitOnError)
	config := registerFlags(fs)
	fs.Parse(os.Args[1:])

	if config.Help {
		showHelp(fs)
		return
	}

	if err := run(config, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// registerFlags defines the command line flags on fs
func registerFlags(fs *flag.FlagSet) *Config {
	config := &Config{}
	defaults := renderer.DefaultRenderConfig()

	fs.StringVar(&config.SceneType, "scene", "default", "Scene type: "+strings.Join(sceneIDs(), ", "))
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&config.NumWorkers, "workers", defaults.NumWorkers, "Number of parallel workers (0 = auto-detect CPU count)")
	fs.IntVar(&config.BatchSize, "batch", defaults.BatchSize, "Pixels a worker takes from the queue at once")
	fs.IntVar(&config.Supersample, "supersample", defaults.Supersample, "Render at this multiple of the output size, then downsample")
	fs.IntVar(&config.MaxBounces, "bounces", integrator.DefaultConfig().MaxBounces, "Maximum recursion depth")
	fs.StringVar(&config.Format, "format", "png", "Output format: "+strings.Join(imageio.Formats, ", "))
	fs.StringVar(&config.Output, "o", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	return config
}

func showHelp(fs *flag.FlagSet) {
	fmt.Println("CSG Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
}

func sceneIDs() []string {
	var ids []string
	for _, info := range scene.ListScenes() {
		ids = append(ids, info.ID)
	}
	return ids
}

// run renders the configured scene and saves it
func run(config *Config, logger core.Logger) error {
	s, err := createScene(config.SceneType)
	if err != nil {
		return err
	}

	outputPath, err := resolveOutputPath(config, time.Now())
	if err != nil {
		return err
	}
	if err := createOutputDir(filepath.Dir(outputPath)); err != nil {
		return err
	}

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.MaxBounces = config.MaxBounces
	rt := renderer.NewRaytracer(s, integrator.NewPathTracingIntegrator(integratorConfig), nil, renderConfig(config, s), logger)

	img, stats, err := rt.Render()
	if err != nil {
		return err
	}
	logger.Printf("Traced %d pixels in %d batches on %d workers (average luminance %.3f)\n",
		stats.TracedPixels, stats.Batches, stats.NumWorkers, stats.AverageLuminance)

	if err := imageio.Save(outputPath, img); err != nil {
		return fmt.Errorf("saving render: %w", err)
	}
	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

// createScene builds a scene by name
func createScene(sceneType string) (*scene.Scene, error) {
	s, err := scene.Create(sceneType)
	if err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	return s, nil
}

// renderConfig merges the command line options over the scene's defaults
func renderConfig(config *Config, s *scene.Scene) renderer.RenderConfig {
	rc := renderer.DefaultRenderConfig()
	rc.Width = s.Width
	rc.Height = s.Height
	if config.Width > 0 {
		rc.Width = config.Width
	}
	if config.Height > 0 {
		rc.Height = config.Height
	}
	rc.NumWorkers = config.NumWorkers
	rc.BatchSize = config.BatchSize
	rc.Supersample = config.Supersample
	return rc
}

// resolveOutputPath returns the explicit output file, or a timestamped file
// under output/<scene>/ in the requested format
func resolveOutputPath(config *Config, now time.Time) (string, error) {
	if config.Output != "" {
		if _, err := imageio.FormatFromPath(config.Output); err != nil {
			return "", err
		}
		return config.Output, nil
	}

	ext := strings.ToLower(config.Format)
	path := filepath.Join("output", strings.ToLower(config.SceneType),
		fmt.Sprintf("render_%s.%s", now.Format("20060102_150405"), ext))
	if _, err := imageio.FormatFromPath(path); err != nil {
		return "", err
	}
	return path, nil
}

// createOutputDir creates the directory a render is written to
func createOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	return nil
}
