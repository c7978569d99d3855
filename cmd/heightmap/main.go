package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fieldworks/heightmap/internal/archive"
	"github.com/fieldworks/heightmap/internal/config"
	"github.com/fieldworks/heightmap/internal/heightfield"
	"github.com/fieldworks/heightmap/internal/logger"
	"github.com/fieldworks/heightmap/internal/noise"
	"github.com/fieldworks/heightmap/internal/render"
)

func main() {
	configFile := flag.String("config", "data/heightmap.yaml", "Path to config YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	width := flag.Int("width", 0, "Grid width in cells (0 = config preset)")
	height := flag.Int("height", 0, "Grid height in cells (0 = config preset)")
	minHeight := flag.Float64("min", 0, "Lower bound of the output height range")
	maxHeight := flag.Float64("max", 0, "Upper bound of the output height range (0 with -min 0 = config preset)")
	octaves := flag.Int("octaves", -1, "Refinement octaves beyond the base octave (-1 = config preset)")
	seed := flag.Uint64("seed", 0, "Generation seed (0 = random based on current time)")
	noiseName := flag.String("noise", "", "Noise backend: simplex or perlin (empty = config preset)")
	format := flag.String("format", "text", "Output format: text, png, relief, or datauri")
	output := flag.String("output", "", "Output file (empty for stdout)")
	save := flag.Bool("save", false, "Save the generated map to the archive")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config preset.
	preset := cfg.Generator
	if *width != 0 {
		preset.Width = *width
	}
	if *height != 0 {
		preset.Height = *height
	}
	if *minHeight != 0 || *maxHeight != 0 {
		preset.MinHeight = *minHeight
		preset.MaxHeight = *maxHeight
	}
	if *octaves >= 0 {
		preset.Octaves = *octaves
	}
	if *noiseName != "" {
		preset.Noise = *noiseName
	}

	field, err := heightfield.New(preset.Width, preset.Height, preset.MinHeight, preset.MaxHeight, preset.Octaves)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	field.SetEvaluator(noise.New(preset.Noise))

	mapSeed := *seed
	if mapSeed == 0 {
		mapSeed = uint64(time.Now().UnixNano())
		logger.Info("Map seed selected", "seed", mapSeed, "random", true)
	} else {
		logger.Info("Map seed selected", "seed", mapSeed, "random", false)
	}

	field.GenerateSeeded(mapSeed)
	logger.Info("Map generated",
		"width", preset.Width, "height", preset.Height,
		"octaves", preset.Octaves, "noise", preset.Noise)

	data, err := renderOutput(field, *format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering map: %v\n", err)
		os.Exit(1)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *output)
	} else {
		os.Stdout.Write(data)
	}

	if *save {
		if err := saveToArchive(cfg, field, preset.Noise, mapSeed); err != nil {
			fmt.Fprintf(os.Stderr, "Error archiving map: %v\n", err)
			os.Exit(1)
		}
	}
}

func renderOutput(field *heightfield.Field, format string) ([]byte, error) {
	switch format {
	case "text":
		return []byte(render.Text(field) + "\n"), nil
	case "png":
		return render.PNG(field)
	case "relief":
		return render.ReliefPNG(field)
	case "datauri":
		uri, err := render.DataURI(field)
		if err != nil {
			return nil, err
		}
		return []byte(uri + "\n"), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func saveToArchive(cfg *config.Config, field *heightfield.Field, backend string, seed uint64) error {
	pngData, err := render.PNG(field)
	if err != nil {
		return err
	}

	store, err := archive.Open(archive.DialectType(cfg.Archive.Dialect), cfg.Archive.DSN)
	if err != nil {
		return err
	}
	defer store.Close()

	rec := archive.NewRecord(field, backend, seed, pngData)
	if err := store.Save(rec); err != nil {
		if errors.Is(err, archive.ErrDuplicate) {
			logger.Warning("Identical map already archived", "fingerprint", rec.Fingerprint)
			return nil
		}
		return err
	}

	logger.Info("Map archived", "id", rec.ID, "fingerprint", rec.Fingerprint)
	fmt.Printf("Archived as %s\n", rec.ID)
	return nil
}
