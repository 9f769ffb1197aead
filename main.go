// Command studioshot turns a product photo (or a pre-cut RGBA cutout)
// into a finished catalog image: refined edges, centered layout, soft
// grounding shadow, solid background.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"

	"github.com/lumapix/studioshot/images"
	"github.com/lumapix/studioshot/inference"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "input image (PNG or JPEG)")
		outputPath = flag.String("output", "out.png", "output PNG path")
		bgColor    = flag.String("bg", "FFFFFF", "background color, 6 hex digits")
		padding    = flag.Float64("padding", 0.1, "margin fraction per side, [0, 0.5)")
		shadow     = flag.Bool("shadow", true, "synthesize the grounding shadow")
		width      = flag.Int("width", 1200, "output width in pixels")
		height     = flag.Int("height", 1200, "output height in pixels")
		modelPath  = flag.String("model", "", "BiRefNet ONNX model; empty expects an RGBA cutout as input")
		ortLib     = flag.String("ort-lib", "", "ONNX Runtime shared library path")
	)
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inputPath, *outputPath, *modelPath, *ortLib, images.Options{
		BackgroundColor: *bgColor,
		Padding:         *padding,
		Shadow:          *shadow,
		OutputSize:      image.Pt(*width, *height),
		EdgeStrength:    images.StrengthLight,
		ShadowOptions:   images.DefaultShadowOptions(),
	}); err != nil {
		log.Fatalf("studioshot: %v", err)
	}
}

func run(inputPath, outputPath, modelPath, ortLib string, opts images.Options) error {
	fg, err := loadRaster(inputPath)
	if err != nil {
		return err
	}

	if modelPath != "" {
		session, err := inference.NewSession(inference.Config{
			ModelPath:   modelPath,
			LibraryPath: ortLib,
		})
		if err != nil {
			return fmt.Errorf("open segmentation session: %w", err)
		}
		defer session.Close()

		log.Printf("segmenting %s (%dx%d)", inputPath, fg.Width, fg.Height)
		fg, err = session.Segment(context.Background(), fg)
		if err != nil {
			return fmt.Errorf("segment: %w", err)
		}
	}

	result, err := images.Process(fg, opts)
	if err != nil {
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := png.Encode(out, result.ToNRGBA()); err != nil {
		return fmt.Errorf("encode %s: %w", outputPath, err)
	}

	log.Printf("wrote %s (%dx%d)", outputPath, result.Width, result.Height)
	return nil
}

// loadRaster decodes a PNG or JPEG file into a straight-alpha raster.
func loadRaster(path string) (*images.Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return images.FromImage(img)
}
