package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	// imaging registers BMP and TIFF; add WebP input.
	_ "golang.org/x/image/webp"

	"github.com/ericlevine/docwarp"
	"github.com/ericlevine/docwarp/geom"
)

func main() {
	quadFlag := flag.String("quad", "", `document corners as "x,y x,y x,y x,y", in any order`)
	scale := flag.Float64("scale", 1, "resize the image by this factor before rectifying; -quad refers to the resized image")
	gray := flag.Bool("gray", false, "write a grayscale image")
	workers := flag.Int("workers", 0, "resampling goroutines (0 = GOMAXPROCS)")
	output := flag.String("o", "", `output file (default "<image>_warped.<ext>")`)
	verbose := flag.Bool("v", false, "log each rectification stage")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docwarp -quad \"x,y x,y x,y x,y\" [flags] <image-file>\n\n")
		fmt.Fprintf(os.Stderr, "Rectify the document bounded by -quad into an upright image.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 || *quadFlag == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	quad, err := parseQuad(*quadFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: -quad: %v\n", err)
		os.Exit(1)
	}

	path := flag.Arg(0)
	out := *output
	if out == "" {
		ext := filepath.Ext(path)
		out = strings.TrimSuffix(path, ext) + "_warped" + ext
	}
	if err := run(path, out, quad, *scale, *gray, *workers); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v\n", path, err)
		os.Exit(1)
	}
}

func run(path, out string, quad geom.Quadrilateral, scale float64, gray bool, workers int) error {
	log := logrus.WithField("file", path)

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	if scale <= 0 {
		return fmt.Errorf("invalid scale %g", scale)
	}
	if scale != 1 {
		w := int(float64(img.Bounds().Dx())*scale + 0.5)
		img = imaging.Resize(img, w, 0, imaging.Linear)
		log.WithField("size", img.Bounds().Size()).Debug("Resized image")
	}

	res, err := docwarp.Rectify(img, quad, &docwarp.Options{
		Workers: workers,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	var warped image.Image = res.Image
	if gray {
		warped = imaging.Grayscale(warped)
	}
	if err := imaging.Save(warped, out); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	log.WithFields(logrus.Fields{"output": out, "size": res.Size}).Info("Rectified document")
	return nil
}
