// Command ppm2jpeg encodes PPM images (and PNG, GIF, JPEG or QOI) as
// baseline JPEG files. It can also dump one quantized luma block, list the
// segments of the written file, write a preview of the color transform and
// split an image into its Y, Cb and Cr channels.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"

	"github.com/cocosip/go-jpeg-baseline/jpeg/baseline"
	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
	"github.com/cocosip/go-jpeg-baseline/jpeg/standard"
	"github.com/cocosip/go-jpeg-baseline/raster"
	"github.com/cocosip/go-jpeg-baseline/raster/ppm"
)

type config struct {
	in, out     string
	quality     int
	subsampling string
	gray        bool
	pad         string
	workers     int
	maxW, maxH  uint
	dumpBlock   int
	inspect     bool
	preview     string
	split       string
	verbose     bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.in, "i", "", "Input image file path (.ppm/.pnm, optionally .zst/.gz, or PNG/GIF/JPEG/QOI)")
	flag.StringVar(&cfg.out, "o", "", "Output JPEG file path")
	flag.IntVar(&cfg.quality, "q", 0, "Quality 1-100, 0 uses the Annex K tables unscaled")
	flag.StringVar(&cfg.subsampling, "subsampling", "420", "Chroma subsampling: 420 or 444")
	flag.BoolVar(&cfg.gray, "gray", false, "Encode the luma channel only")
	flag.StringVar(&cfg.pad, "pad", "zeros", "Final byte padding: zeros or ones")
	flag.IntVar(&cfg.workers, "workers", 1, "Goroutines for the DCT and quantization stage")
	flag.UintVar(&cfg.maxW, "max-width", 0, "Downscale to at most this width")
	flag.UintVar(&cfg.maxH, "max-height", 0, "Downscale to at most this height")
	flag.IntVar(&cfg.dumpBlock, "dump-block", -1, "Print the zigzag scan and run-length coding of luma block N")
	flag.BoolVar(&cfg.inspect, "inspect", false, "List the segments of the written file")
	flag.StringVar(&cfg.preview, "preview", "", "Write the color-transformed and subsampled image as PPM")
	flag.StringVar(&cfg.split, "split", "", "Write the Y, Cb and Cr channels as <prefix>_Y.ppm, _Cb.ppm, _Cr.ppm")
	flag.BoolVar(&cfg.verbose, "v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfg.in == "" || cfg.out == "" {
		fmt.Fprintf(os.Stderr, "Input and output file paths must be specified\n")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("ppm2jpeg failed", slog.String("input", cfg.in), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config, logger *slog.Logger) error {
	opts, err := options(cfg, logger)
	if err != nil {
		return err
	}

	img, err := load(cfg.in)
	if err != nil {
		return err
	}
	logger.Debug("input loaded", slog.Int("width", img.Width()), slog.Int("height", img.Height()))

	if cfg.maxW > 0 || cfg.maxH > 0 {
		img = raster.Fit(img, cfg.maxW, cfg.maxH)
		logger.Debug("input resized", slog.Int("width", img.Width()), slog.Int("height", img.Height()))
	}

	if cfg.split != "" {
		if err := split(cfg.split, img); err != nil {
			return err
		}
	}

	session, err := baseline.NewSession(img, opts)
	if err != nil {
		return errors.Wrap(err, "encode")
	}
	session.Compress()

	if cfg.dumpBlock >= 0 {
		dumpBlock(session, cfg.dumpBlock)
	}

	if cfg.preview != "" {
		if err := ppm.Save(cfg.preview, session.Reconstruct(), ppm.FormatP6); err != nil {
			return errors.Wrapf(err, "preview %s", cfg.preview)
		}
	}

	var buf bytes.Buffer
	if _, err := session.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "encode")
	}
	if err := baseline.SaveBytes(cfg.out, buf.Bytes()); err != nil {
		return errors.WithStack(err)
	}
	logger.Info("jpeg written",
		slog.String("output", cfg.out),
		slog.Int("bytes", buf.Len()),
		slog.Int("width", session.Width()),
		slog.Int("height", session.Height()))

	if cfg.inspect {
		return inspect(buf.Bytes())
	}
	return nil
}

func options(cfg config, logger *slog.Logger) (baseline.Options, error) {
	opts := baseline.DefaultOptions()
	opts.Quality = cfg.quality
	opts.Grayscale = cfg.gray
	opts.Workers = cfg.workers
	opts.Logger = logger

	sub, err := baseline.ParseSubsampling(cfg.subsampling)
	if err != nil {
		return opts, errors.Wrap(err, "-subsampling")
	}
	opts.Subsampling = sub

	switch cfg.pad {
	case "zeros":
		opts.Padding = standard.PadZeros
	case "ones":
		opts.Padding = standard.PadOnes
	default:
		return opts, errors.Errorf("-pad %q: want zeros or ones", cfg.pad)
	}

	return opts, errors.Wrap(opts.Validate(), "options")
}

// load reads PPM files through the ppm package and everything else through
// the registered image decoders.
func load(path string) (raster.Image, error) {
	name := strings.ToLower(path)
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".zst"), ".gz")
	switch filepath.Ext(name) {
	case ".ppm", ".pnm":
		img, err := ppm.Open(path)
		if err != nil {
			return nil, err
		}
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	var img image.Image
	if filepath.Ext(name) == ".qoi" {
		img, err = qoi.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return raster.FromImage(img), nil
}

func dumpBlock(s *baseline.Session, idx int) {
	zz := s.ZigzagBlock(baseline.ComponentY, idx)
	fmt.Printf("Zig-Zag scan of Y block %d:\n", idx)
	for _, v := range zz {
		fmt.Printf("%d ", v)
	}
	fmt.Println()

	fmt.Println("RLE output:")
	for _, e := range s.RunLength(baseline.ComponentY, idx) {
		fmt.Printf("(%d,%d) ", e.Run, e.Value)
	}
	fmt.Println()
}

func inspect(data []byte) error {
	segments, err := standard.ReadSegments(data)
	if err != nil {
		return errors.Wrap(err, "inspect")
	}
	for _, seg := range segments {
		switch {
		case seg.Marker == common.MarkerSOS:
			fmt.Printf("%6d  %-4s len=%d entropy=%d\n", seg.Offset, seg.Name(), len(seg.Data)+2, seg.EntropyLength)
		case common.HasLength(seg.Marker):
			fmt.Printf("%6d  %-4s len=%d\n", seg.Offset, seg.Name(), len(seg.Data)+2)
		default:
			fmt.Printf("%6d  %s\n", seg.Offset, seg.Name())
		}
	}
	return nil
}

func split(prefix string, img raster.Image) error {
	y, cb, cr := baseline.SplitChannels(img)
	for suffix, ch := range map[string]*raster.RGB{"_Y": y, "_Cb": cb, "_Cr": cr} {
		if err := ppm.Save(prefix+suffix+".ppm", ch, ppm.FormatP6); err != nil {
			return errors.Wrapf(err, "split %s", suffix)
		}
	}
	return nil
}
