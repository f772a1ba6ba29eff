package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"stereo-gl/libio"
)

var args = struct {
	split  bool
	outDir string
}{
	split:  false,
	outDir: "",
}

func printGeneralUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [arguments] <capture.scf>...\n\n", exe)
	fmt.Fprintf(os.Stderr, "The arguments are:\n\n")
	flag.CommandLine.SetOutput(os.Stderr)
	flag.PrintDefaults()
	os.Exit(1)
}

func main() {
	flag.BoolVar(&args.split, "split", args.split, "write one png per eye for side by side captures")
	flag.StringVar(&args.outDir, "out", args.outDir, "output directory, defaults to the directory of each capture")

	flag.Parse()

	if flag.NArg() == 0 {
		printGeneralUsage()
	}

	for _, input := range flag.Args() {
		outputs, err := convert(input, args.outDir, args.split)
		harderr(err)
		for _, out := range outputs {
			fmt.Println(out)
		}
	}
}

// convert decodes one capture and writes its png files, returning their paths.
func convert(input, outDir string, split bool) ([]string, error) {
	file, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	frame, err := libio.DecodeFrame(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", input, err)
	}

	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	base := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)))

	if !split || frame.Layout != libio.FrameLayoutSideBySide {
		out := base + ".png"
		return []string{out}, savePng(frame, out)
	}

	var outputs []string
	for eye, suffix := range []string{"_left", "_right"} {
		out := base + suffix + ".png"
		half, err := frame.Half(eye)
		if err != nil {
			return outputs, fmt.Errorf("%v: %w", input, err)
		}
		if err := savePng(half, out); err != nil {
			return outputs, err
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func savePng(frame *libio.Frame, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(file, frame.ToRGBA()); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}

func harderr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
