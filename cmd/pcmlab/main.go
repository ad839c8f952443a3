// SPDX-License-Identifier: EPL-2.0

// Command pcmlab converts an MP3 to a lower sampling rate and bit depth and
// writes the result as WAV.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/pcmlab"
	"github.com/ik5/pcmlab/audio"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <input.{mp3|wav}> <output.wav>\n", filepath.Base(os.Args[0]))
	flag.PrintDefaults()
}

func main() {
	rate := flag.Int("rate", 8000, "target sampling rate in Hz")
	bits := flag.Int("bits", 8, "target quantization bit depth")
	normalize := flag.String("normalize", "fixed", "normalization: fixed or peak")
	method := flag.String("method", "fft", "resampling method: fft or cubic")
	verbose := flag.Bool("v", false, "log every stage")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(logger, flag.Arg(0), flag.Arg(1), *rate, *bits, *normalize, *method); err != nil {
		logger.Error("pcmlab failed", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(logger *zap.Logger, inPath, outPath string, rate, bits int, normalize, method string) error {
	mode, err := audio.ParseNormalizeMode(normalize)
	if err != nil {
		return err
	}
	resample, err := audio.ParseResampleMethod(method)
	if err != nil {
		return err
	}

	format := strings.TrimPrefix(filepath.Ext(inPath), ".")

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	p := pcmlab.NewPipeline(
		pcmlab.WithLogger(logger),
		pcmlab.WithNormalization(mode),
		pcmlab.WithResampleMethod(resample),
	)

	res, err := p.Process(data, format, pcmlab.Params{SampleRate: rate, BitDepth: bits})
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, res.WAV, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Original SR: %d Hz -> Target SR: %d Hz | Quantization: %d-bit\n",
		res.OriginalSampleRate, rate, bits)
	fmt.Printf("Duration: %s, %d channel(s) folded to mono\n", res.OriginalDuration, res.OriginalChannels)
	fmt.Printf("Estimated size: %d bytes -> %d bytes\n", res.OriginalEstimatedSize, res.EstimatedSize)
	if res.Fallback {
		fmt.Printf("Stored as %d-bit PCM, WAV has no %d-bit container\n", res.ContainerBitDepth, bits)
	}
	fmt.Println("Wrote:", outPath)

	return nil
}
