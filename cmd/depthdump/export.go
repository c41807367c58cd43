package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"depth-precision/dump"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/tiff"
)

type exportArgs struct {
	commonArgs
	png   bool
	gamma float64
}

func createExportCommand() *command {
	args := exportArgs{
		gamma: 1.0,
	}

	flags := flag.NewFlagSet("export", flag.ExitOnError)

	registerCommonFlags(flags, &args.commonArgs)

	flags.BoolVar(&args.png, "png", args.png, "also write an 8 bit png preview")
	flags.Float64Var(&args.gamma, "gamma", args.gamma, "gamma applied to the png preview")

	cmd := &command{
		Name:  "export",
		Help:  "write linearized depth as 16 bit tiff",
		Usage: "meta-glob...",
		Flags: flags,
	}
	cmd.Run = func(globs []string) {
		if args.gamma <= 0 {
			commandUsage(cmd)
		}
		setCommonArgs(&args.commonArgs)
		runExport(args, gatherInputFiles(globs))
	}
	return cmd
}

func runExport(args exportArgs, inputFiles []string) {
	var bar *progressbar.ProgressBar
	if !cargs.quiet {
		bar = progressbar.Default(int64(len(inputFiles)), "exporting")
		defer bar.Close()
	}

	success := 0
	start := time.Now()
	for _, p := range inputFiles {
		err := exportFile(args, p)
		if err != nil {
			softerr(fmt.Errorf("%v: %w", filepath.ToSlash(filepath.Clean(p)), err))
		} else {
			success++
		}
		if bar != nil {
			bar.Add(1)
		}
	}
	if !cargs.quiet {
		took := float32(time.Since(start).Milliseconds()) / 1000
		fmt.Printf("Exported %d/%d files in %.3f seconds\n", success, len(inputFiles), took)
	}
}

func exportFile(args exportArgs, p string) error {
	meta, err := dump.ReadMeta(p)
	if err != nil {
		return err
	}
	mode, err := meta.Mode()
	if err != nil {
		return err
	}
	stored, err := dump.ReadDepth(p, meta)
	if err != nil {
		return err
	}

	lin := linearize(stored, mode, meta.Near, meta.Far)
	base := filepath.Join(cargs.out, strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)))

	err = writeFile(base+"_linear.tiff", func(f *os.File) error {
		return tiff.Encode(f, lin.ToGray16(0, 0, 1), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	})
	if err != nil {
		return err
	}

	if args.png {
		var img image.Image = lin.ToGray(0, 0, 1, float32(args.gamma))
		err = writeFile(base+"_linear.png", func(f *os.File) error {
			return png.Encode(f, img)
		})
	}
	return err
}

func writeFile(path string, encode func(f *os.File) error) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := encode(f); err != nil {
		return fmt.Errorf("%v: %w", path, err)
	}
	return nil
}
