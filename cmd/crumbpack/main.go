package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/crumbpack"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

const defaultDB = "crumbpack.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func warnPrefix() string {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return "\033[33mwarning:\033[0m "
	}
	return "warning: "
}

func newCompiler(c *cli.Context) (*crumbpack.Compiler, func(), error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	warn := log.New(colorable.NewColorableStderr(), warnPrefix(), 0)

	if c.Bool("no-cache") {
		return crumbpack.New(nil, logger, warn), func() {}, nil
	}

	db, err := crumbpack.NewAssetDB(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	return crumbpack.New(db, logger, warn), func() { db.Close() }, nil
}

func build(c *cli.Context, m *crumbpack.Manifest) error {
	compiler, done, err := newCompiler(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer done()

	if err := compiler.Build(context.Background(), m); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "crumbpack"
	app.Usage = "Compile fonts and images into packed e-paper display headers"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CRUMBPACK_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to asset cache",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "do not read or write the asset cache",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	outputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "output",
			Usage: "output directory, defaults to the input's directory",
		},
		&cli.BoolFlag{
			Name:  "bin",
			Usage: "also write the raw packed data",
		},
		&cli.BoolFlag{
			Name:  "types",
			Usage: "also write font.h and image.h",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "font",
			Usage:       "Compile a bitmap font",
			Description: "Rasterizes each code point in the given ranges, e.g. 0-9,A-Z,À-ÿ",
			ArgsUsage:   "FONT",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Usage:    "name for the generated bitmap font",
					Required: true,
				},
				&cli.Float64Flag{
					Name:  "size",
					Usage: "size in pixels of the compiled font",
				},
				&cli.StringFlag{
					Name:     "ranges",
					Usage:    "Unicode character ranges to include",
					Required: true,
				},
				&cli.UintFlag{
					Name:  "fg",
					Value: 0,
					Usage: "foreground color, 0-255",
				},
				&cli.UintFlag{
					Name:  "bg",
					Value: 255,
					Usage: "background color, 0-255",
				},
			}, outputFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}
				if c.Uint("fg") > 255 || c.Uint("bg") > 255 {
					return cli.Exit("colors must be between 0 and 255", 1)
				}

				file := c.Args().First()
				fg, bg := uint8(c.Uint("fg")), uint8(c.Uint("bg"))
				m := &crumbpack.Manifest{
					Output: c.String("output"),
					Binary: c.Bool("bin"),
					Types:  c.Bool("types"),
					Fonts: []crumbpack.FontAsset{
						{
							Path:       file,
							Name:       c.String("name"),
							Size:       c.Float64("size"),
							Ranges:     c.String("ranges"),
							Foreground: &fg,
							Background: &bg,
						},
					},
				}
				if m.Output == "" {
					m.Output = filepath.Dir(file)
				}

				return build(c, m)
			},
		},
		{
			Name:      "image",
			Usage:     "Compile an image",
			ArgsUsage: "IMAGE",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Usage: "resize to this width",
				},
				&cli.IntFlag{
					Name:  "height",
					Usage: "resize to this height",
				},
				&cli.IntFlag{
					Name:  "levels",
					Usage: "reduce to this many gray levels first",
				},
			}, outputFlags...),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				file := c.Args().First()
				m := &crumbpack.Manifest{
					Output: c.String("output"),
					Binary: c.Bool("bin"),
					Types:  c.Bool("types"),
					Images: []crumbpack.ImageAsset{
						{
							Path:   file,
							Width:  c.Int("width"),
							Height: c.Int("height"),
							Levels: c.Int("levels"),
						},
					},
				}
				if m.Output == "" {
					m.Output = filepath.Dir(file)
				}

				return build(c, m)
			},
		},
		{
			Name:      "build",
			Usage:     "Compile every asset listed in a manifest",
			ArgsUsage: "MANIFEST",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := crumbpack.LoadManifest(c.Args().First())
				if err != nil {
					return cli.Exit(err, 1)
				}

				return build(c, m)
			},
		},
		{
			Name:  "cache",
			Usage: "List or purge the asset cache",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "purge",
					Usage: "remove every cached asset",
				},
			},
			Action: func(c *cli.Context) error {
				db, err := crumbpack.NewAssetDB(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if c.Bool("purge") {
					n, err := db.Purge()
					if err != nil {
						return cli.Exit(err, 1)
					}
					fmt.Printf("Removed %d assets\n", n)
					return nil
				}

				assets, err := db.ListAssets()
				if err != nil {
					return cli.Exit(err, 1)
				}
				for _, a := range assets {
					fmt.Printf("%-6s %-32s %8d\n", a.Kind, a.Name, a.Bytes)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
