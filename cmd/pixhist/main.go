// Management Console
package main

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/regorov/pixhist"
	"github.com/rs/zerolog"
	"github.com/urfave/cli"
)

// EnvVarPrefix holds environment variables prefix related to application.
const (
	EnvVarPrefix = "PIXHIST_"
)

var sourceFlags = []cli.Flag{
	cli.IntFlag{
		Name:   "max-side, m",
		Value:  0,
		Usage:  "downsize images whose longer side exceeds this value before analysis (0 keeps original size)",
		EnvVar: EnvVarPrefix + "MAX_SIDE",
	},
	cli.IntFlag{
		Name:   "conns",
		Value:  pixhist.DefaultMaxConnsPerHost,
		Usage:  "maximum parallel http connections per host",
		EnvVar: EnvVarPrefix + "CONNS",
	},
	cli.DurationFlag{
		Name:   "timeout",
		Value:  pixhist.DefaultReadTimeout,
		Usage:  "image download read timeout",
		EnvVar: EnvVarPrefix + "TIMEOUT",
	},
}

var chartFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "channel, c",
		Value:  pixhist.SelectAll,
		Usage:  "channel to draw: all, grayscale, red, green, blue, yellow, cyan, magenta or white",
		EnvVar: EnvVarPrefix + "CHANNEL",
	},
	cli.IntFlag{
		Name:   "width",
		Value:  800,
		Usage:  "chart width in pixels",
		EnvVar: EnvVarPrefix + "WIDTH",
	},
	cli.IntFlag{
		Name:   "height",
		Value:  400,
		Usage:  "chart height in pixels",
		EnvVar: EnvVarPrefix + "HEIGHT",
	},
	cli.StringFlag{
		Name:   "styles, s",
		Usage:  "TOML file overriding channel colors",
		EnvVar: EnvVarPrefix + "STYLES",
	},
	cli.StringFlag{
		Name:   "format, f",
		Usage:  "chart format: png or svg (default: output file extension)",
		EnvVar: EnvVarPrefix + "FORMAT",
	},
	cli.StringFlag{
		Name:   "output, o",
		Value:  "histogram.png",
		Usage:  "output file name",
		EnvVar: EnvVarPrefix + "OUTPUT",
	},
}

func main() {

	app := cli.NewApp()
	app.Name = "pixhist"
	app.Usage = "image channel histograms"
	app.Version = BuildNumber
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug, d",
			Usage:  "debug mode activation",
			EnvVar: EnvVarPrefix + "DEBUG",
		},
		cli.StringFlag{
			Name:   "pl",
			Usage:  "pprof HTTP listener",
			EnvVar: EnvVarPrefix + "PPROF_LISTENER",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "analyze",
			Aliases:   []string{"a"},
			Usage:     "write per-channel frequencies of an image as CSV",
			ArgsUsage: "<file|url>",
			Action:    analyze,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:   "output, o",
					Value:  pixhist.StdoutName,
					Usage:  "output file name, - for stdout",
					EnvVar: EnvVarPrefix + "OUTPUT",
				},
			}, sourceFlags...),
		},
		{
			Name:      "render",
			Aliases:   []string{"r"},
			Usage:     "draw the histogram chart of an image",
			ArgsUsage: "<file|url>",
			Action:    render,
			Flags:     append(append([]cli.Flag{}, chartFlags...), sourceFlags...),
		},
		{
			Name:      "watch",
			Aliases:   []string{"w"},
			Usage:     "redraw the histogram chart every time the image file changes",
			ArgsUsage: "<file>",
			Action:    watch,
			Flags:     append(append([]cli.Flag{}, chartFlags...), sourceFlags...),
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// env holds objects shared by all commands.
type env struct {
	logger zerolog.Logger
	ctx    context.Context
	cancel context.CancelFunc
	loader pixhist.Loader
	dec    *pixhist.Decoder
}

func setup(c *cli.Context) (*env, error) {

	debug := c.GlobalBool("debug")

	// 1. logger format preparation.
	zerolog.TimeFieldFormat = "20060102T150405.999Z07:00"
	zerolog.TimestampFieldName = "t"
	zerolog.MessageFieldName = "msg"
	zerolog.LevelFieldName = "lvl"

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// stdout may carry CSV output.
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	logger.Info().Str("version", BuildNumber).Str("command", c.Command.Name).Msg("application started")

	if c.NArg() != 1 {
		logger.Error().Int("args", c.NArg()).Msg("exactly one image reference expected")
		return nil, errors.New("exactly one image reference expected")
	}

	logger.Info().
		Bool("debug", debug).
		Str("image", c.Args().First()).
		Int("max-side", c.Int("max-side")).
		Str("output", c.String("output")).
		Msg("launching params")

	// 2. runtime profiling activation.
	if c.GlobalIsSet("pl") {
		go func(listen string) {
			logger.Info().Str("pl", listen).Msg("start pprof http listener")
			if err := http.ListenAndServe(listen, nil); err != nil {
				logger.Error().Str("errmsg", err.Error()).Msg("pprof listener starting failed")
			}
		}(c.GlobalString("pl"))
	}

	// 3. SIGINT capture.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		select {
		case <-stop:
			logger.Info().Msg("signal captured")
			cancel()
		case <-ctx.Done():
		}
	}()

	// 4. Create shared objects.
	down := pixhist.NewMediaDownloader(logger)
	down.SetMaxConnsPerHost(c.Int("conns"))
	down.SetReadTimeout(c.Duration("timeout"))

	return &env{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		loader: pixhist.NewRefLoader(logger, down),
		dec:    pixhist.NewDecoder(c.Int("max-side")),
	}, nil
}

func analyze(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.cancel()

	output := pixhist.NewBufferedCSV(pixhist.DefaultBufferLen)
	if err := output.Open(c.String("output")); err != nil {
		e.logger.Error().Str("errmsg", err.Error()).Msg("output file open/create failed")
		return err
	}

	return e.process(pixhist.NewRefInput(c.Args().First()), output)
}

func chartOutput(c *cli.Context, e *env) (*pixhist.ChartRenderer, error) {
	sel, err := pixhist.ParseSelection(c.String("channel"))
	if err != nil {
		e.logger.Error().Str("errmsg", err.Error()).Msg("channel selection rejected")
		return nil, err
	}

	styles := pixhist.DefaultStyles()
	if c.IsSet("styles") {
		if styles, err = pixhist.LoadStyles(c.String("styles")); err != nil {
			e.logger.Error().Str("errmsg", err.Error()).Msg("styles loading failed")
			return nil, err
		}
	}

	surface := pixhist.Surface{Width: float64(c.Int("width")), Height: float64(c.Int("height"))}
	out, err := pixhist.NewChartRenderer(e.logger, c.String("output"), c.String("format"), surface, sel, styles)
	if err != nil {
		e.logger.Error().Str("errmsg", err.Error()).Msg("chart output setup failed")
		return nil, err
	}
	return out, nil
}

func render(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.cancel()

	output, err := chartOutput(c, e)
	if err != nil {
		return err
	}

	return e.process(pixhist.NewRefInput(c.Args().First()), output)
}

func watch(c *cli.Context) error {
	e, err := setup(c)
	if err != nil {
		return err
	}
	defer e.cancel()

	if pixhist.IsURL(c.Args().First()) {
		e.logger.Error().Msg("only local files can be watched")
		return errors.New("only local files can be watched")
	}

	output, err := chartOutput(c, e)
	if err != nil {
		return err
	}

	input := pixhist.NewWatchInput(e.logger)
	if err := input.Start(e.ctx, c.Args().First()); err != nil {
		e.logger.Error().Str("errmsg", err.Error()).Msg("file watch failed")
		return err
	}
	e.logger.Info().Msg("watching, press Ctrl+C to stop")

	return e.process(input, output)
}

// process runs the processor until input is exhausted and closes output.
func (e *env) process(input pixhist.Inputer, output pixhist.Outputer) error {
	session := pixhist.NewSession(e.logger)
	imgproc := pixhist.NewImageProcessor(e.logger, input, e.loader, e.dec, session, output)

	started := time.Now()
	imgproc.Start(e.ctx)

	if err := output.Close(); err != nil {
		e.logger.Error().Str("errmsg", err.Error()).Msg("output flush/close failed")
		return err
	}

	if session.Snapshot().State != pixhist.StateReady {
		e.logger.Error().Msg("no histogram produced")
		return errors.New("no histogram produced")
	}

	e.logger.Info().Str("dur", time.Since(started).String()).Msg("Completed")
	return nil
}
