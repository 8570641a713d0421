// Package main provides the CLI entry point for nimsforestgallery.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	smarttv "github.com/nimsforest/nimsforestsmarttv"

	gallery "github.com/nimsforest/nimsforestgallery"
	"github.com/nimsforest/nimsforestgallery/datasets"
	"github.com/nimsforest/nimsforestgallery/window"
)

var (
	manifestPath string
	dataDir      string
	logLevel     string

	outputPath string
	format     string
	frames     int
	timeout    time.Duration

	addr     string
	serveFPS int
	selectID string

	video         bool
	videoFPS      int
	videoDuration time.Duration
	discoverWait  time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nimsforestgallery",
		Short: "Interactive gallery of data visualisations",
		Long: `nimsforestgallery draws a menu of charts over tabular datasets and
shows them in a browser, a desktop window, on a Smart TV, or as files.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", "", "YAML manifest describing the visuals (default: built-in gallery)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Directory holding the datasets (default: bundled samples)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the visuals in the gallery",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	renderCmd := &cobra.Command{
		Use:   "render <visual-id>",
		Short: "Render one visual to an SVG, PNG or JPEG file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Output file path (default: <visual-id>.<format>)")
	renderCmd.Flags().StringVar(&format, "format", "", "Output format: svg, png, jpeg (default: from --out, else svg)")
	renderCmd.Flags().IntVar(&frames, "frames", 500, "Maximum frames to run an animated visual before capturing it")
	renderCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "How long to wait for datasets to load")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the gallery over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	serveCmd.Flags().IntVar(&serveFPS, "fps", 30, "Frames per second")
	serveCmd.Flags().StringVar(&selectID, "select", "", "Visual to show first (default: first in the menu)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "Show the gallery in a desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().StringVar(&selectID, "select", "", "Visual to show first (default: first in the menu)")

	tvCmd := &cobra.Command{
		Use:   "tv [visual-id]",
		Short: "Show a visual on the first Smart TV found on the network",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTV,
	}
	tvCmd.Flags().BoolVar(&video, "video", false, "Stream the animation as video instead of a still image")
	tvCmd.Flags().DurationVar(&videoDuration, "duration", 30*time.Second, "Video length")
	tvCmd.Flags().IntVar(&videoFPS, "fps", 10, "Video frames per second")
	tvCmd.Flags().IntVar(&frames, "frames", 500, "Maximum frames to run an animated visual before capturing it")
	tvCmd.Flags().DurationVar(&discoverWait, "discover", 5*time.Second, "How long to search for TVs")
	tvCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "How long to wait for datasets to load")

	rootCmd.AddCommand(listCmd, renderCmd, serveCmd, windowCmd, tvCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", logLevel)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

func loadManifest() (*gallery.Manifest, error) {
	if manifestPath == "" {
		return gallery.DefaultManifest(), nil
	}
	return gallery.LoadManifestFile(manifestPath)
}

func dataFS() fs.FS {
	if dataDir == "" {
		return datasets.FS()
	}
	return os.DirFS(dataDir)
}

// buildGallery wires the manifest, datasets and logger together. Visuals
// that fail to build are logged and left out.
func buildGallery() (*gallery.Gallery, *slog.Logger, error) {
	log, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(log)

	m, err := loadManifest()
	if err != nil {
		return nil, nil, err
	}
	loader := gallery.NewLoader(dataFS(), gallery.WithLoaderLogger(log))
	g, err := m.Build(gallery.WithLoader(loader), gallery.WithLogger(log))
	if err != nil {
		log.Warn("some visuals were skipped", "err", err)
	}
	if g.Len() == 0 {
		return nil, nil, fmt.Errorf("manifest has no usable visuals")
	}
	return g, log, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func firstID(g *gallery.Gallery) string {
	if selectID != "" {
		return selectID
	}
	return g.Visuals()[0].ID()
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tDATASET")
	for _, v := range m.Visuals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.ID, v.Name, v.Kind, v.Dataset)
	}
	return tw.Flush()
}

func runRender(cmd *cobra.Command, args []string) error {
	id := args[0]
	g, log, err := buildGallery()
	if err != nil {
		return err
	}
	defer g.Close()

	f, err := resolveFormat(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	frame, err := gallery.RenderVisual(ctx, g, id, frames)
	if err != nil {
		return err
	}

	data, err := gallery.EncodeFrame(frame, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info("rendered visual", "id", id, "path", outputPath, "frames", frame.Seq)
	return nil
}

// resolveFormat settles --format and --out against each other.
func resolveFormat(id string) (gallery.Format, error) {
	switch {
	case format != "":
		f, err := gallery.ParseFormat(format)
		if err != nil {
			return "", err
		}
		if outputPath == "" {
			outputPath = id + "." + string(f)
		}
		return f, nil
	case outputPath != "":
		return gallery.FormatForPath(outputPath)
	}
	outputPath = id + ".svg"
	return gallery.FormatSVG, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	g, log, err := buildGallery()
	if err != nil {
		return err
	}
	if serveFPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", serveFPS)
	}
	if !g.Select(firstID(g)) {
		return fmt.Errorf("no visual %q", selectID)
	}

	ctx, cancel := signalContext()
	defer cancel()

	v := gallery.NewViewer(
		gallery.WithInterval(time.Second/time.Duration(serveFPS)),
		gallery.WithViewerLogger(log),
	)
	v.SetFrameSource(gallery.NewGallerySource(g))

	web, err := gallery.NewWebTarget(addr, gallery.WithDispatcher(v), gallery.WithWebLogger(log))
	if err != nil {
		return err
	}
	v.AddTarget(web)

	if err := v.Start(ctx); err != nil {
		return err
	}
	log.Info("serving gallery", "url", web.URL())

	<-ctx.Done()
	log.Info("shutting down")
	err = v.Close()
	g.Close()
	return err
}

func runWindow(cmd *cobra.Command, args []string) error {
	g, log, err := buildGallery()
	if err != nil {
		return err
	}
	defer g.Close()
	if !g.Select(firstID(g)) {
		return fmt.Errorf("no visual %q", selectID)
	}

	ctx, cancel := signalContext()
	defer cancel()

	w := window.New(gallery.NewGallerySource(g), window.WithLogger(log))
	return w.Run(ctx)
}

func runTV(cmd *cobra.Command, args []string) error {
	g, log, err := buildGallery()
	if err != nil {
		return err
	}
	defer g.Close()
	if len(args) == 1 {
		selectID = args[0]
	}
	id := firstID(g)

	ctx, cancel := signalContext()
	defer cancel()

	log.Info("discovering Smart TVs", "wait", discoverWait)
	tvs, err := smarttv.Discover(ctx, discoverWait)
	if err != nil {
		return fmt.Errorf("discover TVs: %w", err)
	}
	if len(tvs) == 0 {
		return fmt.Errorf("no TVs found on the network")
	}
	tv := &tvs[0]
	log.Info("found TV", "tv", tv.String())

	if video {
		return streamVideo(ctx, g, id, tv, log)
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, timeout)
	defer cancelLoad()
	frame, err := gallery.RenderVisual(loadCtx, g, id, frames)
	if err != nil {
		return err
	}

	target, err := gallery.NewSmartTVTarget(tv)
	if err != nil {
		return err
	}
	defer target.Close()
	if err := target.Update(ctx, frame); err != nil {
		return err
	}
	log.Info("image displayed", "id", id, "tv", target.Name())

	<-ctx.Done()
	return stopTV(target.Stop)
}

func streamVideo(ctx context.Context, g *gallery.Gallery, id string, tv *smarttv.TV, log *slog.Logger) error {
	loadCtx, cancelLoad := context.WithTimeout(ctx, timeout)
	defer cancelLoad()
	if err := g.Loader().Wait(loadCtx); err != nil {
		log.Warn("some datasets failed to load", "err", err)
	}
	if !g.Select(id) {
		return fmt.Errorf("no visual %q", id)
	}

	target, err := gallery.NewVideoTarget(tv,
		gallery.WithVideoFPS(videoFPS),
		gallery.WithVideoDuration(videoDuration),
		gallery.WithVideoLogger(log),
	)
	if err != nil {
		return err
	}
	defer target.Close()
	target.SetFrameSource(gallery.NewGallerySource(g))

	log.Info("recording video", "id", id, "duration", videoDuration, "fps", videoFPS)
	if err := target.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return stopTV(target.Stop)
}

func stopTV(stop func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := stop(ctx); err != nil {
		return fmt.Errorf("stop playback: %w", err)
	}
	return nil
}
