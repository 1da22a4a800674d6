package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/helixviz/internal/analysis"
	"github.com/san-kum/helixviz/internal/config"
	"github.com/san-kum/helixviz/internal/export"
	"github.com/san-kum/helixviz/internal/gui"
	"github.com/san-kum/helixviz/internal/helix"
	"github.com/san-kum/helixviz/internal/plotly"
	"github.com/san-kum/helixviz/internal/scene"
	"github.com/san-kum/helixviz/internal/storage"
	"github.com/san-kum/helixviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	thetaMax   float64
	numFrames  int
	stride     int
	// show / render
	noBrowser bool
	// replay
	latest bool
	// export-json
	indent bool
	// svg
	frameIdx int
	yaw      float64
	pitch    float64
	svgW     int
	svgH     int
	braille  bool
	svgOut   string
	// png
	chartW float64
	chartH float64
	// gif
	gifEvery int
	gifCols  int
	gifRows  int
	gifDot   int
	gifOut   string
	// live
	theme      string
	noAutoplay bool
	// plot / analyze
	plotWidth  int
	plotHeight int
	asJSON     bool
)

// main registers the commands and flags, builds and shows the default
// scene when no subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "helixviz",
		Short:        "animated 3D visualization of e^(iθ)",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runShow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&thetaMax, "theta-max", helix.DefaultThetaMax, "largest sampled angle")
	pf.IntVar(&numFrames, "frames", helix.DefaultNumFrames, "number of samples")
	pf.IntVar(&stride, "stride", scene.DefaultSliderStride, "frames between slider steps")

	rootCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "save the page without opening it")

	showCmd := &cobra.Command{
		Use:   "show [render_id]",
		Short: "build, save and open the scene in the browser",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}
	showCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "save the page without opening it")
	showCmd.Flags().BoolVar(&latest, "latest", false, "open the newest saved render")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "build the scene and save it to the data directory",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "write the scene as plotly figure JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&indent, "indent", false, "indent the output")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "write the sampled points as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [render_id]",
		Short: "project one frame to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "-", "output file (- for stdout)")
	svgCmd.Flags().BoolVar(&latest, "latest", false, "draw the newest saved render")
	svgCmd.Flags().IntVar(&frameIdx, "frame", -1, "frame to draw (-1 for the last)")
	svgCmd.Flags().Float64Var(&yaw, "yaw", 0, "camera yaw offset in radians")
	svgCmd.Flags().Float64Var(&pitch, "pitch", 0, "camera pitch offset in radians")
	svgCmd.Flags().IntVar(&svgW, "width", 600, "width in pixels")
	svgCmd.Flags().IntVar(&svgH, "height", 900, "height in pixels")
	svgCmd.Flags().BoolVar(&braille, "braille", false, "render the terminal canvas dots instead")

	pngCmd := &cobra.Command{
		Use:   "png [file]",
		Short: "chart cos θ and sin θ against θ",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportPNG,
	}
	pngCmd.Flags().Float64Var(&chartW, "width", 8, "width in inches")
	pngCmd.Flags().Float64Var(&chartH, "height", 4, "height in inches")

	gifCmd := &cobra.Command{
		Use:   "gif [render_id]",
		Short: "capture the animation as an animated GIF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportGIF,
	}
	gifCmd.Flags().StringVarP(&gifOut, "out", "o", "helix.gif", "output file (- for stdout)")
	gifCmd.Flags().BoolVar(&latest, "latest", false, "capture the newest saved render")
	gifDefaults := viz.DefaultGIFOptions()
	gifCmd.Flags().IntVar(&gifEvery, "every", gifDefaults.Every, "keep every n-th frame")
	gifCmd.Flags().IntVar(&gifCols, "cols", gifDefaults.Cols, "canvas columns")
	gifCmd.Flags().IntVar(&gifRows, "rows", gifDefaults.Rows, "canvas rows")
	gifCmd.Flags().IntVar(&gifDot, "dot", gifDefaults.DotSize, "pixels per dot")

	liveCmd := &cobra.Command{
		Use:   "live [render_id]",
		Short: "play the animation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&latest, "latest", false, "play the newest saved render")
	liveCmd.Flags().StringVar(&theme, "theme", "plotly", "color theme")
	liveCmd.Flags().BoolVar(&noAutoplay, "paused", false, "start paused")

	guiCmd := &cobra.Command{
		Use:   "gui [render_id]",
		Short: "play the animation in a native window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&latest, "latest", false, "play the newest saved render")
	guiCmd.Flags().BoolVar(&noAutoplay, "paused", false, "start paused")

	plotCmd := &cobra.Command{
		Use:   "plot [render_id]",
		Short: "plot the sampled components in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotComponents,
	}
	plotCmd.Flags().BoolVar(&latest, "latest", false, "plot the newest saved render")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [render_id]",
		Short: "check the sampled curve numerically",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeCurve,
	}
	analyzeCmd.Flags().BoolVar(&latest, "latest", false, "analyze the newest saved render")
	analyzeCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved renders",
		Args:  cobra.NoArgs,
		RunE:  listRenders,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [file]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(showCmd, renderCmd, exportJSONCmd, exportCSVCmd, svgCmd, pngCmd, gifCmd, liveCmd, guiCmd, plotCmd, analyzeCmd, listCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig applies defaults, then the preset, then the config file,
// then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		if configFile != "" {
			err = config.LoadInto(configFile, cfg)
		}
	case configFile != "":
		cfg, err = config.Load(configFile)
	default:
		cfg = config.DefaultConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("theta-max") {
		cfg.ThetaMax = thetaMax
	}
	if cmd.Flags().Changed("frames") {
		cfg.NumFrames = numFrames
	}
	if cmd.Flags().Changed("stride") {
		cfg.Animation.SliderStride = stride
	}
	return cfg, nil
}

func sampleCurve(cmd *cobra.Command) (*config.Config, *helix.Curve, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := helix.Sample(cfg.Params())
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}

func buildScene(cmd *cobra.Command) (*helix.Curve, *scene.Scene, error) {
	cfg, c, err := sampleCurve(cmd)
	if err != nil {
		return nil, nil, err
	}
	sc, err := scene.Build(c, cfg.SceneOptions())
	if err != nil {
		return nil, nil, err
	}
	return c, sc, nil
}

// replayID returns the render named on the command line, the newest render
// when --latest is set, or "" when a fresh scene should be built.
func replayID(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !latest {
		return "", nil
	}
	id, err := storage.New(dataDir).Latest()
	if err != nil {
		return "", fmt.Errorf("latest render: %w", err)
	}
	return id, nil
}

func loadScene(cmd *cobra.Command, args []string) (*scene.Scene, error) {
	id, err := replayID(args)
	if err != nil {
		return nil, err
	}
	if id == "" {
		_, sc, err := buildScene(cmd)
		return sc, err
	}
	return storage.New(dataDir).LoadScene(id)
}

func loadCurve(cmd *cobra.Command, args []string) (*helix.Curve, error) {
	id, err := replayID(args)
	if err != nil {
		return nil, err
	}
	if id == "" {
		_, c, err := sampleCurve(cmd)
		return c, err
	}
	return storage.New(dataDir).LoadCurve(id)
}

func saveScene(cmd *cobra.Command) (*storage.Store, string, error) {
	c, sc, err := buildScene(cmd)
	if err != nil {
		return nil, "", err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, "", err
	}
	id, err := st.Save(preset, sc, c, plotly.DefaultPageOptions())
	if err != nil {
		return nil, "", fmt.Errorf("save render: %w", err)
	}

	fmt.Printf("render: %s\n", id)
	fmt.Printf("samples: %d, frames: %d, slider steps: %d\n", c.Len(), len(sc.Frames), len(sc.SliderSteps()))
	return st, id, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	var (
		st  *storage.Store
		id  string
		err error
	)
	if id, err = replayID(args); err != nil {
		return err
	}
	if id != "" {
		st = storage.New(dataDir)
	} else if st, id, err = saveScene(cmd); err != nil {
		return err
	}

	path, err := st.HTMLPath(id)
	if err != nil {
		return err
	}
	fmt.Printf("page: %s\n", path)

	if noBrowser {
		return nil
	}
	return plotly.Show(path, plotly.BrowserOpener)
}

func runRender(cmd *cobra.Command, args []string) error {
	st, id, err := saveScene(cmd)
	if err != nil {
		return err
	}
	fmt.Printf("saved to %s\n", filepath.Join(st.Dir(), id))
	return nil
}

// output opens the file named by args, or stdout when args is empty or "-".
func output(args []string) (io.WriteCloser, string, error) {
	if len(args) == 0 || args[0] == "-" {
		return nopCloser{os.Stdout}, "", nil
	}
	f, err := os.Create(args[0])
	if err != nil {
		return nil, "", err
	}
	return f, args[0], nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func writeOutput(args []string, write func(io.Writer) error) error {
	w, name, err := output(args)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	if name != "" {
		fmt.Printf("wrote %s\n", name)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	_, sc, err := buildScene(cmd)
	if err != nil {
		return err
	}
	return writeOutput(args, func(w io.Writer) error {
		return plotly.WriteJSON(w, sc, indent)
	})
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, c, err := sampleCurve(cmd)
	if err != nil {
		return err
	}
	return writeOutput(args, func(w io.Writer) error {
		return export.WritePointsCSV(w, c)
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	sc, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	k := frameIdx
	if k < 0 || k > len(sc.Frames) {
		k = len(sc.Frames)
	}
	cam := viz.NewCamera()
	cam.Rotate(yaw, pitch)

	var out string
	if braille {
		canvas := viz.NewCanvas(svgW/8, svgH/16)
		viz.DrawFrame(canvas, sc, k, cam)
		out = export.CanvasToSVG(canvas, 4, "#1f77b4")
	} else {
		out = export.HelixSVG(sc, k, cam, svgW, svgH)
	}

	return writeOutput([]string{svgOut}, func(w io.Writer) error {
		_, err := io.WriteString(w, out)
		return err
	})
}

func exportPNG(cmd *cobra.Command, args []string) error {
	_, c, err := sampleCurve(cmd)
	if err != nil {
		return err
	}

	width, height := vg.Length(chartW)*vg.Inch, vg.Length(chartH)*vg.Inch
	if len(args) == 1 && args[0] == "-" {
		return writeOutput(args, func(w io.Writer) error {
			return export.EncodeComponentsPNG(w, c, width, height)
		})
	}

	path := "components.png"
	if len(args) == 1 {
		path = args[0]
	}
	if err := export.WriteComponentsPNG(c, path, width, height); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportGIF(cmd *cobra.Command, args []string) error {
	sc, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	opts := viz.DefaultGIFOptions()
	opts.Every = gifEvery
	opts.Cols = gifCols
	opts.Rows = gifRows
	opts.DotSize = gifDot

	return writeOutput([]string{gifOut}, func(w io.Writer) error {
		return viz.EncodeGIF(w, sc, opts)
	})
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	opts := viz.DefaultPlayerOptions()
	opts.Theme = theme
	opts.Autoplay = !noAutoplay
	return viz.Run(sc, opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	sc, err := loadScene(cmd, args)
	if err != nil {
		return err
	}

	opts := gui.DefaultOptions()
	opts.Autoplay = !noAutoplay
	return gui.Run(sc, opts)
}

func plotComponents(cmd *cobra.Command, args []string) error {
	c, err := loadCurve(cmd, args)
	if err != nil {
		return err
	}
	x, y, _ := c.Components()

	fmt.Printf("samples: %d, theta_max: %.4f, turns: %.2f\n\n", c.Len(), c.Params.ThetaMax, c.Turns())
	graph := asciigraph.PlotMany([][]float64{x, y},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(-1),
		asciigraph.UpperBound(1),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.SeriesLegends("cos θ", "sin θ"),
		asciigraph.Caption("components of e^(iθ)"),
	)
	fmt.Println(graph)
	return nil
}

func analyzeCurve(cmd *cobra.Command, args []string) error {
	c, err := loadCurve(cmd, args)
	if err != nil {
		return err
	}
	rep := analysis.Analyze(c)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	x, _, _ := c.Components()
	mags := analysis.Spectrum(x)
	show := mags
	if len(show) > 4*rep.SpectralTurns+8 {
		show = show[:4*rep.SpectralTurns+8]
	}

	graph := asciigraph.Plot(show,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("magnitude spectrum (cos θ)"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("samples:           %d\n", rep.Samples)
	fmt.Printf("theta_max:         %.6f\n", rep.ThetaMax)
	fmt.Printf("step:              %.6f (min %.6f, max %.6f)\n", rep.Step, rep.MinStep, rep.MaxStep)
	fmt.Printf("turns:             %.3f\n", rep.Turns)
	fmt.Printf("dominant bin:      %d\n", rep.SpectralTurns)
	fmt.Printf("unit circle error: %.3e\n", rep.UnitCircleError)
	return nil
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	renders, err := st.List()
	if err != nil {
		return err
	}

	if len(renders) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tTHETA_MAX\tSAMPLES\tFRAMES\tSTEPS\tDELAY")

	for _, r := range renders {
		name := r.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%d\t%d\t%d\t%dms\n",
			r.ID,
			name,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.ThetaMax,
			r.NumFrames,
			r.Frames,
			r.SliderSteps,
			r.FrameDelayMs,
		)
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTHETA_MAX\tTURNS\tSAMPLES\tSTRIDE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.4f\t%.1f\t%d\t%d\n",
			name,
			cfg.ThetaMax,
			cfg.ThetaMax/(2*math.Pi),
			cfg.NumFrames,
			cfg.Animation.SliderStride,
		)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 && args[0] != "-" {
		if err := config.Save(args[0], cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", args[0])
		return nil
	}

	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(cfg)
}
