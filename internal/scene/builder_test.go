package scene_test

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/helixviz/internal/helix"
	"github.com/san-kum/helixviz/internal/scene"
)

var _ = Describe("SliderSteps", func() {
	It("samples every 50th frame of the default animation", func() {
		Expect(scene.SliderSteps(500, 50)).To(Equal([]int{1, 51, 101, 151, 201, 251, 301, 351, 401, 451}))
	})

	DescribeTable("stops strictly before numFrames",
		func(numFrames, stride int, want []int) {
			Expect(scene.SliderSteps(numFrames, stride)).To(Equal(want))
		},
		Entry("stride divides n-1", 101, 50, []int{1, 51}),
		Entry("stride does not divide n-1", 120, 50, []int{1, 51, 101}),
		Entry("stride larger than frame count", 10, 50, []int{1}),
		Entry("unit stride", 4, 1, []int{1, 2, 3}),
		Entry("two samples", 2, 50, []int{1}),
	)

	It("returns nothing for a non-positive stride", func() {
		Expect(scene.SliderSteps(500, 0)).To(BeEmpty())
		Expect(scene.SliderSteps(500, -3)).To(BeEmpty())
	})
})

var _ = Describe("Build", func() {
	var (
		curve *helix.Curve
		sc    *scene.Scene
	)

	BeforeEach(func() {
		var err error
		curve, err = helix.Sample(helix.DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		sc, err = scene.Build(curve, scene.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("persistent traces", func() {
		It("draws the whole helix as a blue line", func() {
			path := sc.FullPath()
			Expect(path.Type).To(Equal("scatter3d"))
			Expect(path.Mode).To(Equal(scene.ModeLines))
			Expect(path.Len()).To(Equal(500))
			Expect(path.Line).To(Equal(&scene.Line{Color: "blue", Width: 4}))
			Expect(path.Name).To(ContainSubstring("e^{i\\theta}"))
		})

		It("starts the current point at the first sample", func() {
			p := sc.CurrentPoint()
			Expect(p.Mode).To(Equal(scene.ModeMarkers))
			Expect(p.X).To(Equal([]float64{1}))
			Expect(p.Y).To(Equal([]float64{0}))
			Expect(p.Z).To(Equal([]float64{0}))
			Expect(p.Marker).To(Equal(&scene.Marker{Color: "red", Size: 8, Opacity: ptr(0.9)}))
			Expect(p.Name).To(Equal("Current Point"))
		})
	})

	Describe("frames", func() {
		It("creates one frame per revealed point", func() {
			Expect(sc.Frames).To(HaveLen(499))
		})

		It("reveals a prefix of length k and marks point k-1", func() {
			for k := 1; k < 500; k++ {
				f, ok := sc.Frame(k)
				Expect(ok).To(BeTrue())
				Expect(f.Name).To(Equal(itoa(k)))
				Expect(f.Index).To(Equal(k))
				Expect(f.Path().Len()).To(Equal(k))

				want := curve.Points[k-1]
				m := f.Marker()
				Expect(m.X).To(Equal([]float64{want.X}))
				Expect(m.Y).To(Equal([]float64{want.Y}))
				Expect(m.Z).To(Equal([]float64{want.Z}))
			}
		})

		It("keeps frame styles without marker opacity", func() {
			f, _ := sc.Frame(10)
			Expect(f.Path().Line).To(Equal(&scene.Line{Color: "blue", Width: 4}))
			Expect(f.Marker().Marker).To(Equal(&scene.Marker{Color: "red", Size: 8}))
		})

		It("rejects indices outside [1, num_frames)", func() {
			_, ok := sc.Frame(0)
			Expect(ok).To(BeFalse())
			_, ok = sc.Frame(500)
			Expect(ok).To(BeFalse())
		})

		It("does not let a frame grow into its neighbour", func() {
			f, _ := sc.Frame(3)
			path := f.Path()
			Expect(cap(path.X)).To(Equal(3))
		})
	})

	Describe("layout", func() {
		It("fixes axis ranges and aspect ratio", func() {
			l := sc.Layout.Scene
			Expect(l.XAxis.Range).To(Equal([2]float64{-1.5, 1.5}))
			Expect(l.YAxis.Range).To(Equal([2]float64{-1.5, 1.5}))
			Expect(l.ZAxis.Range).To(Equal([2]float64{0, 10 * math.Pi}))
			Expect(l.AspectRatio).To(Equal(scene.AspectRatio{X: 1, Y: 1, Z: 2}))
		})

		It("styles gridlines and zero lines", func() {
			for _, ax := range []scene.Axis{sc.Layout.Scene.XAxis, sc.Layout.Scene.YAxis, sc.Layout.Scene.ZAxis} {
				Expect(ax.ShowGrid).To(BeTrue())
				Expect(ax.GridColor).To(Equal("LightGray"))
				Expect(ax.GridWidth).To(Equal(1.0))
				Expect(ax.ZeroLine).To(BeTrue())
				Expect(ax.ZeroLineColor).To(Equal("Gray"))
				Expect(ax.ZeroLineWidth).To(Equal(2.0))
			}
		})

		It("plays at 20ms per frame without transitions", func() {
			play, ok := sc.PlayButton()
			Expect(ok).To(BeTrue())
			Expect(play.Label).To(Equal("Play"))
			Expect(play.Args.Frames).To(BeNil())
			Expect(play.Args.Options.Frame).To(Equal(scene.FrameTiming{Duration: 20 * time.Millisecond, Redraw: true}))
			Expect(play.Args.Options.Transition.Duration).To(BeZero())
			Expect(play.Args.Options.FromCurrent).To(BeTrue())
			Expect(sc.FrameDuration()).To(Equal(20 * time.Millisecond))
		})

		It("pauses by stopping playback", func() {
			pause, ok := sc.PauseButton()
			Expect(ok).To(BeTrue())
			Expect(pause.Label).To(Equal("Pause"))
			Expect(pause.Args.Stop).To(BeTrue())
			Expect(pause.Args.Options.Frame.Redraw).To(BeFalse())
		})

		It("labels slider steps with their frame index", func() {
			steps := sc.SliderSteps()
			Expect(steps).To(HaveLen(10))
			for _, s := range steps {
				Expect(s.Label).To(Equal(itoa(s.Frame)))
				Expect(s.Args.Frames).To(Equal([]string{s.Label}))
				Expect(s.Args.Options.Frame.Duration).To(Equal(20 * time.Millisecond))
			}
			Expect(sc.Layout.Sliders[0].CurrentValue.Prefix).To(Equal("Frame: "))
			Expect(sc.Layout.Sliders[0].Len).To(Equal(0.9))
		})
	})

	Describe("JSON encoding", func() {
		var doc map[string]any

		BeforeEach(func() {
			raw, err := json.Marshal(sc)
			Expect(err).NotTo(HaveOccurred())
			Expect(json.Unmarshal(raw, &doc)).To(Succeed())
		})

		It("is a plotly figure", func() {
			Expect(doc).To(HaveKey("data"))
			Expect(doc).To(HaveKey("layout"))
			Expect(doc).To(HaveKey("frames"))
		})

		It("encodes play and pause targets the way plotly expects", func() {
			menus := doc["layout"].(map[string]any)["updatemenus"].([]any)
			buttons := menus[0].(map[string]any)["buttons"].([]any)

			playArgs := buttons[0].(map[string]any)["args"].([]any)
			Expect(playArgs[0]).To(BeNil())
			Expect(playArgs[1]).To(HaveKeyWithValue("frame", map[string]any{"duration": 20.0, "redraw": true}))
			Expect(playArgs[1]).To(HaveKeyWithValue("transition", map[string]any{"duration": 0.0}))

			pauseArgs := buttons[1].(map[string]any)["args"].([]any)
			Expect(pauseArgs[0]).To(Equal([]any{nil}))
		})

		It("targets named frames from the slider", func() {
			sliders := doc["layout"].(map[string]any)["sliders"].([]any)
			steps := sliders[0].(map[string]any)["steps"].([]any)
			args := steps[1].(map[string]any)["args"].([]any)
			Expect(args[0]).To(Equal([]any{"51"}))
		})
	})
})

var _ = Describe("Options", func() {
	It("accepts the defaults", func() {
		Expect(scene.DefaultOptions().Validate()).To(Succeed())
	})

	DescribeTable("rejects out-of-bounds values",
		func(mutate func(*scene.Options)) {
			opts := scene.DefaultOptions()
			mutate(&opts)
			err := opts.Validate()
			Expect(errors.Is(err, scene.ErrInvalidOptions)).To(BeTrue())
		},
		Entry("zero stride", func(o *scene.Options) { o.SliderStride = 0 }),
		Entry("negative frame duration", func(o *scene.Options) { o.FrameDuration = -time.Millisecond }),
		Entry("negative transition", func(o *scene.Options) { o.TransitionDuration = -time.Millisecond }),
		Entry("missing path color", func(o *scene.Options) { o.Style.PathColor = "" }),
		Entry("flat axes", func(o *scene.Options) { o.AxisHalfWidth = 0 }),
		Entry("negative marker opacity", func(o *scene.Options) { o.Style.MarkerOpacity = -0.1 }),
		Entry("marker opacity above one", func(o *scene.Options) { o.Style.MarkerOpacity = 1.5 }),
	)

	DescribeTable("encodes the configured marker opacity",
		func(opacity float64, want string) {
			curve, err := helix.Sample(helix.Params{ThetaMax: 1, NumFrames: 3})
			Expect(err).NotTo(HaveOccurred())
			opts := scene.DefaultOptions()
			opts.Style.MarkerOpacity = opacity
			sc, err := scene.Build(curve, opts)
			Expect(err).NotTo(HaveOccurred())

			raw, err := json.Marshal(sc.CurrentPoint().Marker)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(want))

			f, _ := sc.Frame(1)
			raw, err = json.Marshal(f.Marker().Marker)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).NotTo(ContainSubstring("opacity"))
		},
		Entry("fully transparent", 0.0, `"opacity":0`),
		Entry("half", 0.5, `"opacity":0.5`),
		Entry("opaque", 1.0, `"opacity":1`),
	)

	It("makes Build fail on invalid options", func() {
		curve, err := helix.Sample(helix.DefaultParams())
		Expect(err).NotTo(HaveOccurred())
		opts := scene.DefaultOptions()
		opts.SliderStride = 0
		_, err = scene.Build(curve, opts)
		Expect(err).To(MatchError(scene.ErrInvalidOptions))
	})

	It("honours a custom stride", func() {
		curve, err := helix.Sample(helix.Params{ThetaMax: 2 * math.Pi, NumFrames: 100})
		Expect(err).NotTo(HaveOccurred())
		opts := scene.DefaultOptions()
		opts.SliderStride = 30
		sc, err := scene.Build(curve, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(sc.Frames).To(HaveLen(99))
		Expect(sc.SliderSteps()).To(HaveLen(4))
		Expect(sc.Layout.Scene.ZAxis.Range[1]).To(Equal(2 * math.Pi))
	})
})
