package plotly_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/helixviz/internal/helix"
	"github.com/san-kum/helixviz/internal/plotly"
	"github.com/san-kum/helixviz/internal/scene"
)

func buildScene() *scene.Scene {
	c, err := helix.Sample(helix.Params{ThetaMax: 4, NumFrames: 20})
	Expect(err).NotTo(HaveOccurred())
	sc, err := scene.Build(c, scene.DefaultOptions())
	Expect(err).NotTo(HaveOccurred())
	return sc
}

var _ = Describe("figure JSON", func() {
	It("round-trips the trace and frame counts", func() {
		var buf bytes.Buffer
		Expect(plotly.WriteJSON(&buf, buildScene(), true)).To(Succeed())

		var doc struct {
			Data   []json.RawMessage `json:"data"`
			Frames []struct {
				Name string `json:"name"`
			} `json:"frames"`
		}
		Expect(json.Unmarshal(buf.Bytes(), &doc)).To(Succeed())
		Expect(doc.Data).To(HaveLen(2))
		Expect(doc.Frames).To(HaveLen(19))
		Expect(doc.Frames[0].Name).To(Equal("1"))
		Expect(doc.Frames[18].Name).To(Equal("19"))
	})
})

var _ = Describe("UnmarshalFigure", func() {
	It("restores the scene written by MarshalFigure", func() {
		sc := buildScene()
		raw, err := plotly.MarshalFigure(sc)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := plotly.UnmarshalFigure(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(sc))
	})

	It("recovers playback timing and button targets", func() {
		c, err := helix.Sample(helix.Params{ThetaMax: 4, NumFrames: 120})
		Expect(err).NotTo(HaveOccurred())
		sc, err := scene.Build(c, scene.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		raw, err := plotly.MarshalFigure(sc)
		Expect(err).NotTo(HaveOccurred())
		decoded, err := plotly.UnmarshalFigure(raw)
		Expect(err).NotTo(HaveOccurred())

		Expect(decoded.FrameDuration()).To(Equal(scene.DefaultFrameDuration))
		pause, ok := decoded.PauseButton()
		Expect(ok).To(BeTrue())
		Expect(pause.Args.Stop).To(BeTrue())
		Expect(decoded.SliderSteps()[1].Frame).To(Equal(51))
		Expect(decoded.Frames[4].Index).To(Equal(5))
	})

	It("rejects documents without both traces", func() {
		_, err := plotly.UnmarshalFigure([]byte(`{"data":[],"layout":{},"frames":[]}`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects non-numeric frame names", func() {
		sc := buildScene()
		sc.Frames[0].Name = "first"
		raw, err := plotly.MarshalFigure(sc)
		Expect(err).NotTo(HaveOccurred())
		_, err = plotly.UnmarshalFigure(raw)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("HTML page", func() {
	var out string

	BeforeEach(func() {
		var buf bytes.Buffer
		Expect(plotly.WriteHTML(&buf, buildScene(), plotly.DefaultPageOptions())).To(Succeed())
		out = buf.String()
	})

	It("loads plotly.js and MathJax", func() {
		Expect(out).To(ContainSubstring(plotly.DefaultPlotlyURL))
		Expect(out).To(ContainSubstring("mathjax"))
	})

	It("embeds the figure and registers the frames", func() {
		Expect(out).To(ContainSubstring(`"type":"scatter3d"`))
		Expect(out).To(ContainSubstring("Plotly.newPlot"))
		Expect(out).To(ContainSubstring("Plotly.addFrames"))
	})

	It("omits MathJax when no URL is given", func() {
		opts := plotly.DefaultPageOptions()
		opts.MathJaxURL = ""
		var buf bytes.Buffer
		Expect(plotly.WriteHTML(&buf, buildScene(), opts)).To(Succeed())
		Expect(buf.String()).NotTo(ContainSubstring("mathjax"))
	})

	It("writes the page to disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "index.html")
		Expect(plotly.WriteHTMLFile(path, buildScene(), plotly.DefaultPageOptions())).To(Succeed())
		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(HavePrefix("<!DOCTYPE html>"))
	})
})

var _ = Describe("Show", func() {
	It("passes the page to the opener", func() {
		var opened string
		err := plotly.Show("helix.html", func(path string) error {
			opened = path
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(opened).To(Equal("helix.html"))
	})

	It("wraps opener failures", func() {
		boom := errors.New("no display")
		err := plotly.Show("helix.html", func(string) error { return boom })
		Expect(err).To(MatchError(boom))
		Expect(err.Error()).To(ContainSubstring("helix.html"))
	})
})
