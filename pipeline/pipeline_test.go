package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/darkowlzz/expression-toolkit/artifact"
	"github.com/darkowlzz/expression-toolkit/config"
	layoutv1 "github.com/darkowlzz/expression-toolkit/layout/v1"
	"github.com/darkowlzz/expression-toolkit/render/mocks"
)

var _ = Describe("Pipeline", func() {
	var (
		cfg   *config.Config
		store *artifact.Store
	)

	BeforeEach(func() {
		cfg = config.Default()
		cfg.Render.Width = 320
		cfg.Render.Height = 240
		store = artifact.NewMemoryStore("out")
	})

	Context("with the reference configuration", func() {
		It("writes the formula file and the tree images", func() {
			p, err := New(cfg, store)
			Expect(err).NotTo(HaveOccurred())

			report, err := p.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			By("writing two lines per depth")
			b, err := store.Read("result.txt")
			Expect(err).NotTo(HaveOccurred())
			lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
			Expect(lines).To(HaveLen(14))
			Expect(lines[0]).To(Equal("x10 = x"))
			Expect(lines[1]).To(Equal("x20 = X"))
			Expect(lines[2]).To(Equal("x11 = (v*t + x)"))
			Expect(lines[13]).To(HavePrefix("x26 = ((-t^2*q*Q)"))
			Expect(report.Formulas).To(HaveLen(7))

			By("converting and building the trees of depth 1 to 3")
			Expect(report.Trees).To(Equal([]TreeResult{
				{Depth: 1, Postfix: "vt*x+", Nodes: 5, Levels: 3, Image: "tree1.png"},
				{Depth: 2, Postfix: "t2^q*Q*4p*E*xX-*/x-2vt*x+*+", Nodes: 27, Levels: 7, Image: "tree2.png"},
				{Depth: 3, Postfix: "t2^q*Q*4p*E*vt*x+Vt*X+-*/vt*x+-2t2^q*Q*4p*E*xX-*/x-2vt*x+*+*+", Nodes: 61, Levels: 9, Image: "tree3.png"},
			}))

			By("rendering a PNG per tree")
			for depth := 1; depth <= 3; depth++ {
				b, err := store.Read(fmt.Sprintf("tree%d.png", depth))
				Expect(err).NotTo(HaveOccurred())
				img, err := png.Decode(bytes.NewReader(b))
				Expect(err).NotTo(HaveOccurred())
				Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 320, 240)))
			}
			Expect(store.Exists("out/tree0.png")).To(BeFalse())
			Expect(store.Exists("out/tree4.png")).To(BeFalse())
		})

		It("records the run in spans", func() {
			sr := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

			p, err := New(cfg, store, WithInstrumentation(tp, noop.NewMeterProvider(), logr.Discard()))
			Expect(err).NotTo(HaveOccurred())
			_, err = p.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			count := map[string]int{}
			for _, s := range sr.Ended() {
				count[s.Name()]++
			}
			Expect(count).To(Equal(map[string]int{
				"run":            1,
				"process-tree":   3,
				"to-postfix":     3,
				"construct-tree": 3,
			}))
		})
	})

	Context("with a custom configuration", func() {
		It("renders only the configured depths", func() {
			cfg.Formulas = config.DepthRange{Min: 0, Max: 2}
			cfg.Trees = config.DepthRange{Min: 0, Max: 0}
			cfg.ImagePattern = "expr-%02d.png"
			cfg.FormulaFile = "formulas.txt"
			cfg.Render.Layout = string(layoutv1.Circular)

			p, err := New(cfg, store)
			Expect(err).NotTo(HaveOccurred())
			report, err := p.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Trees).To(Equal([]TreeResult{
				{Depth: 0, Postfix: "x", Nodes: 1, Levels: 1, Image: "expr-00.png"},
			}))
			Expect(store.Exists("out/expr-00.png")).To(BeTrue())
			Expect(store.Exists("out/formulas.txt")).To(BeTrue())
		})

		It("uses the configured comparison mode", func() {
			cfg.Converter.Comparison = config.ComparisonRestricted
			cfg.Trees = config.DepthRange{Min: 2, Max: 2}

			p, err := New(cfg, store)
			Expect(err).NotTo(HaveOccurred())
			report, err := p.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(report.Trees).To(HaveLen(1))
			// The exponent stays on the stack until its parenthesis closes.
			Expect(report.Trees[0].Postfix).To(HavePrefix("t2q*Q*^4p*E*"))
			Expect(report.Trees[0].Nodes).To(Equal(27))
		})

		It("rejects an invalid configuration", func() {
			cfg.Trees.Max = 10
			_, err := New(cfg, store)
			Expect(err).To(MatchError(ContainSubstring("invalid configuration")))
		})
	})

	Context("with a mock renderer", func() {
		var (
			mctrl    *gomock.Controller
			renderer *mocks.MockRenderer
		)

		BeforeEach(func() {
			mctrl = gomock.NewController(GinkgoT())
			renderer = mocks.NewMockRenderer(mctrl)
		})

		AfterEach(func() {
			mctrl.Finish()
		})

		It("hands every tree layout to the renderer", func() {
			sizes := []int{}
			renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(w io.Writer, g *layoutv1.Graph, pts map[int]layoutv1.Point) error {
					sizes = append(sizes, g.Len())
					Expect(pts).To(HaveLen(g.Len()))
					_, err := w.Write([]byte("image"))
					return err
				}).Times(3)

			p, err := New(cfg, store, WithRenderer(renderer))
			Expect(err).NotTo(HaveOccurred())
			_, err = p.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(sizes).To(Equal([]int{5, 27, 61}))
			b, err := store.Read("tree2.png")
			Expect(err).NotTo(HaveOccurred())
			Expect(string(b)).To(Equal("image"))
		})

		It("aborts the run on the first render failure", func() {
			gomock.InOrder(
				renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
				renderer.EXPECT().Render(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("disk full")),
			)

			p, err := New(cfg, store, WithRenderer(renderer))
			Expect(err).NotTo(HaveOccurred())
			report, err := p.Run(context.Background())
			Expect(report).To(BeNil())
			Expect(err).To(MatchError(`depth 2: failed to render image "tree2.png": disk full`))

			By("not writing the formula file")
			Expect(store.Exists("out/result.txt")).To(BeFalse())
		})
	})
})
