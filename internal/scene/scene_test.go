package scene_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dialsim/internal/config"
	"github.com/san-kum/dialsim/internal/geom"
	"github.com/san-kum/dialsim/internal/scene"
)

const (
	width  = 454.0
	height = 454.0
)

var _ = Describe("Registry", func() {
	var reg *scene.Registry

	BeforeEach(func() {
		reg = scene.NewRegistry()
	})

	It("lists the four scenes", func() {
		Expect(reg.List()).To(Equal([]string{"bodies", "chain", "liquid", "ragdoll"}))
		Expect(reg.Info("chain")).NotTo(BeEmpty())
	})

	It("rejects unknown names", func() {
		_, err := reg.New("arcade", width, height, nil)
		Expect(errors.Is(err, scene.ErrUnknownScene)).To(BeTrue())
	})

	It("refuses to build without a viewport", func() {
		_, err := reg.New("chain", 0, height, nil)
		Expect(err).To(MatchError(scene.ErrNotReady))
	})

	DescribeTable("every scene keeps its entities inside the round boundary",
		func(name string) {
			s, err := reg.New(name, width, height, config.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())

			for i := 0; i < 240; i++ {
				if i%60 == 0 {
					s.Impulse(geom.Vec2{X: 6, Y: -4})
				}
				s.SetGravity(float64(i%3-1), 1)
				s.Step()
			}

			f := s.Frame()
			Expect(f.Step).To(Equal(240))
			Expect(f.Discs).NotTo(BeEmpty())
			for _, d := range f.Discs {
				Expect(d.Pos.Dist(f.World.Center)).To(BeNumerically("<=", f.World.Radius+1e-9))
			}
		},
		Entry("ragdoll", "ragdoll"),
		Entry("chain", "chain"),
		Entry("liquid", "liquid"),
		Entry("bodies", "bodies"),
	)
})

var _ = Describe("Ragdoll scene", func() {
	var s scene.Scene

	BeforeEach(func() {
		var err error
		s, err = scene.NewRegistry().New("ragdoll", width, height, config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("exposes six points and five links", func() {
		f := s.Frame()
		Expect(f.Discs).To(HaveLen(6))
		Expect(f.Links).To(HaveLen(5))
		Expect(f.Discs[0].Shape).To(Equal("head"))
	})

	It("drags a point and lets it go from rest", func() {
		head := s.Frame().Discs[0].Pos
		Expect(s.Press(head)).To(BeTrue())

		target := head.Add(geom.Vec2{X: 30, Y: 10})
		s.Move(target)
		f := s.Frame()
		Expect(f.Discs[0].Pos).To(Equal(target))
		Expect(f.Discs[0].Held).To(BeTrue())

		s.Release(target)
		f = s.Frame()
		Expect(f.Discs[0].Held).To(BeFalse())
		Expect(f.Discs[0].Vel.IsZero()).To(BeTrue())
	})

	It("ignores presses on empty space", func() {
		Expect(s.Press(geom.Vec2{X: 5, Y: 5})).To(BeFalse())
	})
})

var _ = Describe("Chain scene", func() {
	It("never lets the anchor be grabbed or moved", func() {
		cfg := config.DefaultConfig()
		x, y := 200.0, 90.0
		cfg.Chain.AnchorX, cfg.Chain.AnchorY = &x, &y

		s, err := scene.NewRegistry().New("chain", width, height, cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Press(geom.Vec2{X: x - 10, Y: y})).To(BeFalse())
		for i := 0; i < 120; i++ {
			s.Step()
		}
		f := s.Frame()
		Expect(f.Discs[0].Pos).To(Equal(geom.Vec2{X: x, Y: y}))
		Expect(f.Discs[0].Pinned).To(BeTrue())
		Expect(f.Links).To(HaveLen(cfg.Chain.Points - 1))
	})
})

var _ = Describe("Bodies scene", func() {
	var s scene.Scene

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.Bodies.Count = 1
		var err error
		s, err = scene.NewRegistry().New("bodies", width, height, cfg)
		Expect(err).NotTo(HaveOccurred())
		s.SetGravity(0, 0)
	})

	It("throws a released body with the drag velocity", func() {
		start := s.Frame().Discs[0].Pos
		Expect(s.Press(start)).To(BeTrue())

		for i := 1; i <= 4; i++ {
			s.Step()
			s.Move(start.Add(geom.Vec2{X: float64(i) * 5}))
		}
		s.Step()
		s.Release(start.Add(geom.Vec2{X: 25}))

		d := s.Frame().Discs[0]
		Expect(d.Held).To(BeFalse())
		Expect(d.Vel.X).To(BeNumerically("~", 5*60, 1e-6))
		Expect(d.Vel.Y).To(BeNumerically("~", 0, 1e-9))
	})

	It("holds a grabbed body still against gravity", func() {
		s.SetGravity(0, 1)
		start := s.Frame().Discs[0].Pos
		Expect(s.Press(start)).To(BeTrue())
		for i := 0; i < 30; i++ {
			s.Step()
		}
		Expect(s.Frame().Discs[0].Pos).To(Equal(start))
	})

	It("drops a body left held when a new press arrives without a release", func() {
		cfg := config.DefaultConfig()
		cfg.Bodies.Count = 2
		two, err := scene.NewRegistry().New("bodies", width, height, cfg)
		Expect(err).NotTo(HaveOccurred())
		two.SetGravity(0, 1)

		first, second := two.Frame().Discs[0].Pos, two.Frame().Discs[1].Pos
		Expect(two.Press(first)).To(BeTrue())
		Expect(two.Press(second)).To(BeTrue())

		for i := 0; i < 60; i++ {
			two.Step()
		}
		f := two.Frame()
		Expect(f.Discs[0].Held).To(BeFalse())
		Expect(f.Discs[0].Pos.Y).To(BeNumerically(">", first.Y+10))
		Expect(f.Discs[1].Held).To(BeTrue())
		Expect(f.Discs[1].Pos).To(Equal(second))
	})
})

var _ = Describe("Liquid scene", func() {
	It("stirs nearby particles on press", func() {
		s, err := scene.NewRegistry().New("liquid", width, height, config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())

		p := s.Frame().Discs[0].Pos
		Expect(s.Press(p.Add(geom.Vec2{X: -5}))).To(BeTrue())
		s.Release(p)
		Expect(s.Press(geom.Vec2{X: 1, Y: 1})).To(BeFalse())
	})
})

var _ = Describe("Host", func() {
	var host *scene.Host

	BeforeEach(func() {
		var err error
		host, err = scene.NewHost(scene.NewRegistry(), "chain", config.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
	})

	It("waits for a viewport before building the scene", func() {
		_, err := host.Scene()
		Expect(err).To(MatchError(scene.ErrNotReady))

		Expect(host.Tick(0, 0)).To(MatchError(scene.ErrNotReady))
		Expect(host.Ready()).To(BeFalse())

		Expect(host.Tick(width, height)).To(Succeed())
		s, err := host.Scene()
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Frame().Step).To(Equal(1))
	})

	It("applies gravity set before the scene existed", func() {
		host.SetGravity(1, 0)
		Expect(host.Tick(width, height)).To(Succeed())
		s, _ := host.Scene()
		Expect(s.Frame().Gravity).To(Equal(geom.Vec2{X: 1, Y: 0}))
	})

	It("discards the scene on reset and switch", func() {
		Expect(host.Tick(width, height)).To(Succeed())
		host.Reset()
		Expect(host.Ready()).To(BeFalse())

		Expect(host.Switch("liquid")).To(Succeed())
		Expect(host.Tick(width, height)).To(Succeed())
		s, _ := host.Scene()
		Expect(s.Name()).To(Equal("liquid"))

		Expect(host.Switch("arcade")).To(MatchError(scene.ErrUnknownScene))
	})

	It("rejects unknown scenes up front", func() {
		_, err := scene.NewHost(scene.NewRegistry(), "arcade", nil)
		Expect(err).To(MatchError(scene.ErrUnknownScene))
	})
})
