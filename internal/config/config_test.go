package config_test

import (
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sirsim/internal/config"
	"github.com/san-kum/sirsim/internal/epidemic"
)

var _ = Describe("Config", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(body), 0644)).To(Succeed())
		return path
	}

	Describe("DefaultConfig", func() {
		It("matches the documented defaults", func() {
			cfg := config.DefaultConfig()
			Expect(cfg.Integrator).To(Equal("rk45"))
			Expect(cfg.View).To(Equal("series"))
			Expect(cfg.Samples).To(BeZero())
			Expect(cfg.Horizon).To(Equal(200.0))
			Expect(cfg.Tolerance.Rtol).To(Equal(1e-6))
			Expect(cfg.Tolerance.Atol).To(Equal(1e-9))
			Expect(cfg.Params).To(Equal(epidemic.Parameters{Beta: 0.25, I0: 10, S0: 90}))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Describe("Load", func() {
		It("reads YAML over the defaults", func() {
			path := write("sir.yaml", "integrator: euler\nparams:\n  beta: 0.4\n")
			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Integrator).To(Equal("euler"))
			Expect(cfg.Params.Beta).To(Equal(0.4))
			Expect(cfg.Params.I0).To(Equal(10.0))
			Expect(cfg.Horizon).To(Equal(200.0))
		})

		It("reads TOML when the extension says so", func() {
			path := write("sir.toml", "view = \"phase\"\nsamples = 300\n\n[params]\ns0 = 80.0\n")
			cfg, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.View).To(Equal("phase"))
			Expect(cfg.Samples).To(Equal(300))
			Expect(cfg.Params.S0).To(Equal(80.0))
			Expect(cfg.Params.Beta).To(Equal(0.25))
		})

		It("fails on a missing explicit file", func() {
			_, err := config.Load(filepath.Join(dir, "nope.yaml"))
			Expect(err).To(HaveOccurred())
		})

		It("fails on malformed input", func() {
			_, err := config.Load(write("bad.yaml", "integrator: [\n"))
			Expect(err).To(MatchError(ContainSubstring("failed to decode")))
		})

		It("layers a file over a preset without touching the preset", func() {
			base := config.GetPreset("fast")
			cfg, err := config.LoadOver(write("over.yaml", "view: phase\n"), base)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.View).To(Equal("phase"))
			Expect(cfg.Params.Beta).To(Equal(0.6))
			Expect(base.View).To(Equal("series"))
		})

		It("round-trips through Save", func() {
			cfg := config.DefaultConfig()
			cfg.Integrator = "rk4"
			cfg.Params.I0 = 3
			path := filepath.Join(dir, "saved.yaml")
			Expect(config.Save(path, cfg)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})
	})

	Describe("default path", func() {
		It("follows XDG_CONFIG_HOME", func() {
			GinkgoT().Setenv("XDG_CONFIG_HOME", dir)
			Expect(config.DefaultPath()).To(Equal(filepath.Join(dir, "sirsim", "config.yaml")))
		})

		It("tolerates a missing default file", func() {
			GinkgoT().Setenv("XDG_CONFIG_HOME", dir)
			cfg, err := config.LoadDefaultOver(config.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg).To(Equal(config.DefaultConfig()))
		})

		It("reads the default file when present", func() {
			GinkgoT().Setenv("XDG_CONFIG_HOME", dir)
			Expect(os.MkdirAll(filepath.Join(dir, "sirsim"), 0755)).To(Succeed())
			Expect(os.WriteFile(config.DefaultPath(), []byte("horizon: 150\n"), 0644)).To(Succeed())
			cfg, err := config.LoadDefaultOver(config.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Horizon).To(Equal(150.0))
		})
	})

	DescribeTable("Validate rejects",
		func(mutate func(*config.Config), fragment string) {
			cfg := config.DefaultConfig()
			mutate(cfg)
			Expect(cfg.Validate()).To(MatchError(ContainSubstring(fragment)))
		},
		Entry("unknown integrator", func(c *config.Config) { c.Integrator = "leapfrog" }, "unknown integrator"),
		Entry("unknown view", func(c *config.Config) { c.View = "3d" }, "unknown view"),
		Entry("negative samples", func(c *config.Config) { c.Samples = -1 }, "samples"),
		Entry("single sample", func(c *config.Config) { c.Samples = 1 }, "samples"),
		Entry("zero horizon", func(c *config.Config) { c.Horizon = 0 }, "horizon"),
		Entry("zero rtol", func(c *config.Config) { c.Tolerance.Rtol = 0 }, "tolerances"),
		Entry("zero slider step", func(c *config.Config) { c.Steps.Percent = 0 }, "slider steps"),
		Entry("beta not a number", func(c *config.Config) { c.Params.Beta = math.NaN() }, "beta"),
		Entry("infinite s0", func(c *config.Config) { c.Params.S0 = math.Inf(1) }, "params"),
	)

	It("accepts params that normalize like slider input", func() {
		cfg := config.DefaultConfig()
		cfg.Params = epidemic.Parameters{Beta: 1.5, I0: 60, S0: 60}
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Params.Normalize()).To(Equal(epidemic.Parameters{Beta: 1, I0: 40, S0: 60}))
	})
})

var _ = Describe("Presets", func() {
	It("lists every preset in order", func() {
		Expect(config.ListPresets()).To(Equal([]string{"contained", "default", "fast", "herd", "legacy", "slow"}))
	})

	It("returns independent copies", func() {
		a := config.GetPreset("herd")
		a.Params.Beta = 0.9
		Expect(config.GetPreset("herd").Params.Beta).To(Equal(0.3))
	})

	It("returns nil for unknown names", func() {
		Expect(config.GetPreset("nonexistent")).To(BeNil())
	})

	It("only holds valid configurations", func() {
		for _, name := range config.ListPresets() {
			Expect(config.GetPreset(name).Validate()).To(Succeed(), name)
		}
	})

	It("runs the legacy preset on Euler", func() {
		Expect(config.GetPreset("legacy").Integrator).To(Equal("euler"))
	})
})
