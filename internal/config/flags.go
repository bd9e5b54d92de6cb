package config

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

// lenientValue wraps a parser so malformed input is logged and the previous value kept.
// A bad launch option is never fatal: the run continues with what was there before.
type lenientValue struct {
	name   string
	logger *log.Logger
	get    func() string
	set    func(string) error // leaves the target untouched on error
	isBool bool
}

func (v lenientValue) String() string {
	if v.get == nil {
		return ""
	}
	return v.get()
}

func (v lenientValue) Set(s string) error {
	if err := v.set(s); err != nil {
		v.logger.Printf("ignoring -%s %q (%v), keeping %s", v.name, s, err, v.get())
	}
	return nil
}

func (v lenientValue) IsBoolFlag() bool { return v.isBool }

func setCount(n *int, s string, logger *log.Logger) {
	parsed, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || parsed <= 0 {
		logger.Printf("ignoring entity count %q, keeping %d", s, *n)
		return
	}
	*n = parsed
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d comma-separated numbers", n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// binder registers lenient flags on one FlagSet
type binder struct {
	fs     *flag.FlagSet
	logger *log.Logger
}

func (b binder) bind(name, usage string, get func() string, set func(string) error) {
	b.fs.Var(lenientValue{name: name, logger: b.logger, get: get, set: set}, name, usage)
}

func (b binder) floatVar(p *float64, name, usage string) {
	b.bind(name, usage, func() string { return strconv.FormatFloat(*p, 'g', -1, 64) }, func(s string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return err
		}
		*p = f
		return nil
	})
}

func (b binder) intVar(p *int, name, usage string) {
	b.bind(name, usage, func() string { return strconv.Itoa(*p) }, func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*p = n
		return nil
	})
}

func (b binder) durationVar(p *time.Duration, name, usage string) {
	b.bind(name, usage, func() string { return p.String() }, func(s string) error {
		d, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*p = d
		return nil
	})
}

// choice binds a case-insensitive enum flag
func choice[T ~string](b binder, p *T, name, usage string, validate func(T) error) {
	b.bind(name, usage, func() string { return string(*p) }, func(s string) error {
		v := T(strings.ToLower(strings.TrimSpace(s)))
		if err := validate(v); err != nil {
			return err
		}
		*p = v
		return nil
	})
}

// Bind registers every launch option on fs, writing into c.
// Malformed values are logged through logger and leave the previous value in place.
func Bind(fs *flag.FlagSet, c *Config, logger *log.Logger) {
	b := binder{fs: fs, logger: logger}

	fs.Var(lenientValue{name: "n", logger: logger,
		get: func() string { return strconv.Itoa(c.Count) },
		set: func(s string) error { setCount(&c.Count, s, logger); return nil },
	}, "n", "entity count")
	fs.Var(lenientValue{name: "noRender", logger: logger, isBool: true,
		get: func() string { return strconv.FormatBool(c.Render == RenderNone) },
		set: func(s string) error {
			off, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			if off {
				c.Render = RenderNone
			}
			return nil
		},
	}, "noRender", "disable rendering (same as -render none)")
	choice(b, &c.Render, "render", "front end: window|term|none", Renderer.Validate)
	b.bind("world", "world bounds xmin,xmax,ymin,ymax", func() string { return c.World.String() }, func(s string) error {
		f, err := parseFloats(s, 4)
		if err != nil {
			return err
		}
		c.World = World{XMin: f[0], XMax: f[1], YMin: f[2], YMax: f[3]}
		return nil
	})
	b.bind("radius", "radius range min,max",
		func() string { return fmt.Sprintf("%g,%g", c.MinRadius, c.MaxRadius) },
		func(s string) error {
			f, err := parseFloats(s, 2)
			if err != nil {
				return err
			}
			c.MinRadius, c.MaxRadius = f[0], f[1]
			return nil
		})
	b.floatVar(&c.MaxSpeed, "speed", "max speed per axis")
	b.bind("seed", "random seed (0 derives one from the clock)",
		func() string { return strconv.FormatInt(c.Seed, 10) },
		func(s string) error {
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return err
			}
			c.Seed = n
			return nil
		})
	choice(b, &c.Layout, "layout", "storage layout: aos|soa|split", Layout.Validate)
	choice(b, &c.BroadPhase, "broadphase", "candidate pair source: grid|brute", BroadPhase.Validate)
	choice(b, &c.Palette, "palette", "entity colours: solid|gradient|noise", Palette.Validate)
	b.floatVar(&c.FixedDT, "dt", "fixed timestep in seconds (0 measures frame time)")
	b.durationVar(&c.Duration, "duration", "headless run length (0 runs until interrupted)")
	b.durationVar(&c.ReportInterval, "report", "throughput report interval")
	b.intVar(&c.WindowSize, "window", "window edge in pixels")
	b.intVar(&c.TPS, "tps", "window ticks per second")
}

// ApplyArgs interprets positional arguments the way the classic launcher did:
// an integer is the entity count and --noRender disables drawing. Anything else is logged and ignored.
func ApplyArgs(args []string, c *Config, logger *log.Logger) {
	for _, a := range args {
		switch {
		case strings.EqualFold(a, "--noRender"), strings.EqualFold(a, "-noRender"):
			c.Render = RenderNone
		default:
			setCount(&c.Count, a, logger)
		}
	}
}

// dropUnknown removes options fs does not define, and a trailing option missing its value,
// so flag parsing never stops on them. -h and -help are kept for the usage text.
func dropUnknown(fs *flag.FlagSet, args []string, logger *log.Logger) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || len(a) < 2 || a[0] != '-' {
			return append(out, args[i:]...)
		}
		name := strings.TrimLeft(a, "-")
		name, _, hasValue := strings.Cut(name, "=")
		if name == "h" || name == "help" {
			out = append(out, a)
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			logger.Printf("ignoring unknown option %q", a)
			continue
		}
		if bv, ok := f.Value.(interface{ IsBoolFlag() bool }); hasValue || (ok && bv.IsBoolFlag()) {
			out = append(out, a)
			continue
		}
		if i+1 == len(args) {
			logger.Printf("ignoring option %q without a value", a)
			continue
		}
		out = append(out, a, args[i+1])
		i++
	}
	return out
}

// Parse builds a Config from command line arguments (without the program name).
// Malformed or invalid options fall back to their defaults with a log line; the only error is
// flag.ErrHelp when usage was requested.
func Parse(args []string, logger *log.Logger) (Config, error) {
	c := Default()
	fs := flag.NewFlagSet("circles", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	Bind(fs, &c, logger)
	if err := fs.Parse(dropUnknown(fs, args, logger)); err != nil {
		return c, err
	}
	ApplyArgs(fs.Args(), &c, logger)
	if c.ReportInterval <= 0 {
		c.ReportInterval = DefaultReportInterval
	}
	if c.TPS <= 0 {
		c.TPS = DefaultTPS
	}
	if c.WindowSize <= 0 {
		c.WindowSize = DefaultWindowSize
	}
	if c.FixedDT < 0 || !finite(c.FixedDT) {
		logger.Printf("ignoring dt %g, measuring frame time", c.FixedDT)
		c.FixedDT = 0
	}
	if c.Duration < 0 {
		c.Duration = 0
	}
	c.Repair(logger)
	return c, nil
}
