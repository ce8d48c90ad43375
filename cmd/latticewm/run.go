package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lattice-wm/lattice/internal/config"
	"github.com/lattice-wm/lattice/internal/keysym"
	"github.com/lattice-wm/lattice/internal/layout"
	"github.com/lattice-wm/lattice/internal/restart"
	"github.com/lattice-wm/lattice/internal/stack"
	"github.com/lattice-wm/lattice/internal/wm"
	"github.com/lattice-wm/lattice/internal/x11"
)

// run implements the New/Init/Run/Close lifecycle the teacher's wm.WM
// follows (_examples/funkycode-marwind/wm/wm.go), generalized onto the
// stack-algebra WindowSet: connect, become the WM, load/recompile
// config, build or deserialize the initial state, reconcile it against
// the live window tree, grab bindings, publish EWMH hints, then run the
// event loop until Dispatch observes a restart or exit request.
func run(resumeBlob, configDirOverride string) error {
	log := newLogger()

	dir := configDirOverride
	if dir == "" {
		var err error
		dir, err = config.DefaultConfigDir()
		if err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("latticewm: creating config dir %s: %w", dir, err)
	}

	mgr := config.NewManager(dir)
	cfg, err := mgr.Load()
	if err != nil {
		return fmt.Errorf("latticewm: loading config: %w", err)
	}

	restartOpts := cfg.ToRestartOptions(dir)
	if resumeBlob == "" {
		// spec.md §6 "No arguments -> start normally, greet user by
		// re-compiling if config is stale, then run."
		if _, err := restart.Recompile(restartOpts, false, log); err != nil {
			log.WithError(err).Warn("recompile check failed, continuing with the running binary")
		}
	}

	conn, err := x11.Connect(log)
	if err != nil {
		return fmt.Errorf("latticewm: connecting to X: %w", err)
	}
	defer conn.Close()

	if err := conn.BecomeWM(); err != nil {
		return fmt.Errorf("latticewm: becoming window manager (is another one running?): %w", err)
	}

	km, err := keysym.Load(conn.X)
	if err != nil {
		return fmt.Errorf("latticewm: loading keyboard mapping: %w", err)
	}
	cfg.NumlockMask = preferNonZero(km.NumlockMask, cfg.NumlockMask)
	cfg.LockMask = preferNonZero(km.LockMask, cfg.LockMask)

	hints, err := x11.NewHints()
	if err != nil {
		log.WithError(err).Warn("failed to open EWMH hints connection, continuing without it")
		hints = nil
	} else {
		defer hints.Close()
		if err := hints.SupportingWMCheck("latticewm"); err != nil {
			log.WithError(err).Warn("failed to publish supporting-wm-check hint")
		}
	}

	windowSet, err := initialWindowSet(conn, cfg, resumeBlob)
	if err != nil {
		return fmt.Errorf("latticewm: building initial state: %w", err)
	}

	wmCfg, err := cfg.ToWMConfig()
	if err != nil {
		return fmt.Errorf("latticewm: resolving border colors: %w", err)
	}

	core := &wm.Core{
		Conn:   conn,
		Hints:  hints,
		State:  wm.NewState(windowSet),
		Config: wmCfg,
		Manage: nil, // spec.md §4.E default manage pipeline; no user hook wired in yet
		Log:    log,
	}

	if err := core.Reconcile(); err != nil {
		log.WithError(err).Warn("reconcile against live window tree failed")
	}

	restartAction := func(c *wm.Core) error {
		return doRestart(c, restartOpts, log)
	}
	core.Bindings = builtinBindings(km, restartAction)
	if err := core.GrabBindings(); err != nil {
		return fmt.Errorf("latticewm: grabbing key/button bindings: %w", err)
	}

	mgr.Watch(func(reloaded *config.Config) {
		if wc, err := reloaded.ToWMConfig(); err == nil {
			core.Config = wc
		}
		log.Info("daemon configuration reloaded")
	}, func(err error) {
		log.WithError(err).Warn("ignoring invalid configuration reload")
	})

	core.Refresh()
	return eventLoop(core)
}

// initialWindowSet either deserializes resumeBlob (a self-restart) or
// builds a fresh WindowSet from the configured workspace tags and the
// server's current Xinerama screen layout.
func initialWindowSet(conn *x11.Conn, cfg *config.Config, resumeBlob string) (stack.WindowSet, error) {
	if resumeBlob != "" {
		return restart.Deserialize(resumeBlob)
	}

	rects, err := conn.Screens()
	if err != nil {
		return stack.WindowSet{}, err
	}
	details := make([]stack.ScreenDetail, len(rects))
	gap := cfg.Gap()
	for i, r := range rects {
		details[i] = stack.ScreenDetail{Rect: r, Gap: gap}
	}
	ws, err := stack.New(cfg.Tags(), details, func() stack.Layout {
		return layout.NewChoose(layout.NewTall(1, 0.03, 0.5), layout.NewFull())
	})
	if err != nil {
		return stack.WindowSet{}, err
	}
	return *ws, nil
}

// doRestart is the internal hotkey's "restart" action (spec.md §4.F
// Restart): recompile (forced), release layout resources, serialize
// state, flush, and exec the new process image in place.
func doRestart(c *wm.Core, opts restart.Options, log *logrus.Entry) error {
	if _, err := restart.Recompile(opts, true, log); err != nil {
		return fmt.Errorf("restart: recompile: %w", err)
	}
	restart.ReleaseResourcesFrom(c.State.WindowSet, log)
	blob, err := restart.Serialize(c.State.WindowSet)
	if err != nil {
		return fmt.Errorf("restart: serialize: %w", err)
	}
	c.Conn.X.Sync()
	return restart.Exec(os.Args[0], []string{"--resume", blob})
}

// preferNonZero returns the server-derived modifier mask, falling back
// to the configured default when the server lookup comes back empty
// (some virtual displays report no Num_Lock-bound modifier at all).
func preferNonZero(derived, configured uint16) uint16 {
	if derived != 0 {
		return derived
	}
	return configured
}
