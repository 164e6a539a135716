package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/reflex/internal/config"
	"github.com/vovakirdan/reflex/internal/device"
	"github.com/vovakirdan/reflex/internal/game"
	"github.com/vovakirdan/reflex/internal/highscore"
)

// HandheldOptions selects how one emulated handheld is hosted.
type HandheldOptions struct {
	Player   string // recorded with every run
	Seed     int64  // 0 seeds from the clock
	NoAccel  bool   // emulate a handheld without accelerometer
	Logger   *log.Logger
	Recorder game.Recorder
}

// Handheld is a virtual device together with the machine that plays on it.
type Handheld struct {
	Virtual *device.Virtual
	Machine *game.Machine
}

// NewHandheld builds a virtual handheld from cfg. Several handhelds may
// share one ledger.
func NewHandheld(cfg config.Config, ledger *highscore.Ledger, opts HandheldOptions) *Handheld {
	vcfg := cfg.Virtual()
	vcfg.Seed = opts.Seed
	if opts.NoAccel {
		vcfg.Accelerometer = false
	}
	virt := device.NewVirtual(vcfg, nil)

	setup := cfg.Setup()
	setup.Options.Player = opts.Player
	setup.Seed = opts.Seed
	setup.Logger = opts.Logger
	setup.Recorder = opts.Recorder

	return &Handheld{
		Virtual: virt,
		Machine: game.Assemble(virt.Device(), ledger, setup),
	}
}

// HasAccel reports whether the handheld has an accelerometer.
func (h *Handheld) HasAccel() bool {
	return h.Virtual.Device().HasAccel()
}
