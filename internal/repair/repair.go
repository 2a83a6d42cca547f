// Package repair implements the best-effort self-healing action taken
// when every GPU probe fails: detect a host package manager and install
// the vendor query tools, so a probe may become viable on the next
// attempt. Whether to mutate the system at all is a policy decision, so
// the action sits behind a Strategy chosen at startup.
package repair

import (
	"context"
	"io"
	"log/slog"

	"github.com/luki/vitals/internal/runner"
)

// Strategy is a pluggable repair policy. Attempt must be safe to call
// repeatedly: it is re-armed every polling tick.
type Strategy interface {
	Attempt(ctx context.Context)
}

// Disabled is the no-consent policy: never touch the system.
type Disabled struct{}

func (Disabled) Attempt(context.Context) {}

// manager pairs a package manager binary with the tool packages it
// should install. First manager found on the host wins.
type manager struct {
	bin      string
	packages []string
}

var managers = []manager{
	{"apt-get", []string{"nvidia-utils", "radeontop", "lm-sensors"}},
	{"dnf", []string{"nvidia-settings", "radeontop", "lm-sensors"}},
	{"pacman", []string{"nvidia", "radeontop", "lm-sensors"}},
	{"zypper", []string{"nvidia-gl", "radeontop", "lm-sensors"}},
}

// PackageInstall installs GPU tooling through the first package manager
// present on the host.
type PackageInstall struct {
	Run runner.Runner
	Log *slog.Logger
}

// Attempt finds a package manager and installs the fixed package list
// for it. Individual install failures are tolerated silently: a package
// that is already installed, or simply unavailable on this distro, must
// not abort the rest. Success is never verified here; the caller's probe
// retry is the real check.
func (p PackageInstall) Attempt(ctx context.Context) {
	log := p.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, m := range managers {
		if _, err := p.Run.Run(ctx, "which", m.bin); err != nil {
			continue
		}
		log.Info("attempting dependency repair", "manager", m.bin)
		for _, pkg := range m.packages {
			if _, err := p.Run.Run(ctx, m.bin, "install", "-y", pkg); err != nil {
				log.Debug("package install failed", "package", pkg, "reason", err)
			}
		}
		return
	}
	log.Info("dependency repair skipped: no known package manager found")
}
