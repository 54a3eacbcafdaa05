package disc

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pilebones/go-udev/netlink"

	"platter/internal/logging"
)

// Monitor waits for an audio disc to appear in the configured drive by
// listening for udev netlink events. This avoids polling the drive, which
// spins the disc up.
type Monitor struct {
	device string
	logger *slog.Logger
}

// NewMonitor creates a monitor for the given drive device.
func NewMonitor(device string, logger *slog.Logger) *Monitor {
	return &Monitor{
		device: strings.TrimSpace(device),
		logger: logging.NewComponentLogger(logger, "disc-monitor"),
	}
}

// WaitForDisc blocks until media is inserted into the monitored drive or
// the context is cancelled.
func (m *Monitor) WaitForDisc(ctx context.Context) error {
	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return errors.New("connect to udev netlink socket: " + err.Error())
	}
	defer conn.Close()

	queue := make(chan netlink.UEvent)
	errs := make(chan error)
	monitorQuit := conn.Monitor(queue, errs, m.matcher())
	defer close(monitorQuit)

	m.logger.Info("waiting for disc", logging.String("device", m.device))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case uevent := <-queue:
			if m.matchesDevice(uevent) {
				m.logger.Info("disc media detected", logging.String("device", m.device))
				return nil
			}
		case err := <-errs:
			m.logger.Warn("udev monitor error", logging.Error(err))
		}
	}
}

// matcher selects media-change events for CD-ROM block devices:
// SUBSYSTEM=block, ID_CDROM=1, ID_CDROM_MEDIA=1, ACTION=change|add.
func (m *Monitor) matcher() netlink.Matcher {
	action := "change|add"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM":      "block",
			"ID_CDROM":       "1",
			"ID_CDROM_MEDIA": "1",
		},
	})
	return rules
}

func (m *Monitor) matchesDevice(uevent netlink.UEvent) bool {
	devname := strings.TrimSpace(uevent.Env["DEVNAME"])
	if devname == "" {
		return false
	}
	if !strings.HasPrefix(devname, "/dev/") {
		devname = "/dev/" + devname
	}
	if m.device == "" {
		return true
	}
	return devname == m.device || filepath.Base(devname) == filepath.Base(m.device)
}
