//go:build !darwin

package tray

import (
	"errors"
	"time"
)

var errNoDialog = errors.New("no native date dialog on this platform; use `pulse toggle date --target` instead")

func askDate(time.Time) (string, bool, error) {
	return "", false, errNoDialog
}
