package libvr

import (
	"fmt"
	"log"
)

// Provider enumerates the stereo displays of one backend.
type Provider interface {
	Name() string
	Displays() ([]Display, error)
}

// Discover returns the displays of every provider, in provider order.
// It fails with ErrUnsupported without providers and ErrNoDisplay when none are attached.
func Discover(providers ...Provider) ([]Display, error) {
	if len(providers) == 0 {
		return nil, ErrUnsupported
	}
	var displays []Display
	for _, p := range providers {
		found, err := p.Displays()
		if err != nil {
			log.Printf("Display provider %v failed: %v\n", p.Name(), err)
			continue
		}
		displays = append(displays, found...)
	}
	if len(displays) == 0 {
		return nil, ErrNoDisplay
	}
	return displays, nil
}

// FirstDisplay discovers displays and picks the first one.
func FirstDisplay(providers ...Provider) (Display, error) {
	displays, err := Discover(providers...)
	if err != nil {
		return nil, fmt.Errorf("discover displays: %w", err)
	}
	return displays[0], nil
}
