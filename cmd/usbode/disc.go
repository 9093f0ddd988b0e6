package main

import (
	"fmt"

	"github.com/usbode/usbode/cdrom"
	"github.com/usbode/usbode/internal/testmedia"
)

// buildDemoDisc synthesizes a two-track disc (a data track carrying a
// minimal ISO9660 filesystem, plus a CD-DA track) to back the serve and
// inspect commands when no CUE-sheet parser is wired in.
func buildDemoDisc() (*cdrom.DiscModel, *testmedia.Provider, error) {
	image, err := testmedia.BuildISO9660Image("USBODE", map[string][]byte{
		"README.TXT": []byte("usbode virtual disc\n"),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build disc image: %w", err)
	}
	disc, combined := testmedia.MixedDiscModel(image, 2)
	return disc, testmedia.NewProvider(combined), nil
}
