package usbids

import _ "embed"

// embeddedSnapshot is the vendored usb.ids snapshot. It may be checked in as
// plain text or as a zstd/lz4 frame; the loader sniffs the frame magic, so
// swapping the on-disk encoding needs no code change. Regenerate with
// cmd/usbidsgen.
//
//go:embed data/usb.ids
var embeddedSnapshot []byte
