// Package usbids vendors the USB ID Repository as an embedded, queryable,
// read-only database.
//
// The USB ID Repository (usb.ids) is the canonical source of USB vendor,
// device, and class naming for most Linux userspaces. This package embeds a
// snapshot of it and exposes pure lookups over the parsed tables, so any Go
// program can resolve IDs without network or filesystem access at runtime.
//
// # Quick Start
//
// Resolving a plugged-in device:
//
//	if dev, ok := usbids.FindDevice(0x1d6b, 0x0002); ok {
//	    fmt.Println(dev.Name()) // "2.0 root hub"
//	}
//
// Iterating over all known vendors:
//
//	for vendor := range usbids.Vendors() {
//	    for device := range vendor.Devices() {
//	        fmt.Println(vendor.Name(), device.Name())
//	    }
//	}
//
// Walking the class/subclass/protocol triplet:
//
//	for class := range usbids.Classes() {
//	    for subclass := range class.Subclasses() {
//	        for protocol := range subclass.Protocols() {
//	            fmt.Println(class.Name(), subclass.Name(), protocol.Name())
//	        }
//	    }
//	}
//
// # Query Model
//
// Every top-level table supports ordered iteration (original file order) and
// O(1) lookup by key; hierarchical tables additionally expose their children
// and composite lookups (FindDevice, FindSubclass, FindProtocol, FindHidUsage,
// FindDialect). A miss is reported as (zero, false); unknown IDs are a
// normal, frequent outcome, never an error.
//
// The embedded snapshot is parsed once, on first use, behind a one-time
// initialization guard; every query after that is a lock-free read over
// immutable state, safe for arbitrarily many concurrent readers.
//
// Parse is exported for callers who want to load a newer usb.ids revision
// than the vendored one:
//
//	db, err := usbids.Parse(f)
//	if err != nil {
//	    return err
//	}
//	v, ok := db.FindVendor(0x05ac)
//
// # Keeping the Snapshot Fresh
//
// The snapshot under data/ is refreshed offline with cmd/usbidsgen, which
// fetches the upstream database from one or more mirrors (see the feed
// package), validates it by fully parsing it, and rewrites the embedded file.
// None of that machinery is linked into consumers of this package.
package usbids
