package usbids

import (
	"fmt"
	"iter"
	"sync"

	"github.com/hupe1980/usbids/internal/compress"
)

// defaultDB decodes and parses the embedded snapshot at most once, even under
// concurrent first access. All access after that is lock-free.
var defaultDB = sync.OnceValues(func() (*Database, error) {
	raw, err := compress.Decompress(embeddedSnapshot)
	if err != nil {
		return nil, fmt.Errorf("usbids: decode embedded snapshot: %w", err)
	}
	db, err := ParseBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("usbids: parse embedded snapshot: %w", err)
	}
	return db, nil
})

// Default returns the database built from the embedded snapshot.
//
// The error is non-nil only if the snapshot compiled into the binary is
// corrupt, which the package's own tests rule out for released versions.
func Default() (*Database, error) {
	return defaultDB()
}

// mustDefault backs the package-level convenience functions. The embedded
// snapshot is validated by the test suite and the regeneration tool, so a
// failure here is a packaging bug, not a runtime condition.
func mustDefault() *Database {
	db, err := defaultDB()
	if err != nil {
		panic(err)
	}
	return db
}

// Vendors returns all vendors in the embedded database, in original file order.
func Vendors() iter.Seq[*Vendor] { return mustDefault().Vendors() }

// FindVendor returns the vendor with the given ID from the embedded database.
func FindVendor(id uint16) (*Vendor, bool) { return mustDefault().FindVendor(id) }

// FindDevice returns the device with the given vendor and product IDs from
// the embedded database.
func FindDevice(vid, pid uint16) (*Device, bool) { return mustDefault().FindDevice(vid, pid) }

// Classes returns all device classes in the embedded database.
func Classes() iter.Seq[*Class] { return mustDefault().Classes() }

// FindClass returns the class with the given ID from the embedded database.
func FindClass(id uint8) (*Class, bool) { return mustDefault().FindClass(id) }

// FindSubclass returns the subclass with the given class and subclass IDs
// from the embedded database.
func FindSubclass(cid, scid uint8) (*Subclass, bool) { return mustDefault().FindSubclass(cid, scid) }

// FindProtocol returns the protocol with the given class, subclass, and
// protocol IDs from the embedded database.
func FindProtocol(cid, scid, pid uint8) (*Protocol, bool) {
	return mustDefault().FindProtocol(cid, scid, pid)
}

// AudioTerminals returns all audio terminal types in the embedded database.
func AudioTerminals() iter.Seq[*AudioTerminal] { return mustDefault().AudioTerminals() }

// FindAudioTerminal returns the audio terminal type with the given ID from
// the embedded database.
func FindAudioTerminal(id uint16) (*AudioTerminal, bool) {
	return mustDefault().FindAudioTerminal(id)
}

// HidDescriptorTypes returns all HID descriptor types in the embedded database.
func HidDescriptorTypes() iter.Seq[*HidDescriptorType] { return mustDefault().HidDescriptorTypes() }

// FindHidDescriptorType returns the HID descriptor type with the given ID
// from the embedded database.
func FindHidDescriptorType(id uint8) (*HidDescriptorType, bool) {
	return mustDefault().FindHidDescriptorType(id)
}

// HidItemTypes returns all HID descriptor item types in the embedded database.
func HidItemTypes() iter.Seq[*HidItemType] { return mustDefault().HidItemTypes() }

// FindHidItemType returns the HID descriptor item type with the given ID
// from the embedded database.
func FindHidItemType(id uint8) (*HidItemType, bool) { return mustDefault().FindHidItemType(id) }

// Biases returns all physical descriptor bias types in the embedded database.
func Biases() iter.Seq[*Bias] { return mustDefault().Biases() }

// FindBias returns the bias type with the given ID from the embedded database.
func FindBias(id uint8) (*Bias, bool) { return mustDefault().FindBias(id) }

// PhysicalItems returns all physical descriptor item types in the embedded
// database.
func PhysicalItems() iter.Seq[*PhysicalItem] { return mustDefault().PhysicalItems() }

// FindPhysicalItem returns the physical descriptor item type with the given
// ID from the embedded database.
func FindPhysicalItem(id uint8) (*PhysicalItem, bool) { return mustDefault().FindPhysicalItem(id) }

// HidUsagePages returns all HID usage pages in the embedded database.
func HidUsagePages() iter.Seq[*HidUsagePage] { return mustDefault().HidUsagePages() }

// FindHidUsagePage returns the HID usage page with the given ID from the
// embedded database.
func FindHidUsagePage(id uint8) (*HidUsagePage, bool) { return mustDefault().FindHidUsagePage(id) }

// FindHidUsage returns the usage with the given page and usage IDs from the
// embedded database.
func FindHidUsage(page uint8, id uint16) (*HidUsage, bool) {
	return mustDefault().FindHidUsage(page, id)
}

// Languages returns all languages in the embedded database.
func Languages() iter.Seq[*Language] { return mustDefault().Languages() }

// FindLanguage returns the language with the given ID from the embedded
// database.
func FindLanguage(id uint16) (*Language, bool) { return mustDefault().FindLanguage(id) }

// FindDialect returns the dialect with the given language and dialect IDs
// from the embedded database.
func FindDialect(lid uint16, did uint8) (*Dialect, bool) { return mustDefault().FindDialect(lid, did) }

// HidCountryCodes returns all HID country codes in the embedded database.
func HidCountryCodes() iter.Seq[*HidCountryCode] { return mustDefault().HidCountryCodes() }

// FindHidCountryCode returns the HID country code with the given ID from the
// embedded database.
func FindHidCountryCode(id uint8) (*HidCountryCode, bool) {
	return mustDefault().FindHidCountryCode(id)
}

// VideoTerminals returns all video terminal types in the embedded database.
func VideoTerminals() iter.Seq[*VideoTerminal] { return mustDefault().VideoTerminals() }

// FindVideoTerminal returns the video terminal type with the given ID from
// the embedded database.
func FindVideoTerminal(id uint16) (*VideoTerminal, bool) {
	return mustDefault().FindVideoTerminal(id)
}
