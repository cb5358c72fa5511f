package usbids

import "iter"

// Database is an immutable, fully materialized USB ID database.
//
// Every top-level table is held twice: as a key→record map for O(1) lookup
// and as an order slice preserving first-appearance order for iteration.
// A Database is never mutated after Parse returns, so it is safe for any
// number of concurrent readers without locking.
type Database struct {
	vendors     map[uint16]*Vendor
	vendorOrder []*Vendor

	classes    map[uint8]*Class
	classOrder []*Class

	audioTerminals     map[uint16]*AudioTerminal
	audioTerminalOrder []*AudioTerminal

	hidDescriptorTypes     map[uint8]*HidDescriptorType
	hidDescriptorTypeOrder []*HidDescriptorType

	hidItemTypes     map[uint8]*HidItemType
	hidItemTypeOrder []*HidItemType

	biases    map[uint8]*Bias
	biasOrder []*Bias

	physicalItems     map[uint8]*PhysicalItem
	physicalItemOrder []*PhysicalItem

	hidUsagePages     map[uint8]*HidUsagePage
	hidUsagePageOrder []*HidUsagePage

	languages     map[uint16]*Language
	languageOrder []*Language

	hidCountryCodes     map[uint8]*HidCountryCode
	hidCountryCodeOrder []*HidCountryCode

	videoTerminals     map[uint16]*VideoTerminal
	videoTerminalOrder []*VideoTerminal
}

func newDatabase() *Database {
	return &Database{
		vendors:            make(map[uint16]*Vendor),
		classes:            make(map[uint8]*Class),
		audioTerminals:     make(map[uint16]*AudioTerminal),
		hidDescriptorTypes: make(map[uint8]*HidDescriptorType),
		hidItemTypes:       make(map[uint8]*HidItemType),
		biases:             make(map[uint8]*Bias),
		physicalItems:      make(map[uint8]*PhysicalItem),
		hidUsagePages:      make(map[uint8]*HidUsagePage),
		languages:          make(map[uint16]*Language),
		hidCountryCodes:    make(map[uint8]*HidCountryCode),
		videoTerminals:     make(map[uint16]*VideoTerminal),
	}
}

// Vendors returns all vendors in original file order.
func (db *Database) Vendors() iter.Seq[*Vendor] { return seqOf(db.vendorOrder) }

// FindVendor returns the vendor with the given ID.
// The second return value reports whether the vendor is known; an unknown ID
// is a normal outcome, not an error.
func (db *Database) FindVendor(id uint16) (*Vendor, bool) {
	v, ok := db.vendors[id]
	return v, ok
}

// FindDevice returns the device with the given vendor and product IDs.
// Equivalent to FindVendor(vid) followed by Vendor.FindDevice(pid).
func (db *Database) FindDevice(vid, pid uint16) (*Device, bool) {
	v, ok := db.vendors[vid]
	if !ok {
		return nil, false
	}
	return v.FindDevice(pid)
}

// Classes returns all device classes in original file order.
func (db *Database) Classes() iter.Seq[*Class] { return seqOf(db.classOrder) }

// FindClass returns the class with the given ID.
func (db *Database) FindClass(id uint8) (*Class, bool) {
	c, ok := db.classes[id]
	return c, ok
}

// FindSubclass returns the subclass with the given class and subclass IDs.
func (db *Database) FindSubclass(cid, scid uint8) (*Subclass, bool) {
	c, ok := db.classes[cid]
	if !ok {
		return nil, false
	}
	return c.FindSubclass(scid)
}

// FindProtocol returns the protocol with the given class, subclass, and
// protocol IDs.
func (db *Database) FindProtocol(cid, scid, pid uint8) (*Protocol, bool) {
	s, ok := db.FindSubclass(cid, scid)
	if !ok {
		return nil, false
	}
	return s.FindProtocol(pid)
}

// AudioTerminals returns all audio terminal types in original file order.
func (db *Database) AudioTerminals() iter.Seq[*AudioTerminal] {
	return seqOf(db.audioTerminalOrder)
}

// FindAudioTerminal returns the audio terminal type with the given ID.
func (db *Database) FindAudioTerminal(id uint16) (*AudioTerminal, bool) {
	t, ok := db.audioTerminals[id]
	return t, ok
}

// HidDescriptorTypes returns all HID descriptor types in original file order.
func (db *Database) HidDescriptorTypes() iter.Seq[*HidDescriptorType] {
	return seqOf(db.hidDescriptorTypeOrder)
}

// FindHidDescriptorType returns the HID descriptor type with the given ID.
func (db *Database) FindHidDescriptorType(id uint8) (*HidDescriptorType, bool) {
	t, ok := db.hidDescriptorTypes[id]
	return t, ok
}

// HidItemTypes returns all HID descriptor item types in original file order.
func (db *Database) HidItemTypes() iter.Seq[*HidItemType] {
	return seqOf(db.hidItemTypeOrder)
}

// FindHidItemType returns the HID descriptor item type with the given ID.
func (db *Database) FindHidItemType(id uint8) (*HidItemType, bool) {
	t, ok := db.hidItemTypes[id]
	return t, ok
}

// Biases returns all physical descriptor bias types in original file order.
func (db *Database) Biases() iter.Seq[*Bias] { return seqOf(db.biasOrder) }

// FindBias returns the bias type with the given ID.
func (db *Database) FindBias(id uint8) (*Bias, bool) {
	b, ok := db.biases[id]
	return b, ok
}

// PhysicalItems returns all physical descriptor item types in original file
// order.
func (db *Database) PhysicalItems() iter.Seq[*PhysicalItem] {
	return seqOf(db.physicalItemOrder)
}

// FindPhysicalItem returns the physical descriptor item type with the given ID.
func (db *Database) FindPhysicalItem(id uint8) (*PhysicalItem, bool) {
	t, ok := db.physicalItems[id]
	return t, ok
}

// HidUsagePages returns all HID usage pages in original file order.
func (db *Database) HidUsagePages() iter.Seq[*HidUsagePage] {
	return seqOf(db.hidUsagePageOrder)
}

// FindHidUsagePage returns the HID usage page with the given ID.
func (db *Database) FindHidUsagePage(id uint8) (*HidUsagePage, bool) {
	p, ok := db.hidUsagePages[id]
	return p, ok
}

// FindHidUsage returns the usage with the given page and usage IDs.
func (db *Database) FindHidUsage(page uint8, id uint16) (*HidUsage, bool) {
	p, ok := db.hidUsagePages[page]
	if !ok {
		return nil, false
	}
	return p.FindUsage(id)
}

// Languages returns all languages in original file order.
func (db *Database) Languages() iter.Seq[*Language] { return seqOf(db.languageOrder) }

// FindLanguage returns the language with the given ID.
func (db *Database) FindLanguage(id uint16) (*Language, bool) {
	l, ok := db.languages[id]
	return l, ok
}

// FindDialect returns the dialect with the given language and dialect IDs.
func (db *Database) FindDialect(lid uint16, did uint8) (*Dialect, bool) {
	l, ok := db.languages[lid]
	if !ok {
		return nil, false
	}
	return l.FindDialect(did)
}

// HidCountryCodes returns all HID country codes in original file order.
func (db *Database) HidCountryCodes() iter.Seq[*HidCountryCode] {
	return seqOf(db.hidCountryCodeOrder)
}

// FindHidCountryCode returns the HID country code with the given ID.
func (db *Database) FindHidCountryCode(id uint8) (*HidCountryCode, bool) {
	c, ok := db.hidCountryCodes[id]
	return c, ok
}

// VideoTerminals returns all video terminal types in original file order.
func (db *Database) VideoTerminals() iter.Seq[*VideoTerminal] {
	return seqOf(db.videoTerminalOrder)
}

// FindVideoTerminal returns the video terminal type with the given ID.
func (db *Database) FindVideoTerminal(id uint16) (*VideoTerminal, bool) {
	t, ok := db.videoTerminals[id]
	return t, ok
}
