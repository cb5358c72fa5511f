package usbids

import "iter"

// idKey is the set of key widths used by the USB ID database. Vendor, device,
// audio terminal, HID usage, language, and video terminal IDs are 16-bit;
// everything else is 8-bit.
type idKey interface {
	~uint8 | ~uint16
}

// entry is the common ID/name pair embedded by every record type.
// Fields are unexported: all records are immutable once the database is built.
type entry[K idKey] struct {
	id   K
	name string
}

// ID returns the record's numeric ID.
func (e entry[K]) ID() K { return e.id }

// Name returns the record's display name.
func (e entry[K]) Name() string { return e.name }

// Vendor is a device vendor in the USB database.
//
// Every vendor has a 16-bit vendor ID, a display name, and the devices
// registered under it, in original file order.
type Vendor struct {
	entry[uint16]
	devices []*Device
	byID    map[uint16]*Device
}

// Devices returns the vendor's devices in original file order.
// The sequence is restartable; ranging over it again starts from the top.
func (v *Vendor) Devices() iter.Seq[*Device] { return seqOf(v.devices) }

// FindDevice returns the vendor's device with the given product ID.
// The second return value reports whether the device is known.
func (v *Vendor) FindDevice(pid uint16) (*Device, bool) {
	d, ok := v.byID[pid]
	return d, ok
}

// Device is a single product in the USB database.
//
// A device belongs to exactly one vendor. The vendor is not referenced
// directly; VendorID plus a vendor lookup reconstructs it in O(1).
type Device struct {
	entry[uint16]
	vendorID   uint16
	interfaces []*Interface
	byID       map[uint8]*Interface
}

// VendorID returns the ID of the vendor this device belongs to.
func (d *Device) VendorID() uint16 { return d.vendorID }

// VidPid returns the (vendor ID, product ID) pair for this device.
// Convenient for interactions with other USB libraries.
func (d *Device) VidPid() (uint16, uint16) { return d.vendorID, d.id }

// Interfaces returns the device's interfaces in original file order.
//
// The upstream database carries interface information for very few devices;
// this list is not authoritative.
func (d *Device) Interfaces() iter.Seq[*Interface] { return seqOf(d.interfaces) }

// FindInterface returns the device's interface with the given ID.
func (d *Device) FindInterface(id uint8) (*Interface, bool) {
	i, ok := d.byID[id]
	return i, ok
}

// Interface is an interface of a device in the USB database.
type Interface struct {
	entry[uint8]
}

// Class is a device class in the USB database, the top level of the USB
// class/subclass/protocol triplet.
type Class struct {
	entry[uint8]
	subclasses []*Subclass
	byID       map[uint8]*Subclass
}

// Subclasses returns the class's subclasses in original file order.
func (c *Class) Subclasses() iter.Seq[*Subclass] { return seqOf(c.subclasses) }

// FindSubclass returns the class's subclass with the given ID.
func (c *Class) FindSubclass(id uint8) (*Subclass, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Subclass is a class subclass in the USB database.
//
// A subclass belongs to exactly one class, reachable via ClassID.
type Subclass struct {
	entry[uint8]
	classID   uint8
	protocols []*Protocol
	byID      map[uint8]*Protocol
}

// ClassID returns the ID of the class this subclass belongs to.
func (s *Subclass) ClassID() uint8 { return s.classID }

// CidScid returns the (class ID, subclass ID) pair for this subclass.
func (s *Subclass) CidScid() (uint8, uint8) { return s.classID, s.id }

// Protocols returns the subclass's protocols in original file order.
//
// Neither the database nor USB-IF lists protocols for every subclass;
// this list is not authoritative.
func (s *Subclass) Protocols() iter.Seq[*Protocol] { return seqOf(s.protocols) }

// FindProtocol returns the subclass's protocol with the given ID.
func (s *Subclass) FindProtocol(id uint8) (*Protocol, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Protocol is a subclass protocol in the USB database, the last element of
// the class/subclass/protocol triplet.
type Protocol struct {
	entry[uint8]
}

// AudioTerminal is an audio terminal type ("AT" section).
type AudioTerminal struct {
	entry[uint16]
}

// HidDescriptorType is a HID descriptor type ("HID" section).
type HidDescriptorType struct {
	entry[uint8]
}

// HidItemType is a HID descriptor item type ("R" section).
type HidItemType struct {
	entry[uint8]
}

// Bias is a physical descriptor bias type ("BIAS" section).
type Bias struct {
	entry[uint8]
}

// PhysicalItem is a physical descriptor item type ("PHY" section).
type PhysicalItem struct {
	entry[uint8]
}

// HidUsagePage is a HID usage page ("HUT" section). Every page owns the
// usages defined on it.
type HidUsagePage struct {
	entry[uint8]
	usages []*HidUsage
	byID   map[uint16]*HidUsage
}

// Usages returns the page's usages in original file order.
func (p *HidUsagePage) Usages() iter.Seq[*HidUsage] { return seqOf(p.usages) }

// FindUsage returns the page's usage with the given ID.
func (p *HidUsagePage) FindUsage(id uint16) (*HidUsage, bool) {
	u, ok := p.byID[id]
	return u, ok
}

// HidUsage is a HID usage on a usage page.
type HidUsage struct {
	entry[uint16]
}

// Language is a string descriptor language ("L" section). Every language
// owns its dialects.
type Language struct {
	entry[uint16]
	dialects []*Dialect
	byID     map[uint8]*Dialect
}

// Dialects returns the language's dialects in original file order.
func (l *Language) Dialects() iter.Seq[*Dialect] { return seqOf(l.dialects) }

// FindDialect returns the language's dialect with the given ID.
func (l *Language) FindDialect(id uint8) (*Dialect, bool) {
	d, ok := l.byID[id]
	return d, ok
}

// Dialect is a dialect of a language.
type Dialect struct {
	entry[uint8]
}

// HidCountryCode is a HID descriptor country code ("HCC" section).
type HidCountryCode struct {
	entry[uint8]
}

// VideoTerminal is a video class terminal type ("VT" section).
type VideoTerminal struct {
	entry[uint16]
}

// seqOf adapts an ordered slice to a restartable iter.Seq.
func seqOf[T any](s []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}
