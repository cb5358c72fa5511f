package usbids

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// section identifies which top-level table subsequent records belong to.
// The file is a sequence of sections; every top-level line either carries a
// section marker ("C", "AT", "HUT", ...) or is a bare vendor ID, which is
// only legal before the first marker appears.
type section uint8

const (
	sectionVendors section = iota
	sectionClasses
	sectionAudioTerminals
	sectionHidDescriptorTypes
	sectionHidItemTypes
	sectionBiases
	sectionPhysicalItems
	sectionHidUsagePages
	sectionLanguages
	sectionHidCountryCodes
	sectionVideoTerminals
)

// sectionMarkers maps the marker token at column 0 to its section.
var sectionMarkers = map[string]section{
	"C":    sectionClasses,
	"AT":   sectionAudioTerminals,
	"HID":  sectionHidDescriptorTypes,
	"R":    sectionHidItemTypes,
	"BIAS": sectionBiases,
	"PHY":  sectionPhysicalItems,
	"HUT":  sectionHidUsagePages,
	"L":    sectionLanguages,
	"HCC":  sectionHidCountryCodes,
	"VT":   sectionVideoTerminals,
}

// Fixed hex widths per record kind. A token of any other width is malformed,
// even when it is valid hex.
const (
	widthVendor   = 4
	widthDevice   = 4
	widthIface    = 2
	widthClass    = 2
	widthSubclass = 2
	widthProtocol = 2
	widthAT       = 4
	widthHID      = 2
	widthR        = 2
	widthBias     = 1
	widthPhy      = 2
	widthHut      = 2
	widthUsage    = 3
	widthLang     = 4
	widthDialect  = 2
	widthHCC      = 2
	widthVT       = 4
)

// parser is the single-pass state machine over usb.ids lines: the current
// section plus one slot for the current top-level record and one for the
// current child record. Depth-0 lines reset both slots, depth-1 lines reset
// only the child slot.
type parser struct {
	db   *Database
	sect section
	line int

	curVendor   *Vendor
	curDevice   *Device
	curClass    *Class
	curSubclass *Subclass
	curPage     *HidUsagePage
	curLang     *Language

	// Seen-ID sets for the live child and grandchild scopes. Top-level
	// duplicates are caught by the table maps themselves.
	seenChildren *roaring.Bitmap
	seenGrand    *roaring.Bitmap
}

// Parse reads a complete usb.ids document and builds the database.
//
// The parser is strict: the first malformed line aborts the whole parse with
// a *ParseError. A partial database is never returned; a broken upstream
// file must halt regeneration, not silently ship corrupt data.
//
// Parsing is deterministic: identical input bytes always yield an identical
// record set, including iteration order.
func Parse(r io.Reader) (*Database, error) {
	p := &parser{db: newDatabase()}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		p.line++
		if err := p.processLine(strings.TrimSuffix(sc.Text(), "\r")); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p.db, nil
}

// ParseBytes is like Parse but reads from an in-memory document.
func ParseBytes(data []byte) (*Database, error) {
	return Parse(bytes.NewReader(data))
}

func (p *parser) processLine(line string) error {
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	depth := 0
	for depth < len(line) && line[depth] == '\t' {
		depth++
	}
	rest := line[depth:]
	if rest == "" {
		return nil
	}

	switch depth {
	case 0:
		return p.topLevel(rest)
	case 1:
		return p.child(rest)
	case 2:
		return p.grandchild(rest)
	default:
		return parseErrorf(p.line, ErrMalformedHierarchy, "indentation depth %d exceeds maximum of 2", depth)
	}
}

// topLevel handles a depth-0 line: either a marker-prefixed record, which
// also switches the current section, or a bare vendor record.
func (p *parser) topLevel(s string) error {
	token := s
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		token = s[:i]
	}

	if sect, ok := sectionMarkers[token]; ok {
		p.switchSection(sect)
		rest := s[len(token):]
		if rest == "" {
			return parseErrorf(p.line, ErrMalformedRecord, "%q marker without a record", token)
		}
		return p.topRecord(rest[1:])
	}

	if isHex(token) {
		if p.sect != sectionVendors {
			return parseErrorf(p.line, ErrUnknownSection, "vendor record after the vendor section has ended")
		}
		return p.topRecord(s)
	}

	return parseErrorf(p.line, ErrUnknownSection, "unrecognized section marker %q", token)
}

// topRecord parses the ID/name payload of a top-level line and installs it
// into the current section's table.
func (p *parser) topRecord(s string) error {
	switch p.sect {
	case sectionVendors:
		id, name, err := p.splitRecord(s, widthVendor)
		if err != nil {
			return err
		}
		v := &Vendor{entry: entry[uint16]{id: uint16(id), name: name}, byID: make(map[uint16]*Device)}
		if _, dup := p.db.vendors[v.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "vendor %04x", v.id)
		}
		p.db.vendors[v.id] = v
		p.db.vendorOrder = append(p.db.vendorOrder, v)
		p.curVendor, p.curDevice = v, nil
		p.resetChildScope()

	case sectionClasses:
		id, name, err := p.splitRecord(s, widthClass)
		if err != nil {
			return err
		}
		c := &Class{entry: entry[uint8]{id: uint8(id), name: name}, byID: make(map[uint8]*Subclass)}
		if _, dup := p.db.classes[c.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "class %02x", c.id)
		}
		p.db.classes[c.id] = c
		p.db.classOrder = append(p.db.classOrder, c)
		p.curClass, p.curSubclass = c, nil
		p.resetChildScope()

	case sectionAudioTerminals:
		id, name, err := p.splitRecord(s, widthAT)
		if err != nil {
			return err
		}
		t := &AudioTerminal{entry[uint16]{id: uint16(id), name: name}}
		if _, dup := p.db.audioTerminals[t.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "audio terminal %04x", t.id)
		}
		p.db.audioTerminals[t.id] = t
		p.db.audioTerminalOrder = append(p.db.audioTerminalOrder, t)

	case sectionHidDescriptorTypes:
		id, name, err := p.splitRecord(s, widthHID)
		if err != nil {
			return err
		}
		t := &HidDescriptorType{entry[uint8]{id: uint8(id), name: name}}
		if _, dup := p.db.hidDescriptorTypes[t.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "HID descriptor type %02x", t.id)
		}
		p.db.hidDescriptorTypes[t.id] = t
		p.db.hidDescriptorTypeOrder = append(p.db.hidDescriptorTypeOrder, t)

	case sectionHidItemTypes:
		id, name, err := p.splitRecord(s, widthR)
		if err != nil {
			return err
		}
		t := &HidItemType{entry[uint8]{id: uint8(id), name: name}}
		if _, dup := p.db.hidItemTypes[t.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "HID item type %02x", t.id)
		}
		p.db.hidItemTypes[t.id] = t
		p.db.hidItemTypeOrder = append(p.db.hidItemTypeOrder, t)

	case sectionBiases:
		id, name, err := p.splitRecord(s, widthBias)
		if err != nil {
			return err
		}
		b := &Bias{entry[uint8]{id: uint8(id), name: name}}
		if _, dup := p.db.biases[b.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "bias %x", b.id)
		}
		p.db.biases[b.id] = b
		p.db.biasOrder = append(p.db.biasOrder, b)

	case sectionPhysicalItems:
		id, name, err := p.splitRecord(s, widthPhy)
		if err != nil {
			return err
		}
		t := &PhysicalItem{entry[uint8]{id: uint8(id), name: name}}
		if _, dup := p.db.physicalItems[t.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "physical item %02x", t.id)
		}
		p.db.physicalItems[t.id] = t
		p.db.physicalItemOrder = append(p.db.physicalItemOrder, t)

	case sectionHidUsagePages:
		id, name, err := p.splitRecord(s, widthHut)
		if err != nil {
			return err
		}
		pg := &HidUsagePage{entry: entry[uint8]{id: uint8(id), name: name}, byID: make(map[uint16]*HidUsage)}
		if _, dup := p.db.hidUsagePages[pg.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "HID usage page %02x", pg.id)
		}
		p.db.hidUsagePages[pg.id] = pg
		p.db.hidUsagePageOrder = append(p.db.hidUsagePageOrder, pg)
		p.curPage = pg
		p.resetChildScope()

	case sectionLanguages:
		id, name, err := p.splitRecord(s, widthLang)
		if err != nil {
			return err
		}
		l := &Language{entry: entry[uint16]{id: uint16(id), name: name}, byID: make(map[uint8]*Dialect)}
		if _, dup := p.db.languages[l.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "language %04x", l.id)
		}
		p.db.languages[l.id] = l
		p.db.languageOrder = append(p.db.languageOrder, l)
		p.curLang = l
		p.resetChildScope()

	case sectionHidCountryCodes:
		id, name, err := p.splitRecord(s, widthHCC)
		if err != nil {
			return err
		}
		c := &HidCountryCode{entry[uint8]{id: uint8(id), name: name}}
		if _, dup := p.db.hidCountryCodes[c.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "HID country code %02x", c.id)
		}
		p.db.hidCountryCodes[c.id] = c
		p.db.hidCountryCodeOrder = append(p.db.hidCountryCodeOrder, c)

	case sectionVideoTerminals:
		id, name, err := p.splitRecord(s, widthVT)
		if err != nil {
			return err
		}
		t := &VideoTerminal{entry[uint16]{id: uint16(id), name: name}}
		if _, dup := p.db.videoTerminals[t.id]; dup {
			return parseErrorf(p.line, ErrDuplicateID, "video terminal %04x", t.id)
		}
		p.db.videoTerminals[t.id] = t
		p.db.videoTerminalOrder = append(p.db.videoTerminalOrder, t)
	}
	return nil
}

// child handles a depth-1 line: a record owned by the current top-level
// record of the section.
func (p *parser) child(s string) error {
	switch p.sect {
	case sectionVendors:
		if p.curVendor == nil {
			return parseErrorf(p.line, ErrMalformedHierarchy, "device record with no vendor")
		}
		id, name, err := p.splitRecord(s, widthDevice)
		if err != nil {
			return err
		}
		if !p.seenChildren.CheckedAdd(uint32(id)) {
			return parseErrorf(p.line, ErrDuplicateID, "device %04x under vendor %04x", id, p.curVendor.id)
		}
		d := &Device{
			entry:    entry[uint16]{id: uint16(id), name: name},
			vendorID: p.curVendor.id,
			byID:     make(map[uint8]*Interface),
		}
		p.curVendor.devices = append(p.curVendor.devices, d)
		p.curVendor.byID[d.id] = d
		p.curDevice = d
		p.seenGrand.Clear()

	case sectionClasses:
		if p.curClass == nil {
			return parseErrorf(p.line, ErrMalformedHierarchy, "subclass record with no class")
		}
		id, name, err := p.splitRecord(s, widthSubclass)
		if err != nil {
			return err
		}
		if !p.seenChildren.CheckedAdd(uint32(id)) {
			return parseErrorf(p.line, ErrDuplicateID, "subclass %02x under class %02x", id, p.curClass.id)
		}
		sc := &Subclass{
			entry:   entry[uint8]{id: uint8(id), name: name},
			classID: p.curClass.id,
			byID:    make(map[uint8]*Protocol),
		}
		p.curClass.subclasses = append(p.curClass.subclasses, sc)
		p.curClass.byID[sc.id] = sc
		p.curSubclass = sc
		p.seenGrand.Clear()

	case sectionHidUsagePages:
		if p.curPage == nil {
			return parseErrorf(p.line, ErrMalformedHierarchy, "usage record with no usage page")
		}
		id, name, err := p.splitRecord(s, widthUsage)
		if err != nil {
			return err
		}
		if !p.seenChildren.CheckedAdd(uint32(id)) {
			return parseErrorf(p.line, ErrDuplicateID, "usage %03x on page %02x", id, p.curPage.id)
		}
		u := &HidUsage{entry[uint16]{id: uint16(id), name: name}}
		p.curPage.usages = append(p.curPage.usages, u)
		p.curPage.byID[u.id] = u

	case sectionLanguages:
		if p.curLang == nil {
			return parseErrorf(p.line, ErrMalformedHierarchy, "dialect record with no language")
		}
		id, name, err := p.splitRecord(s, widthDialect)
		if err != nil {
			return err
		}
		if !p.seenChildren.CheckedAdd(uint32(id)) {
			return parseErrorf(p.line, ErrDuplicateID, "dialect %02x of language %04x", id, p.curLang.id)
		}
		d := &Dialect{entry[uint8]{id: uint8(id), name: name}}
		p.curLang.dialects = append(p.curLang.dialects, d)
		p.curLang.byID[d.id] = d

	default:
		return parseErrorf(p.line, ErrMalformedHierarchy, "child record in a flat section")
	}
	return nil
}

// grandchild handles a depth-2 line: interfaces under devices and protocols
// under subclasses. No other section nests this deep.
func (p *parser) grandchild(s string) error {
	switch p.sect {
	case sectionVendors:
		if p.curDevice == nil {
			return parseErrorf(p.line, ErrMalformedHierarchy, "interface record with no device")
		}
		id, name, err := p.splitRecord(s, widthIface)
		if err != nil {
			return err
		}
		if !p.seenGrand.CheckedAdd(uint32(id)) {
			return parseErrorf(p.line, ErrDuplicateID, "interface %02x on device %04x", id, p.curDevice.id)
		}
		i := &Interface{entry[uint8]{id: uint8(id), name: name}}
		p.curDevice.interfaces = append(p.curDevice.interfaces, i)
		p.curDevice.byID[i.id] = i

	case sectionClasses:
		if p.curSubclass == nil {
			return parseErrorf(p.line, ErrMalformedHierarchy, "protocol record with no subclass")
		}
		id, name, err := p.splitRecord(s, widthProtocol)
		if err != nil {
			return err
		}
		if !p.seenGrand.CheckedAdd(uint32(id)) {
			return parseErrorf(p.line, ErrDuplicateID, "protocol %02x under subclass %02x", id, p.curSubclass.id)
		}
		pr := &Protocol{entry[uint8]{id: uint8(id), name: name}}
		p.curSubclass.protocols = append(p.curSubclass.protocols, pr)
		p.curSubclass.byID[pr.id] = pr

	default:
		return parseErrorf(p.line, ErrMalformedHierarchy, "grandchild record in a flat section")
	}
	return nil
}

func (p *parser) switchSection(sect section) {
	p.sect = sect
	p.curVendor, p.curDevice = nil, nil
	p.curClass, p.curSubclass = nil, nil
	p.curPage, p.curLang = nil, nil
	p.resetChildScope()
}

func (p *parser) resetChildScope() {
	if p.seenChildren == nil {
		p.seenChildren = roaring.New()
		p.seenGrand = roaring.New()
		return
	}
	p.seenChildren.Clear()
	p.seenGrand.Clear()
}

// splitRecord splits "<id><sep><name>" where <id> is hex of exactly width
// digits and <sep> is two spaces (upstream convention) or one or more tabs.
func (p *parser) splitRecord(s string, width int) (uint64, string, error) {
	token := s
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		token = s[:i]
	}
	if len(token) != width || !isHex(token) {
		return 0, "", parseErrorf(p.line, ErrMalformedID, "%q is not %d-digit hex", token, width)
	}
	id, err := strconv.ParseUint(token, 16, 16)
	if err != nil {
		return 0, "", parseErrorf(p.line, ErrMalformedID, "%q: %v", token, err)
	}

	rest := s[len(token):]
	if !strings.HasPrefix(rest, "  ") && !strings.HasPrefix(rest, "\t") {
		return 0, "", parseErrorf(p.line, ErrMalformedRecord, "missing separator after ID %q", token)
	}
	name := strings.TrimSpace(rest)
	if name == "" {
		return 0, "", parseErrorf(p.line, ErrMalformedRecord, "record %q has no name", token)
	}
	return id, name, nil
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
