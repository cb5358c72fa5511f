package usbids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	db, err := Default()
	require.NoError(t, err)
	require.NotNil(t, db)

	again, err := Default()
	require.NoError(t, err)
	assert.Same(t, db, again)
}

func TestFindVendor(t *testing.T) {
	v, ok := FindVendor(0x1d6b)
	require.True(t, ok)
	assert.Equal(t, uint16(0x1d6b), v.ID())
	assert.Equal(t, "Linux Foundation", v.Name())

	_, ok = FindVendor(0x0000)
	assert.False(t, ok)
}

func TestFindDevice(t *testing.T) {
	d, ok := FindDevice(0x1d6b, 0x0002)
	require.True(t, ok)
	assert.Equal(t, "2.0 root hub", d.Name())

	vid, pid := d.VidPid()
	assert.Equal(t, uint16(0x1d6b), vid)
	assert.Equal(t, uint16(0x0002), pid)

	// The owning vendor is reconstructed by lookup, not a stored pointer.
	v, ok := FindVendor(d.VendorID())
	require.True(t, ok)
	assert.Equal(t, "Linux Foundation", v.Name())

	_, ok = FindDevice(0x1d6b, 0xffff)
	assert.False(t, ok)
	_, ok = FindDevice(0xffff, 0x0002)
	assert.False(t, ok)
}

func TestEveryVendorFindableByID(t *testing.T) {
	for v := range Vendors() {
		got, ok := FindVendor(v.ID())
		require.True(t, ok)
		assert.Same(t, v, got)

		for d := range v.Devices() {
			gotD, ok := FindDevice(v.ID(), d.ID())
			require.True(t, ok)
			assert.Same(t, d, gotD)
			assert.Equal(t, v.ID(), d.VendorID())
		}
	}
}

func TestClassTriplet(t *testing.T) {
	c, ok := FindClass(0x03)
	require.True(t, ok)
	assert.Equal(t, "Human Interface Device", c.Name())

	s, ok := FindSubclass(0x03, 0x01)
	require.True(t, ok)
	assert.Equal(t, "Boot Interface Subclass", s.Name())

	cid, scid := s.CidScid()
	assert.Equal(t, uint8(0x03), cid)
	assert.Equal(t, uint8(0x01), scid)

	p, ok := FindProtocol(0x03, 0x01, 0x01)
	require.True(t, ok)
	assert.Equal(t, "Keyboard", p.Name())

	p, ok = FindProtocol(0xff, 0xff, 0xff)
	require.True(t, ok)
	assert.Equal(t, "Vendor Specific Protocol", p.Name())

	_, ok = FindSubclass(0x3c, 0x02)
	assert.False(t, ok)
}

func TestFlatTables(t *testing.T) {
	at, ok := FindAudioTerminal(0x0713)
	require.True(t, ok)
	assert.Equal(t, "Synthesizer", at.Name())

	hid, ok := FindHidDescriptorType(0x22)
	require.True(t, ok)
	assert.Equal(t, "Report", hid.Name())

	r, ok := FindHidItemType(0xc0)
	require.True(t, ok)
	assert.Equal(t, "End Collection", r.Name())

	b, ok := FindBias(0x4)
	require.True(t, ok)
	assert.Equal(t, "Either Hand", b.Name())

	phy, ok := FindPhysicalItem(0x25)
	require.True(t, ok)
	assert.Equal(t, "Fifth Toe", phy.Name())

	cc, ok := FindHidCountryCode(0x00)
	require.True(t, ok)
	assert.Equal(t, "Not supported", cc.Name())

	vt, ok := FindVideoTerminal(0x0101)
	require.True(t, ok)
	assert.Equal(t, "USB Streaming", vt.Name())
}

func TestHidUsagePages(t *testing.T) {
	page, ok := FindHidUsagePage(0x0d)
	require.True(t, ok)
	assert.Equal(t, "Digitizer", page.Name())

	u, ok := page.FindUsage(0x001)
	require.True(t, ok)
	assert.Equal(t, "Digitizer", u.Name())

	u, ok = FindHidUsage(0x01, 0x002)
	require.True(t, ok)
	assert.Equal(t, "Mouse", u.Name())

	_, ok = FindHidUsage(0x01, 0x7ff)
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	l, ok := FindLanguage(0x0007)
	require.True(t, ok)
	assert.Equal(t, "German", l.Name())

	d, ok := l.FindDialect(0x02)
	require.True(t, ok)
	assert.Equal(t, "Swiss", d.Name())

	d, ok = FindDialect(0x0009, 0x01)
	require.True(t, ok)
	assert.Equal(t, "US", d.Name())

	_, ok = FindDialect(0x0007, 0x7f)
	assert.False(t, ok)
}

func TestVendorsSorted(t *testing.T) {
	// The embedded snapshot keeps upstream's ascending vendor order; the
	// iteration order is the file order either way.
	var prev uint16
	first := true
	for v := range Vendors() {
		if !first {
			assert.Greater(t, v.ID(), prev)
		}
		prev, first = v.ID(), false
	}
	assert.False(t, first, "embedded snapshot has no vendors")
}

func TestConcurrentFirstAccess(t *testing.T) {
	// Initialization is guarded; all readers must observe the same database.
	var wg sync.WaitGroup
	dbs := make([]*Database, 16)
	for i := range dbs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			db, err := Default()
			assert.NoError(t, err)
			dbs[i] = db
		}()
	}
	wg.Wait()

	for _, db := range dbs {
		assert.Same(t, dbs[0], db)
	}
}
