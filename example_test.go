package usbids_test

import (
	"fmt"

	"github.com/hupe1980/usbids"
)

// Example_findDevice resolves a vendor/product ID pair to display names.
func Example_findDevice() {
	vendor, ok := usbids.FindVendor(0x1d6b)
	if !ok {
		panic("unknown vendor")
	}
	device, ok := vendor.FindDevice(0x0002)
	if !ok {
		panic("unknown device")
	}
	fmt.Println(vendor.Name(), "/", device.Name())
	// Output: Linux Foundation / 2.0 root hub
}

// Example_unknownDevice shows that a miss is a normal outcome, not an error.
func Example_unknownDevice() {
	_, ok := usbids.FindDevice(0xdead, 0xbeef)
	fmt.Println(ok)
	// Output: false
}

// Example_classTriplet walks the class/subclass/protocol taxonomy.
func Example_classTriplet() {
	protocol, ok := usbids.FindProtocol(0x03, 0x01, 0x01)
	if !ok {
		panic("unknown protocol")
	}
	subclass, _ := usbids.FindSubclass(0x03, 0x01)
	class, _ := usbids.FindClass(0x03)
	fmt.Printf("%s > %s > %s\n", class.Name(), subclass.Name(), protocol.Name())
	// Output: Human Interface Device > Boot Interface Subclass > Keyboard
}

// Example_iterate lists a vendor's devices in original file order.
func Example_iterate() {
	vendor, _ := usbids.FindVendor(0x1d6b)
	for device := range vendor.Devices() {
		fmt.Println(device.Name())
	}
	// Output:
	// 1.1 root hub
	// 2.0 root hub
	// 3.0 root hub
}
