package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"
)

// UnknownDevice is reported when no network interface has a hardware address.
const UnknownDevice = "UNKNOWN-DEVICE"

// GetDeviceID hashes the MAC address of the first active interface into a
// short id like "GP-A1B2C3D4" that the lock screen shows for support calls.
func GetDeviceID() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return UnknownDevice
	}

	var macAddress string
	for _, i := range interfaces {
		if i.Flags&net.FlagUp != 0 && i.Flags&net.FlagLoopback == 0 && len(i.HardwareAddr) > 0 {
			macAddress = i.HardwareAddr.String()
			break
		}
	}
	return deviceID(macAddress)
}

func deviceID(macAddress string) string {
	if macAddress == "" {
		return UnknownDevice
	}
	hash := sha256.Sum256([]byte(macAddress + "GESTORPRO-SALT"))
	return "GP-" + strings.ToUpper(hex.EncodeToString(hash[:])[:8])
}
