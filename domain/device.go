package domain

import "time"

// Device is a camera client, keyed by its network address.
type Device struct {
	ID         int64     `json:"id"`
	DeviceIP   string    `json:"device_ip"`
	DeviceSSID *string   `json:"device_ssid"`
	LastSeen   time.Time `json:"last_seen"`
	CreatedAt  time.Time `json:"created_at"`
}
