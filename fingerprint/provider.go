// Package fingerprint is the boundary to the device-fingerprinting widget.
// Like the CAPTCHA, the real widget is an opaque external service; this
// package only defines the narrow interface the signup payload needs.
package fingerprint

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"runtime"
)

// Device is the identity triple attached to the account-creation payload.
type Device struct {
	Fingerprint string
	IPAddress   string
	UserAgent   string
}

// Provider produces the device identity for the current environment.
type Provider interface {
	Device(ctx context.Context) (Device, error)
}

// StaticProvider returns a fixed device. Useful for tests.
type StaticProvider struct {
	Value Device
}

func (p StaticProvider) Device(_ context.Context) (Device, error) {
	return p.Value, nil
}

// HostProvider derives a stable fingerprint from host attributes. It is a
// deterministic stand-in for the real widget in non-browser deployments.
type HostProvider struct {
	AppName string
}

func (p HostProvider) Device(_ context.Context) (Device, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}

	sum := sha256.Sum256([]byte(hostname + "|" + runtime.GOOS + "|" + runtime.GOARCH))

	return Device{
		Fingerprint: hex.EncodeToString(sum[:]),
		IPAddress:   "0.0.0.0", // Resolved by the backend from the connection
		UserAgent:   p.AppName + " (" + runtime.GOOS + "; " + runtime.GOARCH + ")",
	}, nil
}
