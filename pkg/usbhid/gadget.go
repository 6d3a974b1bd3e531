// SPDX-License-Identifier: BSD-3-Clause

//go:build linux
// +build linux

package usbhid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

const (
	configfsPath = "/sys/kernel/config"
	gadgetPath   = "/sys/kernel/config/usb_gadget"
	udcPath      = "/sys/class/udc"
)

// CreateGadget creates the configfs tree for cfg: a boot keyboard function
// at functions/hid.usb0, an optional composite mouse/consumer/system
// function at functions/hid.usb1 (cfg.EnableExtra), and an optional Vial
// raw HID function at functions/hid.usb2 (cfg.EnableVial).
func CreateGadget(cfg *GadgetConfig) error {
	if cfg == nil || cfg.Name == "" {
		return ErrInvalidConfig
	}
	if err := ensureConfigFSMounted(); err != nil {
		return err
	}

	gadgetDir := filepath.Join(gadgetPath, cfg.Name)
	if _, err := os.Stat(gadgetDir); err == nil {
		return ErrGadgetExists
	}
	if err := os.MkdirAll(gadgetDir, 0755); err != nil {
		return wrapFSErr(err, "create gadget directory")
	}

	if err := writeGadgetAttributes(gadgetDir, cfg); err != nil {
		os.RemoveAll(gadgetDir) //nolint:errcheck
		return err
	}
	if err := createStringDescriptors(gadgetDir, cfg); err != nil {
		os.RemoveAll(gadgetDir) //nolint:errcheck
		return err
	}

	configDir := filepath.Join(gadgetDir, "configs/c.1")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		os.RemoveAll(gadgetDir) //nolint:errcheck
		return wrapFSErr(err, "create configuration directory")
	}
	if err := writeConfigAttributes(configDir, cfg); err != nil {
		os.RemoveAll(gadgetDir) //nolint:errcheck
		return err
	}

	if err := createKeyboardFunction(gadgetDir, configDir); err != nil {
		os.RemoveAll(gadgetDir) //nolint:errcheck
		return err
	}
	if cfg.EnableExtra {
		if err := createExtraFunction(gadgetDir, configDir); err != nil {
			os.RemoveAll(gadgetDir) //nolint:errcheck
			return err
		}
	}
	if cfg.EnableVial {
		if err := createVialFunction(gadgetDir, configDir); err != nil {
			os.RemoveAll(gadgetDir) //nolint:errcheck
			return err
		}
	}

	return nil
}

// DestroyGadget unbinds (if necessary) and removes the gadget's configfs tree.
func DestroyGadget(name string) error {
	if name == "" {
		return ErrInvalidConfig
	}
	gadgetDir := filepath.Join(gadgetPath, name)
	if _, err := os.Stat(gadgetDir); os.IsNotExist(err) {
		return ErrGadgetNotFound
	}
	if err := UnbindGadget(name); err != nil && err != ErrGadgetNotBound {
		return fmt.Errorf("unbind gadget: %w", err)
	}
	if err := os.RemoveAll(gadgetDir); err != nil {
		return wrapFSErr(err, "remove gadget directory")
	}
	return nil
}

// BindGadget attaches the gadget to the first available UDC.
func BindGadget(name string) error {
	if name == "" {
		return ErrInvalidConfig
	}
	gadgetDir := filepath.Join(gadgetPath, name)
	if _, err := os.Stat(gadgetDir); os.IsNotExist(err) {
		return ErrGadgetNotFound
	}
	udc, err := findAvailableUDC()
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(gadgetDir, "UDC"), udc); err != nil {
		return fmt.Errorf("bind gadget to UDC: %w", err)
	}
	return nil
}

// UnbindGadget detaches the gadget from its UDC, if bound.
func UnbindGadget(name string) error {
	if name == "" {
		return ErrInvalidConfig
	}
	gadgetDir := filepath.Join(gadgetPath, name)
	if _, err := os.Stat(gadgetDir); os.IsNotExist(err) {
		return ErrGadgetNotFound
	}
	if err := writeFile(filepath.Join(gadgetDir, "UDC"), ""); err != nil {
		return fmt.Errorf("unbind gadget from UDC: %w", err)
	}
	return nil
}

// GetGadgetStatus reports the gadget's current bind state.
func GetGadgetStatus(name string) (*GadgetStatus, error) {
	if name == "" {
		return nil, ErrInvalidConfig
	}
	gadgetDir := filepath.Join(gadgetPath, name)
	if _, err := os.Stat(gadgetDir); os.IsNotExist(err) {
		return nil, ErrGadgetNotFound
	}

	status := &GadgetStatus{Name: name}
	udc, err := readFile(filepath.Join(gadgetDir, "UDC"))
	if err != nil {
		return nil, fmt.Errorf("read UDC file: %w", err)
	}
	udc = strings.TrimSpace(udc)
	if udc != "" {
		status.Bound = true
		status.UDC = udc
		if state, err := readFile(filepath.Join(udcPath, udc, "state")); err == nil {
			status.State = strings.TrimSpace(state)
		}
	}
	return status, nil
}

func ensureConfigFSMounted() error {
	if _, err := os.Stat(configfsPath); os.IsNotExist(err) {
		return ErrConfigFSNotMounted
	}
	if _, err := os.Stat(gadgetPath); os.IsNotExist(err) {
		return ErrConfigFSNotMounted
	}
	return nil
}

func writeGadgetAttributes(gadgetDir string, cfg *GadgetConfig) error {
	attrs := map[string]string{
		"bcdUSB":    "0x0200",
		"idVendor":  cfg.VendorID,
		"idProduct": cfg.ProductID,
		"bcdDevice": "0x0100",
	}
	for attr, value := range attrs {
		if err := writeFile(filepath.Join(gadgetDir, attr), value); err != nil {
			return fmt.Errorf("write %s: %w", attr, err)
		}
	}
	return nil
}

func createStringDescriptors(gadgetDir string, cfg *GadgetConfig) error {
	stringsDir := filepath.Join(gadgetDir, "strings/0x409")
	if err := os.MkdirAll(stringsDir, 0755); err != nil {
		return wrapFSErr(err, "create strings directory")
	}
	strs := map[string]string{
		"serialnumber": cfg.SerialNumber,
		"manufacturer": cfg.Manufacturer,
		"product":      cfg.Product,
	}
	for name, value := range strs {
		if err := writeFile(filepath.Join(stringsDir, name), value); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func writeConfigAttributes(configDir string, cfg *GadgetConfig) error {
	maxPower := cfg.MaxPower
	if maxPower == 0 {
		maxPower = DefaultMaxPower
	}
	if err := writeFile(filepath.Join(configDir, "MaxPower"), fmt.Sprintf("%d", maxPower)); err != nil {
		return fmt.Errorf("write MaxPower: %w", err)
	}
	stringsDir := filepath.Join(configDir, "strings/0x409")
	if err := os.MkdirAll(stringsDir, 0755); err != nil {
		return wrapFSErr(err, "create config strings directory")
	}
	return writeFile(filepath.Join(stringsDir, "configuration"), "Config 1: HID keyboard")
}

func findAvailableUDC() (string, error) {
	entries, err := os.ReadDir(udcPath)
	if err != nil {
		return "", ErrUDCNotFound
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		state, err := readFile(filepath.Join(udcPath, entry.Name(), "state"))
		if err == nil && strings.TrimSpace(state) == "not attached" {
			return entry.Name(), nil
		}
	}
	return "", ErrUDCNotFound
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return wrapFSErr(err, "write "+path)
	}
	return nil
}

func readFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", wrapFSErr(err, "read "+path)
	}
	return string(content), nil
}

func wrapFSErr(err error, action string) error {
	if os.IsPermission(err) {
		return ErrPermissionDenied
	}
	if pathErr, ok := err.(*os.PathError); ok && pathErr.Err == syscall.ENOENT {
		return fmt.Errorf("%s: %w", action, ErrHIDDeviceNotFound)
	}
	return fmt.Errorf("%s: %w", action, err)
}
