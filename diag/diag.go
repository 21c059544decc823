// Package diag verifies I2C wiring and bus health: device node
// permissions, a full bus scan and per-sensor probes. Checks return
// structured results; printing remediation guidance is left to the CLI.
package diag

import (
	"context"
	"fmt"
	"os"

	iotkit "github.com/koninico/iot-kit"
	"github.com/koninico/iot-kit/environment"
	"github.com/koninico/iot-kit/proximity"
	"github.com/koninico/iot-kit/register"
)

// Scanner is the part of the bus transport the full-bus scan needs.
type Scanner interface {
	Scan(ctx context.Context) ([]byte, error)
}

type Check struct {
	Name   string
	OK     bool
	Detail string
	Hints  []string
}

type Report struct {
	Checks []Check
}

func (r Report) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Run executes every check against the given transport.
func Run(ctx context.Context, bus iotkit.I2CBus, scanner Scanner) Report {
	var rep Report
	rep.Checks = append(rep.Checks, CheckDeviceNodes())
	if scanner != nil {
		rep.Checks = append(rep.Checks, ScanBus(ctx, scanner))
	}
	rep.Checks = append(rep.Checks, ProbeSHT31(ctx, bus))
	rep.Checks = append(rep.Checks, ProbeVL6180X(ctx, bus))
	return rep
}

// CheckDeviceNodes verifies that at least one /dev/i2c-* node exists and
// is readable and writable by the current user.
func CheckDeviceNodes() Check {
	check := Check{Name: "i2c device nodes"}
	nodes := []string{"/dev/i2c-0", "/dev/i2c-1", "/dev/i2c-20", "/dev/i2c-21"}
	var present []string
	for _, node := range nodes {
		if _, err := os.Stat(node); err != nil {
			continue
		}
		present = append(present, node)
		f, err := os.OpenFile(node, os.O_RDWR, 0)
		if err != nil {
			check.Detail = fmt.Sprintf("%s exists but is not accessible: %v", node, err)
			check.Hints = append(check.Hints,
				"add yourself to the i2c group: sudo usermod -a -G i2c $USER")
			return check
		}
		_ = f.Close()
	}
	if len(present) == 0 {
		check.Detail = "no /dev/i2c-* device nodes found"
		check.Hints = append(check.Hints,
			"enable the I2C interface (raspi-config) and reboot")
		return check
	}
	check.OK = true
	check.Detail = fmt.Sprintf("accessible nodes: %v", present)
	return check
}

// ScanBus probes every valid address and reports which of the expected
// sensors answered.
func ScanBus(ctx context.Context, scanner Scanner) Check {
	check := Check{Name: "bus scan"}
	found, err := scanner.Scan(ctx)
	if err != nil {
		check.Detail = fmt.Sprintf("scan failed: %v", err)
		return check
	}
	if len(found) == 0 {
		check.Detail = "no devices acknowledged"
		check.Hints = append(check.Hints,
			"check SDA/SCL wiring and sensor power",
			"verify pull-up resistors on the bus")
		return check
	}
	addrs := make([]string, 0, len(found))
	expected := 0
	for _, addr := range found {
		addrs = append(addrs, fmt.Sprintf("%#02x", addr))
		if addr == environment.SHT31Addr || addr == proximity.VL6180XAddr || addr == environment.BH1750AddrLow {
			expected++
		}
	}
	check.OK = true
	check.Detail = fmt.Sprintf("devices: %v (%d known sensors)", addrs, expected)
	return check
}

// ProbeSHT31 soft-resets the sensor, reads its status register and runs
// a trial measurement.
func ProbeSHT31(ctx context.Context, bus iotkit.I2CBus) Check {
	check := Check{Name: "sht31 probe"}
	sensor := environment.NewSHT31(bus)
	if err := sensor.SoftReset(ctx); err != nil {
		check.Detail = fmt.Sprintf("soft reset failed: %v", err)
		check.Hints = sht31Hints()
		return check
	}
	status, err := sensor.ReadStatus(ctx)
	if err != nil {
		check.Detail = fmt.Sprintf("status read failed: %v", err)
		check.Hints = sht31Hints()
		return check
	}
	temp, hum, err := sensor.Measure(ctx)
	if err != nil {
		check.Detail = fmt.Sprintf("status %#04x, but measurement failed: %v", status, err)
		check.Hints = sht31Hints()
		return check
	}
	check.OK = true
	check.Detail = fmt.Sprintf("status %#04x, %.2f C, %.2f %%RH", status, temp, hum)
	return check
}

func sht31Hints() []string {
	return []string{
		"the I2C clock may be too fast for the expansion board; lower it and reboot",
		"check pull-up resistors and wiring contact",
		"run with --test to use the simulated sensor",
	}
}

// ProbeVL6180X reads the identification registers without touching the
// device configuration.
func ProbeVL6180X(ctx context.Context, bus iotkit.I2CBus) Check {
	check := Check{Name: "vl6180x probe"}
	dev := register.NewDev16(bus, proximity.VL6180XAddr)
	model, err := dev.ReadByte(ctx, 0x0000)
	if err != nil {
		check.Detail = fmt.Sprintf("model id read failed: %v", err)
		check.Hints = []string{
			"confirm the sensor answers at address 0x29 (i2cdetect -y 1)",
			"run with --test to use the simulated sensor",
		}
		return check
	}
	revision, _ := dev.ReadByte(ctx, 0x0001)
	module, _ := dev.ReadByte(ctx, 0x0002)
	if model != proximity.ModelID {
		check.Detail = fmt.Sprintf("unexpected model id %#02x (want %#02x)", model, proximity.ModelID)
		check.Hints = []string{"another device may be shadowing address 0x29"}
		return check
	}
	check.OK = true
	check.Detail = fmt.Sprintf("model %#02x revision %#02x module %#02x", model, revision, module)
	return check
}
