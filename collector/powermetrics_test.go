package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const powermetricsFixture = `Machine model: Mac16,8
OS version: 24F74

**** GPU usage ****

GPU HW active frequency: 444 MHz
GPU HW active residency:  37.52% (444 MHz: 28% 612 MHz: 9.4%)
GPU SW requested state: (P1 : 62%)
GPU idle residency:  62.48%
GPU Power: 1289 mW

**** Neural Engine usage ****

ANE Power: 53 mW

Combined Power (CPU + GPU + ANE): 4111 mW
`

func TestParseGPUSample(t *testing.T) {
	sample := parseGPUSample(powermetricsFixture)

	assert.Equal(t, 37.52, sample.ActivePercent)
	assert.Equal(t, 1289.0, sample.PowerMW)
	assert.Equal(t, 53.0, sample.ANEPowerMW)
}

func TestParseGPUSampleIgnoresCombinedPower(t *testing.T) {
	// No "GPU Power:" line at all; the combined figure must not leak in.
	sample := parseGPUSample("Combined Power (CPU + GPU + ANE): 4111 mW\n")

	assert.Zero(t, sample.PowerMW)
	assert.Zero(t, sample.ActivePercent)
	assert.Zero(t, sample.ANEPowerMW)
}

func TestParseGPUSampleEmptyOutput(t *testing.T) {
	assert.Equal(t, GPUSample{}, parseGPUSample(""))
}
