package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"procscope/models"
)

func TestParsePressure(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want models.PressureLevel
	}{
		{"normal", "The system has 33271 pages free...\nSystem-wide memory free percentage: 61%\n", models.PressureNormal},
		{"warning", "Status: System is under memory WARN pressure\n", models.PressureWarning},
		{"critical", "Status: System is under CRITICAL memory pressure\n", models.PressureCritical},
		{"empty", "", models.PressureNormal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parsePressure(tt.out))
		})
	}
}
