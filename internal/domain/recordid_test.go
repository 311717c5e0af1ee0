package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRecordID(t *testing.T) {
	tests := []struct {
		name      string
		netDate   string
		call      string
		frequency string
		want      string
	}{
		{
			name:    "single-digit month and day are zero padded",
			netDate: "11/5/2020", call: "W1FX", frequency: "146.58",
			want: "11052020146580W1FX",
		},
		{
			name:    "two-digit components pass through",
			netDate: "10/15/2020", call: "KX1C", frequency: "146.58",
			want: "10152020146580KX1C",
		},
		{
			name:    "short fraction pads with trailing zeros",
			netDate: "1/2/2021", call: "N1AB", frequency: "146.5",
			want: "01022021146500N1AB",
		},
		{
			name:    "whole-number frequency has no fraction digits",
			netDate: "1/2/2021", call: "N1AB", frequency: "146",
			want: "01022021146N1AB",
		},
		{
			name:    "UHF net",
			netDate: "11/5/2020", call: "W1FX", frequency: "446.25",
			want: "11052020446250W1FX",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildRecordID(tt.netDate, tt.call, tt.frequency))
		})
	}
}

func TestBuildRecordIDDeterministic(t *testing.T) {
	a := BuildRecordID("11/5/2020", "KX1C", "146.58")
	b := BuildRecordID("11/5/2020", "KX1C", "146.58")
	assert.Equal(t, a, b, "resubmitted reports must collide on ID")
}
