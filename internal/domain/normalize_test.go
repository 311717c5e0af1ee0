package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanReport(t *testing.T) {
	t.Run("extra words after the call sign move to the comment", func(t *testing.T) {
		r := RawReport{Call: "kx1c operating portable", Comment: "already here"}
		CleanReport(&r)
		assert.Equal(t, "KX1C", r.Call)
		assert.Equal(t, "already here operating portable", r.Comment)
	})

	t.Run("call sign is trimmed and uppercased", func(t *testing.T) {
		r := RawReport{Call: "  w1fx  "}
		CleanReport(&r)
		assert.Equal(t, "W1FX", r.Call)
	})

	t.Run("trailing foot mark becomes ft", func(t *testing.T) {
		r := RawReport{Height: "20'"}
		CleanReport(&r)
		assert.Equal(t, "20 ft", r.Height)
	})

	t.Run("trailing inch mark becomes in", func(t *testing.T) {
		r := RawReport{Height: `30"`}
		CleanReport(&r)
		assert.Equal(t, "30 in", r.Height)
	})

	t.Run("coordinates lose directionals and spaces", func(t *testing.T) {
		r := RawReport{Latitude: "42.50 N", Longitude: " 71.20 W "}
		CleanReport(&r)
		assert.Equal(t, "42.50", r.Latitude)
		assert.Equal(t, "71.20", r.Longitude)
	})

	t.Run("idempotent on a clean report", func(t *testing.T) {
		r := RawReport{
			Call: "KX1C", Height: "20 ft",
			Latitude: "42.46", Longitude: "-71.10",
			Comment: "fixed station",
		}
		want := r
		CleanReport(&r)
		assert.Equal(t, want, r)
		CleanReport(&r)
		assert.Equal(t, want, r)
	})
}
