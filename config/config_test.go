package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const yamlDoc = `
name: test-board
clock:
  speed: 2000000
expansion:
  - type: shiftreg
    bits: 16
    pins:
      clock: B1
      load: B2
      out: B3
`

func TestLoad_YAML(t *testing.T) {
	path := writeTempConfig(t, "board.yaml", yamlDoc)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Clock.Speed != 2000000 {
		t.Errorf("Clock.Speed = %d, want 2000000", cfg.Clock.Speed)
	}
	if len(cfg.Expansion) != 1 {
		t.Fatalf("len(Expansion) = %d, want 1", len(cfg.Expansion))
	}
	e := cfg.Expansion[0]
	if e.Type != "shiftreg" {
		t.Errorf("Type = %q, want shiftreg", e.Type)
	}
	if e.BitCount() != 16 {
		t.Errorf("BitCount() = %d, want 16", e.BitCount())
	}
	if e.Pins.Out != "B3" || e.Pins.In != "" {
		t.Errorf("Pins = %+v", e.Pins)
	}
}

func TestLoad_JSON(t *testing.T) {
	// JSON is a YAML subset; the same loader handles both.
	doc := `{"clock": {"speed": 1000000}, "expansion": [{"type": "shiftreg", "pins": {"clock": "1", "load": "2", "in": "3"}}]}`
	path := writeTempConfig(t, "board.json", doc)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Clock.Speed != 1000000 {
		t.Errorf("Clock.Speed = %d, want 1000000", cfg.Clock.Speed)
	}
	if !cfg.Expansion[0].Pins.HasIn() || cfg.Expansion[0].Pins.HasOut() {
		t.Errorf("Pins = %+v", cfg.Expansion[0].Pins)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_CLOCK_PIN", "C7")
	path := writeTempConfig(t, "board.yaml", `
clock:
  speed: 1000000
expansion:
  - type: shiftreg
    pins:
      clock: ${TEST_CLOCK_PIN}
      load: C8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Expansion[0].Pins.Clock != "C7" {
		t.Errorf("Pins.Clock = %q, want C7", cfg.Expansion[0].Pins.Clock)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for missing file")
	}
}

func TestParse_InvalidClock(t *testing.T) {
	if _, err := Parse([]byte("clock:\n  speed: 0\n")); err == nil {
		t.Error("Parse() should reject a zero clock speed")
	}
}

func TestParse_MissingEntryType(t *testing.T) {
	doc := `
clock:
  speed: 1000000
expansion:
  - pins:
      clock: B1
      load: B2
`
	if _, err := Parse([]byte(doc)); err == nil {
		t.Error("Parse() should reject an entry without a type")
	}
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("clock:\n  speed: 1000000\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port default = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Output.Dir != "generated" {
		t.Errorf("Output.Dir default = %q, want generated", cfg.Output.Dir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging defaults = %+v", cfg.Logging)
	}
}

func TestEntryDefaults(t *testing.T) {
	var e ExpansionEntry

	if e.BitCount() != 8 {
		t.Errorf("BitCount() default = %d, want 8", e.BitCount())
	}
	if e.ShiftSpeed() != 100000 {
		t.Errorf("ShiftSpeed() default = %d, want 100000", e.ShiftSpeed())
	}
	if !e.PullupEnabled() {
		t.Error("PullupEnabled() default should be true")
	}

	bits, speed, pullup := 4, 50000, false
	e = ExpansionEntry{Bits: &bits, Speed: &speed, Pullup: &pullup}
	if e.BitCount() != 4 || e.ShiftSpeed() != 50000 || e.PullupEnabled() {
		t.Errorf("explicit values not honored: %d %d %t", e.BitCount(), e.ShiftSpeed(), e.PullupEnabled())
	}
}

func TestEnumerate(t *testing.T) {
	cfg := &Config{
		Clock: ClockConfig{Speed: 1000000},
		Expansion: []ExpansionEntry{
			{Type: "shiftreg", Pins: PinSet{Clock: "A1", Load: "A2"}},
			{Type: "i2c", Pins: PinSet{Clock: "B1", Load: "B2"}},
			{Type: "shiftreg", Pins: PinSet{Clock: "C1", Load: "C2"}},
		},
	}

	got := cfg.Enumerate("shiftreg")
	if len(got) != 2 {
		t.Fatalf("Enumerate() returned %d instances, want 2", len(got))
	}
	if got[0].Index != 0 || got[0].Entry.Pins.Clock != "A1" {
		t.Errorf("instance 0 = %+v", got[0])
	}
	if got[1].Index != 1 || got[1].Entry.Pins.Clock != "C1" {
		t.Errorf("instance 1 = %+v", got[1])
	}
}

func TestEnumerate_Empty(t *testing.T) {
	cfg := &Config{Clock: ClockConfig{Speed: 1000000}}
	if got := cfg.Enumerate("shiftreg"); len(got) != 0 {
		t.Errorf("Enumerate() on empty document = %v, want empty", got)
	}
}
