package app

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/artpar/gateforge/adapters/idgen"
	"github.com/artpar/gateforge/config"
	"github.com/artpar/gateforge/core/registry"
	"github.com/artpar/gateforge/core/schema"
	"github.com/artpar/gateforge/domain/pin"
	"github.com/artpar/gateforge/plugins/shiftreg"
	"github.com/artpar/gateforge/ports"
	"github.com/rs/zerolog"
)

// stubPlugin contributes fixed fragments under a second subtype.
type stubPlugin struct {
	subtype string
	files   []string
}

func (s stubPlugin) Describe() schema.Entry {
	return schema.Entry{BaseType: "expansion", SubType: s.subtype}
}

func (s stubPlugin) PinBindings(*config.Config) []pin.Binding {
	return []pin.Binding{pin.Output(strings.ToUpper(s.subtype)+"_CLK", "Z1")}
}

func (s stubPlugin) ResourceSizes(*config.Config) []ports.ResourceSize { return nil }

func (s stubPlugin) Declarations(*config.Config) []string { return nil }

func (s stubPlugin) Instantiations(*config.Config) []string { return nil }

func (s stubPlugin) SourceFiles(*config.Config) []string { return s.files }

func makeGenerator(t *testing.T, plugins ...ports.ExpansionPlugin) *Generator {
	t.Helper()
	reg := registry.New()
	if len(plugins) == 0 {
		plugins = []ports.ExpansionPlugin{shiftreg.New()}
	}
	for _, p := range plugins {
		if err := reg.Register(p); err != nil {
			t.Fatalf("register plugin: %v", err)
		}
	}
	return NewGenerator(reg, idgen.NewSequential("run"), zerolog.Nop())
}

func makeConfig() *config.Config {
	return &config.Config{
		Clock: config.ClockConfig{Speed: 2000000},
		Expansion: []config.ExpansionEntry{
			{
				Type: "shiftreg",
				Pins: config.PinSet{Clock: "B1", Load: "B2", In: "B3", Out: "B4"},
			},
		},
	}
}

func TestGenerator_Run(t *testing.T) {
	g := makeGenerator(t)

	result, err := g.Run(makeConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.ID == "" {
		t.Error("Run() should assign a run ID")
	}
	if len(result.PinBindings) != 4 {
		t.Errorf("len(PinBindings) = %d, want 4", len(result.PinBindings))
	}
	if len(result.ResourceSizes) != 2 {
		t.Errorf("len(ResourceSizes) = %d, want 2", len(result.ResourceSizes))
	}
	if !reflect.DeepEqual(result.SourceFiles, []string{"expansion_shiftreg.v"}) {
		t.Errorf("SourceFiles = %v", result.SourceFiles)
	}
	if len(result.Declarations) == 0 || len(result.Instantiations) == 0 {
		t.Error("Run() should emit HDL fragments")
	}
}

func TestGenerator_Run_ValidationError(t *testing.T) {
	g := makeGenerator(t)
	cfg := &config.Config{
		Clock: config.ClockConfig{Speed: 2000000},
		Expansion: []config.ExpansionEntry{
			{Type: "shiftreg"}, // no pins at all
		},
	}

	_, err := g.Run(cfg)
	if err == nil {
		t.Fatal("Run() should fail validation")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error should be a *ValidationError, got %T", err)
	}
	if verr.Result.Valid() {
		t.Error("ValidationError should carry error problems")
	}
}

func TestGenerator_Run_WarningsCarried(t *testing.T) {
	g := makeGenerator(t)
	cfg := makeConfig()
	speed := 1500000 // divider 0
	cfg.Expansion[0].Speed = &speed

	result, err := g.Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Error("Run() should carry validation warnings into the result")
	}
}

func TestGenerator_Run_MultiplePlugins(t *testing.T) {
	// Registry order is sorted by subtype: blinker before shiftreg.
	g := makeGenerator(t,
		shiftreg.New(),
		stubPlugin{subtype: "blinker", files: []string{"blinker.v", "expansion_shiftreg.v"}},
	)

	result, err := g.Run(makeConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.PinBindings[0].Name != "BLINKER_CLK" {
		t.Errorf("first binding = %q, want the blinker contribution first", result.PinBindings[0].Name)
	}

	// Duplicate source files are collapsed, first occurrence wins.
	want := []string{"blinker.v", "expansion_shiftreg.v"}
	if !reflect.DeepEqual(result.SourceFiles, want) {
		t.Errorf("SourceFiles = %v, want %v", result.SourceFiles, want)
	}
}

func TestGenerator_Run_Idempotent(t *testing.T) {
	g := makeGenerator(t)
	cfg := makeConfig()

	first, err := g.Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := g.Run(cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Everything except the run metadata is byte-identical.
	if !reflect.DeepEqual(first.PinBindings, second.PinBindings) {
		t.Error("PinBindings differ between runs")
	}
	if !reflect.DeepEqual(first.Declarations, second.Declarations) {
		t.Error("Declarations differ between runs")
	}
	if !reflect.DeepEqual(first.Instantiations, second.Instantiations) {
		t.Error("Instantiations differ between runs")
	}
}

func TestWriteResult(t *testing.T) {
	g := makeGenerator(t)
	result, err := g.Run(makeConfig())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	dir := filepath.Join(t.TempDir(), "gen")
	if err := WriteResult(dir, result); err != nil {
		t.Fatalf("WriteResult() error = %v", err)
	}

	pins, err := os.ReadFile(filepath.Join(dir, PinTableFile))
	if err != nil {
		t.Fatalf("read pin table: %v", err)
	}
	if !strings.Contains(string(pins), "EXPANSION0_SHIFTREG_CLOCK,B1,OUTPUT,false") {
		t.Errorf("pin table missing clock row:\n%s", pins)
	}
	if !strings.Contains(string(pins), "EXPANSION0_SHIFTREG_IN,B3,INPUT,true") {
		t.Errorf("pin table missing input row:\n%s", pins)
	}

	decls, err := os.ReadFile(filepath.Join(dir, DeclarationsFile))
	if err != nil {
		t.Fatalf("read declarations: %v", err)
	}
	if !strings.Contains(string(decls), "wire [7:0] EXPANSION0_INPUT;") {
		t.Errorf("declarations missing bus wire:\n%s", decls)
	}

	files, err := os.ReadFile(filepath.Join(dir, SourceListFile))
	if err != nil {
		t.Fatalf("read source list: %v", err)
	}
	if strings.TrimSpace(string(files)) != "expansion_shiftreg.v" {
		t.Errorf("source list = %q", files)
	}
}
