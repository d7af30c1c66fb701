package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadThreats(t *testing.T) {
	dir := t.TempDir()
	seedYAML := `threats:
  - category: social_engineering
    name: "Voice Clone Vishing"
    techniques: ["voice synthesis", "caller ID spoofing"]
    tools: ["ElevenLabs"]
    efficacy: 7.5
  - category: vulnerability_discovery
    name: "LLM-assisted Fuzzing"
    techniques: ["grammar inference"]
    tools: ["custom harness"]
    efficacy: 6
`
	path := filepath.Join(dir, "threats.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0644); err != nil {
		t.Fatalf("Failed to write seed file: %v", err)
	}

	seeds, err := LoadThreats(path)
	if err != nil {
		t.Fatalf("LoadThreats failed: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("expected 2 seeds, got %d", len(seeds))
	}
	if seeds[0].Category != SocialEngineering {
		t.Errorf("wrong category: %s", seeds[0].Category)
	}
	if len(seeds[0].Techniques) != 2 || seeds[0].Techniques[1] != "caller ID spoofing" {
		t.Errorf("wrong techniques: %v", seeds[0].Techniques)
	}

	tx := New()
	if err := tx.Seed(seeds); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if mean, ok := tx.AverageEfficacyByCategory().Lookup(VulnerabilityDiscovery); !ok || mean != 6 {
		t.Errorf("expected vulnerability_discovery mean 6, got %v (present=%v)", mean, ok)
	}
}

func TestLoadThreats_MissingFile(t *testing.T) {
	if _, err := LoadThreats("/nonexistent/threats.yaml"); err == nil {
		t.Error("expected error for missing seed file")
	}
}

func TestLoadThreats_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("threats: [\n  - name: {"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadThreats(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSeed_StopsAtUnknownCategory(t *testing.T) {
	seeds := []ThreatSeed{
		{Category: SocialEngineering, Name: "ok", Efficacy: 5},
		{Category: "quantum_attacks", Name: "bad", Efficacy: 9},
		{Category: MalwareGeneration, Name: "never", Efficacy: 1},
	}

	tx := New()
	err := tx.Seed(seeds)
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	if tx.Len() != 1 {
		t.Errorf("expected 1 record kept, got %d", tx.Len())
	}
}

func TestDemoThreats(t *testing.T) {
	tx := New()
	if err := tx.Seed(DemoThreats()); err != nil {
		t.Fatalf("demo threats must seed cleanly: %v", err)
	}
	avgs := tx.AverageEfficacyByCategory()
	if len(avgs) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(avgs))
	}
	if mean, _ := avgs.Lookup(SocialEngineering); mean != 8.5 {
		t.Errorf("expected 8.5, got %v", mean)
	}
	if mean, _ := avgs.Lookup(MalwareGeneration); mean != 7.2 {
		t.Errorf("expected 7.2, got %v", mean)
	}
}
