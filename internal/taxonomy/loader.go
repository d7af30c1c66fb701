package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ThreatSeed is one record in a threat seed file.
type ThreatSeed struct {
	Category   Category `yaml:"category"`
	Name       string   `yaml:"name"`
	Techniques []string `yaml:"techniques"`
	Tools      []string `yaml:"tools"`
	Efficacy   float64  `yaml:"efficacy"`
}

// seedFile is the top-level YAML structure of a seed file.
type seedFile struct {
	Threats []ThreatSeed `yaml:"threats"`
}

// LoadThreats reads a seed file of the form:
//
//	threats:
//	  - category: social_engineering
//	    name: AI-Generated Phishing
//	    techniques: [...]
//	    tools: [...]
//	    efficacy: 8.5
func LoadThreats(path string) ([]ThreatSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return sf.Threats, nil
}

// Seed adds every seed in order. It stops at the first unknown category;
// seeds applied before that point stay in the taxonomy.
func (t *Taxonomy) Seed(seeds []ThreatSeed) error {
	for _, s := range seeds {
		if err := t.AddThreat(s.Category, s.Name, s.Techniques, s.Tools, s.Efficacy); err != nil {
			return fmt.Errorf("seeding %q: %w", s.Name, err)
		}
	}
	return nil
}

// DemoThreats returns the research records used by the demonstration run.
func DemoThreats() []ThreatSeed {
	return []ThreatSeed{
		{
			Category:   SocialEngineering,
			Name:       "AI-Generated Phishing",
			Techniques: []string{"LLM-based email generation", "Context-aware personalization"},
			Tools:      []string{"GPT-4", "WormGPT", "FraudGPT"},
			Efficacy:   8.5,
		},
		{
			Category:   MalwareGeneration,
			Name:       "GAN-based Polymorphic Malware",
			Techniques: []string{"Adversarial sample generation", "Signature evasion"},
			Tools:      []string{"MalGAN", "GAN-based malware generators"},
			Efficacy:   7.2,
		},
	}
}
