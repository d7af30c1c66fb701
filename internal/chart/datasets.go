package chart

// Output file names. Every run overwrites them.
const (
	EfficacyFile    = "threat_efficacy_analysis.png"
	ComparativeFile = "figure2_comparative_efficacy.png"
	DetectionFile   = "figure3_detection_times.png"
	AdversarialFile = "figure4_adversarial_success.png"
	SWOTFile        = "swot_analysis_diagram.png"
)

// Bar is one labelled value. Color is "#RRGGBB" and may be empty where the
// routine derives colors itself.
type Bar struct {
	Label string
	Value float64
	Color string
}

func splitBars(bars []Bar) (labels []string, values []float64, colors []string) {
	for _, b := range bars {
		labels = append(labels, b.Label)
		values = append(values, b.Value)
		colors = append(colors, b.Color)
	}
	return labels, values, colors
}

// ComparativeData feeds the AI vs. traditional attack success chart.
type ComparativeData struct {
	Title    string
	YLabel   string
	Bars     []Bar
	Citation string
}

// DefaultComparative compares phishing success rates in percent.
var DefaultComparative = ComparativeData{
	Title:  "Comparative Efficacy of AI vs. Traditional Social Engineering Attacks",
	YLabel: "Success Rate (%)",
	Bars: []Bar{
		{Label: "AI-Generated Phishing", Value: 68, Color: "#2E86AB"},
		{Label: "Human-Crafted Phishing", Value: 45, Color: "#A23B72"},
		{Label: "Generic Phishing", Value: 23, Color: "#F18F01"},
	},
	Citation: "Source: Wang et al., 2024; Verizon DBIR 2023",
}

// TimePanel is one side of the detection/response chart.
type TimePanel struct {
	Title  string
	YLabel string
	Unit   string
	Bars   []Bar
}

// DetectionData feeds the two-panel MTTD/MTTR chart.
type DetectionData struct {
	Title    string
	MTTD     TimePanel
	MTTR     TimePanel
	Citation string
}

// DefaultDetectionTimes compares mean time to detect and to respond.
var DefaultDetectionTimes = DetectionData{
	Title: "Reduction in Detection and Response Times with AI-Enhanced Security Operations",
	MTTD: TimePanel{
		Title:  "MTTD Comparison",
		YLabel: "Mean Time to Detect (Days)",
		Unit:   "days",
		Bars: []Bar{
			{Label: "Traditional SIEM", Value: 21.0, Color: "#E63946"},
			{Label: "AI-Augmented SIEM", Value: 3.2, Color: "#457B9D"},
		},
	},
	MTTR: TimePanel{
		Title:  "MTTR Comparison",
		YLabel: "Mean Time to Respond (Hours)",
		Unit:   "hours",
		Bars: []Bar{
			{Label: "Manual Processes", Value: 18.5, Color: "#E9C46A"},
			{Label: "SOAR + AI", Value: 4.6, Color: "#2A9D8F"},
		},
	},
	Citation: "Source: Exabeam 2023 Report; Palo Alto Networks Case Studies",
}

// AdversarialAttack is one bar of the adversarial success chart.
type AdversarialAttack struct {
	Label string
	Value float64
	Risk  string
}

// AdversarialData feeds the adversarial attack success chart. Bar colors
// come from RiskColor(value, Max).
type AdversarialData struct {
	Title    string
	YLabel   string
	Max      float64
	Attacks  []AdversarialAttack
	Citation string
}

// DefaultAdversarial lists success rates against unhardened ML defenses.
var DefaultAdversarial = AdversarialData{
	Title:  "Success Rates of Adversarial Attacks Against ML Defenses\n(Without Proper Hardening)",
	YLabel: "Success Rate (%)",
	Max:    100,
	Attacks: []AdversarialAttack{
		{Label: "Evasion Attacks\n(Image/Content Filters)", Value: 82, Risk: "High Risk"},
		{Label: "Poisoning Attacks\n(Training Data)", Value: 73, Risk: "High Risk"},
		{Label: "Model Extraction Attacks", Value: 61, Risk: "Medium Risk"},
	},
	Citation: "Source: Apruzzese et al., IEEE TNNLS 2022",
}

// SWOTPanel is one quadrant of the SWOT chart. Bars share Color.
type SWOTPanel struct {
	Title string
	Color string
	Bars  []Bar
}

// SWOTData feeds the 2x2 SWOT chart. Panels are row-major: offensive
// strengths, offensive weaknesses, defensive strengths, defensive weaknesses.
type SWOTData struct {
	Title    string
	Panels   [4]SWOTPanel
	Citation string
}

// DefaultSWOT weights AI capabilities on a 1-10 scale.
var DefaultSWOT = SWOTData{
	Title: "SWOT Analysis: AI in Cybersecurity (Weighted Assessment 1-10)",
	Panels: [4]SWOTPanel{
		{
			Title: "Strengths of Offensive AI",
			Color: "#2E8B57",
			Bars: []Bar{
				{Label: "Lower skill barrier", Value: 9.0},
				{Label: "Attack automation", Value: 8.5},
				{Label: "Scalable personalization", Value: 8.2},
				{Label: "Adversarial bypass", Value: 7.8},
			},
		},
		{
			Title: "Weaknesses of Offensive AI",
			Color: "#DC143C",
			Bars: []Bar{
				{Label: "Human guidance needed", Value: 6.5},
				{Label: "Limited adaptability", Value: 7.2},
				{Label: "Detectable artifacts", Value: 6.8},
				{Label: "High compute costs", Value: 7.0},
			},
		},
		{
			Title: "Strengths of Defensive AI",
			Color: "#1E90FF",
			Bars: []Bar{
				{Label: "Massive data processing", Value: 9.5},
				{Label: "Anomaly detection", Value: 9.0},
				{Label: "Continuous adaptation", Value: 8.7},
				{Label: "Task automation", Value: 8.5},
			},
		},
		{
			Title: "Weaknesses of Defensive AI",
			Color: "#FF8C00",
			Bars: []Bar{
				{Label: "Adversarial vulnerability", Value: 8.0},
				{Label: "False positive rates", Value: 7.5},
				{Label: "Training data needs", Value: 7.8},
				{Label: "Black box interpretability", Value: 7.2},
			},
		},
	},
	Citation: "Source: IASP500 weighted expert assessment, Fall 2025",
}

// EfficacyPalette colors the taxonomy efficacy bars by category position.
var EfficacyPalette = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7"}
