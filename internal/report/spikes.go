package report

import "github.com/spigell/whoami-engine/internal/questionnaire"

// Spike is a trait highlight shown only for Low and High levels.
type Spike struct {
	Trait   string              `json:"trait"`
	Level   questionnaire.Level `json:"level"`
	Percent int                 `json:"percent"`
	Label   string              `json:"label"`
	// Warning marks highlights rendered as cautions.
	Warning bool `json:"warning"`
}

type spikeLabels struct {
	trait       string
	high, low   string
	highWarning bool
}

var spikeTable = []spikeLabels{
	{trait: questionnaire.Neuroticism, high: "Wysoka Neurotyczność: Symulator Katastrof.", low: "Niska Neurotyczność: Iceman.", highWarning: true},
	{trait: questionnaire.Conscientiousness, high: "Wysoka Sumienność: Strateg.", low: "Niska Sumienność: Improwizator."},
	{trait: questionnaire.Focus, high: "Wysokie Skupienie: Tryb Laserowy.", low: "Niskie Skupienie: Sto Otwartych Kart."},
	{trait: questionnaire.Competence, high: "Wysoka Potrzeba Kompetencji: Głód Mistrzostwa.", low: "Niska Potrzeba Kompetencji: Wystarczy Dobrze."},
}

// Spikes lists the highlights of the traits that reached Low or High.
func Spikes(traits questionnaire.Traits) []Spike {
	spikes := make([]Spike, 0, len(spikeTable))
	for _, s := range spikeTable {
		if !traits.Answered(s.trait) {
			continue
		}
		score := traits[s.trait]

		spike := Spike{Trait: s.trait, Level: score.Level(), Percent: score.Percent}
		switch spike.Level {
		case questionnaire.LevelHigh:
			spike.Label = s.high
			spike.Warning = s.highWarning
		case questionnaire.LevelLow:
			spike.Label = s.low
			spike.Warning = !s.highWarning
		default:
			continue
		}
		spikes = append(spikes, spike)
	}
	return spikes
}
