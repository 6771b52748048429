// Package level maps a running point balance to a display tier.
package level

// Level is the presentation tier derived from a balance. IconRef is a
// key into the icons catalog; Accent is a hint for the rendering layer.
type Level struct {
	Name    string
	IconRef string
	Accent  string
}

// Classify maps a balance to its tier. The table is evaluated top-down,
// first match wins; every integer maps to exactly one tier.
func Classify(balance int) Level {
	switch {
	case balance < 0:
		return Level{Name: "In Debt", IconRef: "frown", Accent: "red"}
	case balance >= 200:
		return Level{Name: "Legendary", IconRef: "trophy", Accent: "amber"}
	case balance >= 100:
		return Level{Name: "Super Pro", IconRef: "sparkles", Accent: "emerald"}
	case balance >= 50:
		return Level{Name: "Pro", IconRef: "check-circle", Accent: "blue"}
	default:
		return Level{Name: "Novice", IconRef: "star", Accent: "gray"}
	}
}
