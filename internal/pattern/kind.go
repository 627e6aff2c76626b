package pattern

// Kind groups catalog patterns by behaviour.
type Kind string

const (
	StillLife  Kind = "still_life"
	Oscillator Kind = "oscillator"
	Spaceship  Kind = "spaceship"
	Methuselah Kind = "methuselah"
	Puffer     Kind = "puffer"
	Gun        Kind = "gun"
)

var kindColours = map[Kind]string{
	StillLife:  "#666666",
	Oscillator: "#58ACFA",
	Gun:        "#B43104",
	Spaceship:  "#31B404",
	Methuselah: "#2E64FE",
	Puffer:     "#DF7401",
}

// Colour returns the hex display colour for the kind.
func (k Kind) Colour() string {
	if c, ok := kindColours[k]; ok {
		return c
	}
	return "#000000"
}

func (k Kind) String() string { return string(k) }
