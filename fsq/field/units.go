package field

// unitDivisors maps storage unit labels to their divisor relative to
// one byte. Lowercase first letters denote bit units (an eighth of a
// byte scaled by the decimal or binary multiplier), so matching is
// case-sensitive. Decimal units scale by powers of 1000, binary (i)
// units by powers of 1024.
var unitDivisors = map[string]float64{
	"b":   0.125,
	"B":   1,
	"Kb":  125,
	"KB":  1e3,
	"Kib": 128,
	"KiB": 1024,
	"Mb":  1.25e5,
	"MB":  1e6,
	"Mib": 131_072,
	"MiB": 1024 * 1024,
	"Gb":  1.25e8,
	"GB":  1e9,
	"Gib": 134_217_728,
	"GiB": 1024 * 1024 * 1024,
	"Tb":  1.25e11,
	"TB":  1e12,
	"Tib": 137_438_953_472,
	"TiB": 1024 * 1024 * 1024 * 1024,
}

// UnitDivisor returns the byte divisor for a size unit label.
func UnitDivisor(unit string) (float64, bool) {
	d, ok := unitDivisors[unit]
	return d, ok
}
