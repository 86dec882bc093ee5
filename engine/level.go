package engine

// LevelKind selects how the disk moves during a level
type LevelKind uint8

const (
	KindNormal       LevelKind = iota // Constant speed, clockwise on screen
	KindReverse                       // Constant speed, counter-clockwise
	KindVariable                      // Speed resampled periodically around the base
	KindIntermittent                  // Alternates moving and stopped
)

var kindNames = [...]string{"normal", "reverse", "variable", "intermittent"}

// String returns the lowercase kind name
func (k LevelKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// LevelSpec is the immutable difficulty of one level
type LevelSpec struct {
	Number        int
	NeedleCount   int
	RotationSpeed float64 // Speed units, converted per tick by DegreesPerSpeedUnit
	Kind          LevelKind
}

// Direction returns +1 for clockwise levels, -1 for reverse levels
func (l LevelSpec) Direction() float64 {
	if l.Kind == KindReverse {
		return -1
	}
	return 1
}

var levelTable = [...]LevelSpec{
	{Number: 1, NeedleCount: 8, RotationSpeed: 1.0, Kind: KindNormal},
	{Number: 2, NeedleCount: 10, RotationSpeed: 1.2, Kind: KindNormal},
	{Number: 3, NeedleCount: 12, RotationSpeed: 1.4, Kind: KindReverse},
	{Number: 4, NeedleCount: 14, RotationSpeed: 1.6, Kind: KindVariable},
	{Number: 5, NeedleCount: 16, RotationSpeed: 1.8, Kind: KindIntermittent},
}

var endlessKinds = [...]LevelKind{KindNormal, KindReverse, KindVariable, KindIntermittent}

// maxFormulaLevel keeps the endless formula clear of int overflow
const maxFormulaLevel = 1 << 24

// LevelFor returns the spec for level n; total over all ints, n < 1 is treated as 1
func LevelFor(n int) LevelSpec {
	if n < 1 {
		n = 1
	}
	if n <= len(levelTable) {
		return levelTable[n-1]
	}
	f := n
	if f > maxFormulaLevel {
		f = maxFormulaLevel
	}
	return LevelSpec{
		Number:        n,
		NeedleCount:   20 + 2*f,
		RotationSpeed: 2 + 0.2*float64(f),
		Kind:          endlessKinds[f%len(endlessKinds)],
	}
}
