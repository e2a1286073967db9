package similarity

// defaultRelations is the fallback table used when no override file is
// configured or the configured file cannot be read.
var defaultRelations = map[string]map[string]float64{
	// Sports hierarchy
	"sport": {
		"football":   0.9,
		"basketball": 0.9,
		"tennis":     0.9,
		"cricket":    0.9,
		"swimming":   0.9,
		"athletics":  0.9,
		"fitness":    0.8,
		"health":     0.7,
	},
	"football": {
		"sport":  0.9,
		"soccer": 0.95,
	},
	"basketball": {
		"sport": 0.9,
	},
	"tennis": {
		"sport": 0.9,
	},
	"cricket": {
		"sport": 0.9,
	},

	// Art and culture
	"art": {
		"painting":    0.9,
		"sculpture":   0.9,
		"photography": 0.8,
		"music":       0.7,
		"dance":       0.7,
		"theater":     0.7,
		"literature":  0.6,
	},
	"music": {
		"art":   0.7,
		"dance": 0.6,
	},

	// Sciences
	"science": {
		"physics":          0.9,
		"chemistry":        0.9,
		"biology":          0.9,
		"astronomy":        0.9,
		"mathematics":      0.8,
		"psychology":       0.6,
		"computer science": 0.8,
	},

	// Fiction and its subgenres
	"fiction": {
		"mystery":            0.8,
		"thriller":           0.8,
		"romance":            0.7,
		"science fiction":    0.8,
		"fantasy":            0.8,
		"historical fiction": 0.8,
		"horror":             0.7,
		"adventure":          0.8,
	},
	"thriller": {
		"mystery":  0.8,
		"horror":   0.8,
		"crime":    0.8,
		"suspense": 0.9,
	},
	"mystery": {
		"horror":    0.7,
		"crime":     0.8,
		"detective": 0.9,
		"suspense":  0.8,
	},
	"fantasy": {
		"science fiction": 0.7,
		"adventure":       0.7,
	},
	"romance": {
		"historical fiction": 0.6,
	},
}

// DefaultTable returns the built-in similarity table
func DefaultTable() *Table {
	t, err := NewTable(defaultRelations, "default")
	if err != nil {
		// defaultRelations is a literal checked by tests
		panic(err)
	}
	return t
}
