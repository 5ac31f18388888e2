package buffer

import "log/slog"

// Stats is a snapshot of a GrowBuffer's memory layout.
type Stats struct {
	Length      int `json:"length" yaml:"length"`
	Allocated   int `json:"allocated" yaml:"allocated"`
	Consumed    int `json:"consumed" yaml:"consumed"`
	Unused      int `json:"unused" yaml:"unused"`
	Growths     int `json:"growths" yaml:"growths"`
	Compactions int `json:"compactions" yaml:"compactions"`
}

// Stats reports the current layout and counters. It does not change the
// buffer.
func (b *GrowBuffer) Stats() Stats {
	return Stats{
		Length:      b.n,
		Allocated:   len(b.buf),
		Consumed:    b.off,
		Unused:      b.Unused(),
		Growths:     b.growths,
		Compactions: b.compactions,
	}
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("length", s.Length),
		slog.Int("allocated", s.Allocated),
		slog.Int("consumed", s.Consumed),
		slog.Int("unused", s.Unused),
		slog.Int("growths", s.Growths),
		slog.Int("compactions", s.Compactions),
	)
}
