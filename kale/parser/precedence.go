package parser

import "maps"

// Settings configures a parse. Precedence maps binary operator symbols to
// their binding strength; higher binds tighter. An operator missing from
// the table cannot be used in binary position.
type Settings struct {
	Precedence map[string]int
}

func DefaultSettings() *Settings {
	return &Settings{
		Precedence: map[string]int{
			"<": 10,
			"+": 20,
			"-": 20,
			"*": 40,
		},
	}
}

// Define adds or replaces the precedence of op.
func (s *Settings) Define(op string, precedence int) {
	if s.Precedence == nil {
		s.Precedence = make(map[string]int)
	}
	s.Precedence[op] = precedence
}

func (s *Settings) Lookup(op string) (int, bool) {
	prec, ok := s.Precedence[op]
	return prec, ok
}

func (s *Settings) Clone() *Settings {
	return &Settings{Precedence: maps.Clone(s.Precedence)}
}
