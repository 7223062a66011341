package portion

import (
	"strings"
)

type Portion struct {
	Name string
}

func (p Portion) Code() string {
	return p.Name
}

func (p Portion) Label() string {
	if len(p.Name) == 0 {
		return ""
	}
	return strings.ToUpper(p.Name[:1]) + p.Name[1:]
}

type Enum struct {
	Full Portion
	Half Portion
}

var Portions = Enum{
	Full: Portion{Name: "full"},
	Half: Portion{Name: "half"},
}

var All = []Portion{
	Portions.Full,
	Portions.Half,
}

// ByName returns the portion for a given name, or nil if not found
func ByName(name string) *Portion {
	for _, p := range All {
		if p.Name == name {
			return &p
		}
	}
	return nil
}
