package domain

import (
	"fmt"
	"strings"
)

// Operation is the remote verb a command performs.
type Operation string

const (
	OpCreate Operation = "create"
	OpDelete Operation = "delete"
)

// EntityKind is the remote resource a command targets.
type EntityKind string

const (
	EntityPolyanet EntityKind = "polyanet"
	EntitySoloon   EntityKind = "soloon"
	EntityCometh   EntityKind = "cometh"
)

// Mode selects whether a map is built or cleared.
type Mode string

const (
	ModeNormal Mode = "normal"
	ModeClear  Mode = "clear"
)

// Attribute keys carried by commands.
const (
	AttrColor     = "color"
	AttrDirection = "direction"
)

// Command is one compiled instruction. It is not mutated after compilation.
type Command struct {
	Op         Operation         `json:"op"`
	Kind       EntityKind        `json:"kind"`
	Row        int               `json:"row"`
	Column     int               `json:"column"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// String returns a human-readable description, e.g. "CREATE soloon at (0, 1)".
func (c Command) String() string {
	desc := fmt.Sprintf("%s %s at (%d, %d)", strings.ToUpper(string(c.Op)), c.Kind, c.Row, c.Column)
	if v, ok := c.Attributes[AttrColor]; ok {
		desc += " color=" + v
	}
	if v, ok := c.Attributes[AttrDirection]; ok {
		desc += " direction=" + v
	}
	return desc
}
