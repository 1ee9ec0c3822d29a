package valueobject

import (
	"fmt"

	"fwsim/domain/entity"
)

// DenyEvent records that a Deny rule was passed over while a packet was evaluated.
type DenyEvent struct {
	Index  int
	Rule   entity.Rule
	Packet entity.Packet
}

func (e *DenyEvent) String() string {
	return fmt.Sprintf("{Index: %d Rule: %s Packet: %s}", e.Index, &e.Rule, &e.Packet)
}
