package entity

import (
	"fmt"

	"golang.org/x/xerrors"

	"fwsim/constant"
)

var (
	// ErrInvalidPortRange is returned when a port range is reversed or exceeds constant.MaxPort.
	ErrInvalidPortRange = xerrors.New("invalid port range")
)

type Protocol uint8

const (
	ProtocolTCP Protocol = iota
	ProtocolUDP
	// ProtocolAll is only meaningful on rules and is not a wildcard when matching.
	ProtocolAll
)

func (p Protocol) String() string {
	switch p {
	case ProtocolTCP:
		return "TCP"
	case ProtocolUDP:
		return "UDP"
	case ProtocolAll:
		return "All"
	default:
		return "UNK"
	}
}

type Action uint8

const (
	ActionAllow Action = iota
	ActionDeny
)

func (a Action) String() string {
	switch a {
	case ActionAllow:
		return "Allow"
	case ActionDeny:
		return "Deny"
	default:
		return "UNK"
	}
}

// PortRange is an inclusive range of ports.
type PortRange struct {
	Start uint32
	End   uint32
}

func NewPortRange(start, end uint32) (PortRange, error) {
	if start > end {
		return PortRange{}, xerrors.Errorf("starting port %d is greater than ending port %d: %w", start, end, ErrInvalidPortRange)
	}
	if end > constant.MaxPort {
		return PortRange{}, xerrors.Errorf("ending port %d is over %d: %w", end, constant.MaxPort, ErrInvalidPortRange)
	}
	return PortRange{Start: start, End: end}, nil
}

func (r PortRange) Contains(port uint32) bool {
	return r.Start <= port && port <= r.End
}

func (r PortRange) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Rule is one access-control entry. It is never mutated after construction.
type Rule struct {
	Action        Action
	Protocol      Protocol
	PortRange     PortRange
	SourceIP      string
	DestinationIP string
}

func NewRule(action Action, protocol Protocol, start, end uint32, sourceIP, destinationIP string) (*Rule, error) {
	portRange, err := NewPortRange(start, end)
	if err != nil {
		return nil, xerrors.Errorf("failed to create rule: %w", err)
	}

	return &Rule{
		Action:        action,
		Protocol:      protocol,
		PortRange:     portRange,
		SourceIP:      sourceIP,
		DestinationIP: destinationIP,
	}, nil
}

func (r *Rule) String() string {
	return fmt.Sprintf("{Action: %s Protocol: %s PortRange: %s SourceIP: %s DestinationIP: %s}", r.Action, r.Protocol, r.PortRange, r.SourceIP, r.DestinationIP)
}
