package entity

import (
	"fmt"

	"golang.org/x/xerrors"

	"fwsim/constant"
)

var (
	// ErrInvalidPacketProtocol is returned when a packet is built with anything but TCP or UDP.
	ErrInvalidPacketProtocol = xerrors.New("invalid packet protocol")
	// ErrInvalidPort is returned when a packet port exceeds constant.MaxPort.
	ErrInvalidPort = xerrors.New("invalid port")
)

// Packet is a simulated traffic unit classified against the rules.
type Packet struct {
	Protocol      Protocol
	Port          uint32
	SourceIP      string
	DestinationIP string
}

func NewPacket(protocol Protocol, port uint32, sourceIP, destinationIP string) (*Packet, error) {
	if protocol != ProtocolTCP && protocol != ProtocolUDP {
		return nil, xerrors.Errorf("protocol %s is not allowed for a packet (use TCP or UDP): %w", protocol, ErrInvalidPacketProtocol)
	}
	if port > constant.MaxPort {
		return nil, xerrors.Errorf("port %d is over %d: %w", port, constant.MaxPort, ErrInvalidPort)
	}

	return &Packet{
		Protocol:      protocol,
		Port:          port,
		SourceIP:      sourceIP,
		DestinationIP: destinationIP,
	}, nil
}

func (p *Packet) String() string {
	return fmt.Sprintf("{Protocol: %s Port: %d SourceIP: %s DestinationIP: %s}", p.Protocol, p.Port, p.SourceIP, p.DestinationIP)
}
