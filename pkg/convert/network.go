package convert

import (
	"strings"

	"golang.org/x/xerrors"

	"fwsim/domain/entity"
)

var (
	ErrUnknownProtocol = xerrors.New("unknown protocol")
	ErrUnknownAction   = xerrors.New("unknown action")
)

// StringToProtocol accepts TCP, UDP and All in any case.
func StringToProtocol(proto string) (protocol entity.Protocol, err error) {
	switch strings.ToLower(proto) {
	case "tcp":
		protocol = entity.ProtocolTCP
	case "udp":
		protocol = entity.ProtocolUDP
	case "all":
		protocol = entity.ProtocolAll
	default:
		err = xerrors.Errorf("%q (use 'TCP', 'UDP', or 'All'): %w", proto, ErrUnknownProtocol)
	}
	return
}

// StringToAction accepts allow and deny in any case.
func StringToAction(action string) (a entity.Action, err error) {
	switch strings.ToLower(action) {
	case "allow":
		a = entity.ActionAllow
	case "deny":
		a = entity.ActionDeny
	default:
		err = xerrors.Errorf("%q (use 'allow' or 'deny'): %w", action, ErrUnknownAction)
	}
	return
}
