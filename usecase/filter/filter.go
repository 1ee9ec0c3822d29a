package filter

import (
	"fwsim/domain/entity"
	"fwsim/domain/valueobject"
	"fwsim/infrastructure/log"
)

// matches reports whether an Allow rule lets the packet through.
// Protocol must be literally equal, All on a rule is not a wildcard.
func matches(rule *entity.Rule, packet *entity.Packet) bool {
	return packet.Protocol == rule.Protocol &&
		rule.PortRange.Contains(packet.Port) &&
		packet.SourceIP == rule.SourceIP &&
		packet.DestinationIP == rule.DestinationIP
}

// Evaluate scans rules in order and returns true at the first Allow rule matching the packet.
// Deny rules are never matched against the packet, each one passed over is only recorded in the trail.
// If no Allow rule matches the packet is denied.
func Evaluate(packet *entity.Packet, rules []entity.Rule) (allowed bool, trail []*valueobject.DenyEvent) {
	trail = make([]*valueobject.DenyEvent, 0)
	for i := range rules {
		rule := &rules[i]
		switch rule.Action {
		case entity.ActionAllow:
			if matches(rule, packet) {
				log.Logger.Debugf("packet %s allowed by rule %d: %s", packet, i, rule)
				allowed = true
				return
			}
		case entity.ActionDeny:
			log.Logger.Infof("packet %s denied by the special rule %d: %s", packet, i, rule)
			trail = append(trail, &valueobject.DenyEvent{
				Index:  i,
				Rule:   *rule,
				Packet: *packet,
			})
		}
	}

	log.Logger.Debugf("no allow rule matched packet %s", packet)
	return
}
