package handler

import (
	"golang.org/x/xerrors"

	"fwsim/domain/entity"
	"fwsim/domain/valueobject"
	"fwsim/infrastructure/log"
	ruleRepo "fwsim/infrastructure/repository/interface/rule"
	"fwsim/usecase/filter"
)

type rule struct {
	repo ruleRepo.Repository
}

func NewRule(repo ruleRepo.Repository) *rule {
	return &rule{repo: repo}
}

func (h rule) Add(r entity.Rule) error {
	rules, err := h.repo.Load()
	if err != nil {
		return xerrors.Errorf("failed to load rules: %w", err)
	}

	rules.Add(r)
	log.Logger.Infof("the rule added at index %d: %s", rules.Len()-1, &r)

	if err = h.repo.Save(rules); err != nil {
		return xerrors.Errorf("failed to save rules: %w", err)
	}
	return nil
}

func (h rule) List() ([]entity.Rule, error) {
	rules, err := h.repo.Load()
	if err != nil {
		return nil, xerrors.Errorf("failed to load rules: %w", err)
	}
	return rules.List(), nil
}

// DeleteByIndex removes one rule. The file is left untouched when the index is out of range.
func (h rule) DeleteByIndex(index int) (removed entity.Rule, err error) {
	rules, err := h.repo.Load()
	if err != nil {
		err = xerrors.Errorf("failed to load rules: %w", err)
		return
	}

	removed, err = rules.DeleteByIndex(index)
	if err != nil {
		log.Logger.Warnf("failed to delete the rule: %s", err.Error())
		err = xerrors.Errorf(": %w", err)
		return
	}
	log.Logger.Infof("the rule removed from index %d: %s", index, &removed)

	if err = h.repo.Save(rules); err != nil {
		err = xerrors.Errorf("failed to save rules: %w", err)
		return
	}
	return
}

func (h rule) DeleteByProtocol(p entity.Protocol) ([]entity.Rule, error) {
	return h.deleteWhere("protocol "+p.String(), func(rules *entity.Rules) []entity.Rule {
		return rules.DeleteByProtocol(p)
	})
}

func (h rule) DeleteBySourceIP(ip string) ([]entity.Rule, error) {
	return h.deleteWhere("source ip "+ip, func(rules *entity.Rules) []entity.Rule {
		return rules.DeleteBySourceIP(ip)
	})
}

func (h rule) DeleteByDestinationIP(ip string) ([]entity.Rule, error) {
	return h.deleteWhere("destination ip "+ip, func(rules *entity.Rules) []entity.Rule {
		return rules.DeleteByDestinationIP(ip)
	})
}

func (h rule) DeleteByPortRange(start, end uint32) ([]entity.Rule, error) {
	return h.deleteWhere("port range "+entity.PortRange{Start: start, End: end}.String(), func(rules *entity.Rules) []entity.Rule {
		return rules.DeleteByPortRange(start, end)
	})
}

// deleteWhere saves the rules only when something was removed.
func (h rule) deleteWhere(what string, remove func(rules *entity.Rules) []entity.Rule) ([]entity.Rule, error) {
	rules, err := h.repo.Load()
	if err != nil {
		return nil, xerrors.Errorf("failed to load rules: %w", err)
	}

	removed := remove(rules)
	if len(removed) == 0 {
		log.Logger.Infof("no rules found with %s", what)
		return removed, nil
	}
	log.Logger.Infof("%d rules removed with %s", len(removed), what)

	if err = h.repo.Save(rules); err != nil {
		return nil, xerrors.Errorf("failed to save rules: %w", err)
	}
	return removed, nil
}

// Simulate evaluates the packet against a snapshot of the stored rules.
func (h rule) Simulate(packet *entity.Packet) (allowed bool, trail []*valueobject.DenyEvent, err error) {
	rules, err := h.repo.Load()
	if err != nil {
		err = xerrors.Errorf("failed to load rules: %w", err)
		return
	}

	allowed, trail = filter.Evaluate(packet, rules.List())
	log.Logger.Infof("packet %s evaluated against %d rules, allowed: %t", packet, rules.Len(), allowed)
	return
}
