package rule

import (
	"golang.org/x/xerrors"

	"fwsim/domain/entity"
	"fwsim/infrastructure/repository/interface/rule"
	ruleInfra "fwsim/infrastructure/rule"
)

// Repository persists the rule store in a JSON or YAML file.
type Repository struct {
	Path string
}

func NewRuleRepository(path string) rule.Repository {
	return &Repository{
		Path: path,
	}
}

func (r *Repository) Load() (*entity.Rules, error) {
	rules, err := ruleInfra.LoadRules(r.Path)
	if err != nil {
		return nil, xerrors.Errorf(": %w", err)
	}
	return rules, nil
}

func (r *Repository) Save(rules *entity.Rules) error {
	if err := ruleInfra.SaveRules(r.Path, rules.List()); err != nil {
		return xerrors.Errorf(": %w", err)
	}
	return nil
}
