package rule

import (
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	"fwsim/constant"
	"fwsim/domain/entity"
	"fwsim/infrastructure/log"
)

// LoadRules loads the rules from the file. A missing or blank file is an empty store.
func LoadRules(path string) (rules *entity.Rules, err error) {
	parser := NewParser(path)
	var rawRuleData []byte
	rawRuleData, err = parser.Load(path)
	if err != nil {
		if xerrors.Is(err, os.ErrNotExist) {
			log.Logger.Debugf("rules file does not exist, starting empty: %s", path)
			return entity.NewRules(nil), nil
		}
		err = xerrors.Errorf("failed to read rules file %s: %w", path, err)
		return
	}
	if isBlank(rawRuleData) {
		return entity.NewRules(nil), nil
	}

	var list []entity.Rule
	list, err = parser.Parse(rawRuleData)
	if err != nil {
		err = xerrors.Errorf("failed to parse rules file %s: %w", path, err)
		return
	}
	rules = entity.NewRules(list)
	return
}

// SaveRules writes the rules in order, replacing the file through a rename.
func SaveRules(path string, rules []entity.Rule) (err error) {
	var rawRuleData []byte
	rawRuleData, err = NewParser(path).Marshal(rules)
	if err != nil {
		err = xerrors.Errorf(": %w", err)
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		err = xerrors.Errorf("failed to create temporary rules file: %w", err)
		return
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(rawRuleData); err != nil {
		_ = tmp.Close()
		err = xerrors.Errorf("failed to write rules: %w", err)
		return
	}
	if err = tmp.Chmod(constant.RulesFileMode); err != nil {
		_ = tmp.Close()
		err = xerrors.Errorf("failed to chmod rules file: %w", err)
		return
	}
	if err = tmp.Close(); err != nil {
		err = xerrors.Errorf("failed to close rules file: %w", err)
		return
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		err = xerrors.Errorf("failed to replace rules file %s: %w", path, err)
		return
	}
	log.Logger.Debugf("saved %d rules to %s", len(rules), path)
	return
}
