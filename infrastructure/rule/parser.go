package rule

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"

	"fwsim/constant"
	"fwsim/domain/entity"
	"fwsim/infrastructure/log"
	"fwsim/pkg/convert"
)

var (
	// ErrMalformedRecord is returned when a persisted record violates the rule constraints.
	ErrMalformedRecord = xerrors.New("malformed rule record")
)

type Parser interface {
	Load(path string) ([]byte, error)
	Parse(rawRuleData []byte) ([]entity.Rule, error)
	Marshal(rules []entity.Rule) ([]byte, error)
}

// Record is the persisted form of a rule.
type Record struct {
	Action             string `json:"action" yaml:"action"`
	Protocol           string `json:"protocol" yaml:"protocol"`
	StartingPortNumber int64  `json:"starting_port_number" yaml:"starting_port_number"`
	EndingPortNumber   int64  `json:"ending_port_number" yaml:"ending_port_number"`
	SourceIP           string `json:"source_ip" yaml:"source_ip"`
	DestinationIP      string `json:"destination_ip" yaml:"destination_ip"`
}

func NewRecord(rule *entity.Rule) Record {
	return Record{
		Action:             rule.Action.String(),
		Protocol:           rule.Protocol.String(),
		StartingPortNumber: int64(rule.PortRange.Start),
		EndingPortNumber:   int64(rule.PortRange.End),
		SourceIP:           rule.SourceIP,
		DestinationIP:      rule.DestinationIP,
	}
}

// ToRule validates the record and builds the rule from it.
func (r *Record) ToRule() (*entity.Rule, error) {
	action, err := convert.StringToAction(r.Action)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrMalformedRecord)
	}
	protocol, err := convert.StringToProtocol(r.Protocol)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrMalformedRecord)
	}
	if r.StartingPortNumber < 0 || r.EndingPortNumber < 0 || r.EndingPortNumber > int64(constant.MaxPort) {
		return nil, xerrors.Errorf("port range %d-%d is out of %d-%d: %w", r.StartingPortNumber, r.EndingPortNumber, constant.MinPort, constant.MaxPort, ErrMalformedRecord)
	}

	rule, err := entity.NewRule(action, protocol, uint32(r.StartingPortNumber), uint32(r.EndingPortNumber), r.SourceIP, r.DestinationIP)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrMalformedRecord)
	}
	return rule, nil
}

func recordsToRules(records []Record) (rules []entity.Rule, err error) {
	rules = make([]entity.Rule, 0, len(records))
	for i := range records {
		var rule *entity.Rule
		rule, err = records[i].ToRule()
		if err != nil {
			err = xerrors.Errorf("failed to convert record %d: %w", i, err)
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return
}

func rulesToRecords(rules []entity.Rule) []Record {
	records := make([]Record, 0, len(rules))
	for i := range rules {
		records = append(records, NewRecord(&rules[i]))
	}
	return records
}

func load(path string) (rawRuleData []byte, err error) {
	log.Logger.Debugf("trying to load rules path: %s", path)
	rawRuleData, err = os.ReadFile(path)
	return
}

type JSONParser struct {
}

func NewJSONParser() (parser *JSONParser) {
	parser = &JSONParser{}
	return
}

func (p *JSONParser) Load(path string) ([]byte, error) {
	return load(path)
}

func (p *JSONParser) Parse(rawRuleData []byte) (rules []entity.Rule, err error) {
	var records []Record
	err = json.Unmarshal(rawRuleData, &records)
	if err != nil {
		err = xerrors.Errorf("failed to unmarshal json rules: %v: %w", err, ErrMalformedRecord)
		return
	}
	rules, err = recordsToRules(records)
	if err != nil {
		err = xerrors.Errorf("failed to json data to rules: %w", err)
		return
	}
	return
}

func (p *JSONParser) Marshal(rules []entity.Rule) (rawRuleData []byte, err error) {
	rawRuleData, err = json.MarshalIndent(rulesToRecords(rules), "", "  ")
	if err != nil {
		err = xerrors.Errorf("failed to marshal json rules: %w", err)
		return
	}
	rawRuleData = append(rawRuleData, '\n')
	return
}

type YamlParser struct {
}

func NewYamlParser() (parser *YamlParser) {
	parser = &YamlParser{}
	return
}

func (p *YamlParser) Load(path string) ([]byte, error) {
	return load(path)
}

func (p *YamlParser) Parse(rawRuleData []byte) (rules []entity.Rule, err error) {
	var records []Record
	err = yaml.Unmarshal(rawRuleData, &records)
	if err != nil {
		err = xerrors.Errorf("failed to unmarshal yaml rules: %v: %w", err, ErrMalformedRecord)
		return
	}
	rules, err = recordsToRules(records)
	if err != nil {
		err = xerrors.Errorf("failed to yaml data to rules: %w", err)
		return
	}
	return
}

func (p *YamlParser) Marshal(rules []entity.Rule) (rawRuleData []byte, err error) {
	rawRuleData, err = yaml.Marshal(rulesToRecords(rules))
	if err != nil {
		err = xerrors.Errorf("failed to marshal yaml rules: %w", err)
		return
	}
	return
}

// NewParser picks the parser from the file extension, JSON unless it is .yml or .yaml.
func NewParser(path string) Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return NewYamlParser()
	default:
		return NewJSONParser()
	}
}

func isBlank(rawRuleData []byte) bool {
	return len(bytes.TrimSpace(rawRuleData)) == 0
}
