package constant

const (
	// RulesPath is the default path of the persisted rules.
	RulesPath string = "rules.json"

	// ProgName is the name of this program
	ProgName string = "fwsim"

	// MinPort is the lowest port number accepted in rules and packets
	MinPort uint32 = 0

	// MaxPort is the highest port number accepted in rules and packets
	MaxPort uint32 = 65535

	// RulesFileMode is the permission used when the rules file is created
	RulesFileMode = 0o644
)
