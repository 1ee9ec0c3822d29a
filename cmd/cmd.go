package cmd

import (
	"github.com/spf13/cobra"

	"fwsim/config"
	"fwsim/constant"
	"fwsim/handler"
	ruleRepo "fwsim/infrastructure/repository/impl/rule"
)

var rootArgs struct {
	rulesPath string
}

// NewRootCommand builds the command tree. Every subcommand loads the rules file, applies its change and saves it back.
func NewRootCommand() *cobra.Command {
	command := &cobra.Command{
		Use:          constant.ProgName,
		Short:        "This program simulates a basic firewall",
		Version:      "1.0",
		SilenceUsage: true,
	}

	command.PersistentFlags().StringVar(&rootArgs.rulesPath, "rules", config.RulesPath(), "the rules file (.json, or .yml/.yaml for YAML)")

	command.AddCommand(
		newAddRuleCommand(),
		newListRulesCommand(),
		newDeleteRuleCommand(),
		newSimulateTrafficCommand(),
	)
	return command
}

// Execute runs the command line.
func Execute() error {
	return NewRootCommand().Execute()
}

func newHandler() ruleHandler {
	return handler.NewRule(ruleRepo.NewRuleRepository(rootArgs.rulesPath))
}
