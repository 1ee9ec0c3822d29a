package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"fwsim/domain/entity"
	"fwsim/domain/valueobject"
	ruleInfra "fwsim/infrastructure/rule"
	"fwsim/pkg/convert"
)

type ruleHandler interface {
	Add(r entity.Rule) error
	List() ([]entity.Rule, error)
	DeleteByIndex(index int) (entity.Rule, error)
	DeleteByProtocol(p entity.Protocol) ([]entity.Rule, error)
	DeleteBySourceIP(ip string) ([]entity.Rule, error)
	DeleteByDestinationIP(ip string) ([]entity.Rule, error)
	DeleteByPortRange(start, end uint32) ([]entity.Rule, error)
	Simulate(packet *entity.Packet) (bool, []*valueobject.DenyEvent, error)
}

var (
	allowed = color.New(color.FgGreen, color.Bold)
	denied  = color.New(color.FgRed, color.Bold)
	notice  = color.New(color.FgYellow)
)

var simulateArgs struct {
	trail bool
}

func newAddRuleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add_rule <action> <protocol> <starting_port> <ending_port> <source_ip> <destination_ip>",
		Short: "Adds a new rule to the firewall",
		Long:  "Adds a new rule to the end of the firewall rules. Action is allow or deny, protocol is TCP, UDP, or All.",
		Args:  cobra.ExactArgs(6),
		RunE:  addRuleCmdRun,
	}
}

func addRuleCmdRun(cmd *cobra.Command, args []string) error {
	action, err := convert.StringToAction(args[0])
	if err != nil {
		return xerrors.Errorf("invalid action: %w", err)
	}
	protocol, err := convert.StringToProtocol(args[1])
	if err != nil {
		return xerrors.Errorf("invalid protocol: %w", err)
	}
	start, err := convert.StringToPort(args[2])
	if err != nil {
		return xerrors.Errorf("invalid starting port: %w", err)
	}
	end, err := convert.StringToPort(args[3])
	if err != nil {
		return xerrors.Errorf("invalid ending port: %w", err)
	}

	rule, err := entity.NewRule(action, protocol, start, end, args[4], args[5])
	if err != nil {
		return xerrors.Errorf(": %w", err)
	}

	if err = newHandler().Add(*rule); err != nil {
		return xerrors.Errorf(": %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Rule added successfully.")
	return nil
}

func newListRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list_rules",
		Short: "Lists all firewall rules",
		Args:  cobra.NoArgs,
		RunE:  listRulesCmdRun,
	}
}

func listRulesCmdRun(cmd *cobra.Command, _ []string) error {
	rules, err := newHandler().List()
	if err != nil {
		return xerrors.Errorf(": %w", err)
	}

	out := cmd.OutOrStdout()
	if len(rules) == 0 {
		fmt.Fprintln(out, "No rules.")
		return nil
	}
	for i := range rules {
		if err = printRule(out, fmt.Sprintf("Rule %d:", i), &rules[i]); err != nil {
			return err
		}
	}
	return nil
}

// printRule writes the title and the rule as its persisted record.
func printRule(w io.Writer, title string, rule *entity.Rule) error {
	raw, err := json.MarshalIndent(ruleInfra.NewRecord(rule), "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to serialize rule: %w", err)
	}
	fmt.Fprintf(w, "%s\n%s\n\n", title, raw)
	return nil
}

func newDeleteRuleCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "delete_rule",
		Short: "Deletes firewall rules by index or by field",
	}

	command.AddCommand(
		&cobra.Command{
			Use:   "index <index>",
			Short: "Deletes the rule at the index, the following rules move up by one",
			Args:  cobra.ExactArgs(1),
			RunE:  deleteByIndexCmdRun,
		},
		&cobra.Command{
			Use:   "protocol <protocol>",
			Short: "Deletes every rule with exactly this protocol (TCP, UDP, or All)",
			Args:  cobra.ExactArgs(1),
			RunE:  deleteByProtocolCmdRun,
		},
		&cobra.Command{
			Use:   "source_ip <source_ip>",
			Short: "Deletes every rule with this source IP",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				removed, err := newHandler().DeleteBySourceIP(args[0])
				return printRemoved(cmd.OutOrStdout(), removed, err, "source IP: "+args[0])
			},
		},
		&cobra.Command{
			Use:   "destination_ip <destination_ip>",
			Short: "Deletes every rule with this destination IP",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				removed, err := newHandler().DeleteByDestinationIP(args[0])
				return printRemoved(cmd.OutOrStdout(), removed, err, "destination IP: "+args[0])
			},
		},
		&cobra.Command{
			Use:   "port_range <starting_port> <ending_port>",
			Short: "Deletes every rule with exactly this port range",
			Args:  cobra.ExactArgs(2),
			RunE:  deleteByPortRangeCmdRun,
		},
	)
	return command
}

func deleteByIndexCmdRun(cmd *cobra.Command, args []string) error {
	index, err := convert.StringToIndex(args[0])
	if err != nil {
		return xerrors.Errorf("invalid index: %w", err)
	}

	out := cmd.OutOrStdout()
	removed, err := newHandler().DeleteByIndex(index)
	if err != nil {
		if xerrors.Is(err, entity.ErrIndexOutOfRange) {
			notice.Fprintf(out, "Invalid index: %d\n", index)
		}
		return xerrors.Errorf(": %w", err)
	}
	return printRule(out, fmt.Sprintf("Deleted rule at index %d:", index), &removed)
}

func deleteByProtocolCmdRun(cmd *cobra.Command, args []string) error {
	protocol, err := convert.StringToProtocol(args[0])
	if err != nil {
		return xerrors.Errorf("invalid protocol: %w", err)
	}
	removed, err := newHandler().DeleteByProtocol(protocol)
	return printRemoved(cmd.OutOrStdout(), removed, err, "protocol: "+protocol.String())
}

func deleteByPortRangeCmdRun(cmd *cobra.Command, args []string) error {
	start, err := convert.StringToPort(args[0])
	if err != nil {
		return xerrors.Errorf("invalid starting port: %w", err)
	}
	end, err := convert.StringToPort(args[1])
	if err != nil {
		return xerrors.Errorf("invalid ending port: %w", err)
	}
	removed, err := newHandler().DeleteByPortRange(start, end)
	return printRemoved(cmd.OutOrStdout(), removed, err, fmt.Sprintf("port range: %d - %d", start, end))
}

// printRemoved renders the result of a deletion by field. Removing nothing is not an error.
func printRemoved(w io.Writer, removed []entity.Rule, err error, criteria string) error {
	if err != nil {
		return xerrors.Errorf(": %w", err)
	}
	if len(removed) == 0 {
		notice.Fprintf(w, "No rules found with %s\n", criteria)
		return nil
	}
	for i := range removed {
		if err = printRule(w, "Deleted rule:", &removed[i]); err != nil {
			return err
		}
	}
	return nil
}

func newSimulateTrafficCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "simulate_traffic <protocol> <port> <source_ip> <destination_ip>",
		Short: "Simulates a packet passing through the firewall",
		Long:  "Simulates a TCP or UDP packet passing through the firewall. The first matching allow rule lets it through, otherwise it is denied.",
		Args:  cobra.ExactArgs(4),
		RunE:  simulateTrafficCmdRun,
	}

	command.Flags().BoolVar(&simulateArgs.trail, "trail", false, "print every deny rule passed over during the evaluation")

	return command
}

func simulateTrafficCmdRun(cmd *cobra.Command, args []string) error {
	protocol, err := convert.StringToProtocol(args[0])
	if err != nil {
		return xerrors.Errorf("invalid protocol: %w", err)
	}
	port, err := convert.StringToPort(args[1])
	if err != nil {
		return xerrors.Errorf("invalid port: %w", err)
	}
	packet, err := entity.NewPacket(protocol, port, args[2], args[3])
	if err != nil {
		return xerrors.Errorf(": %w", err)
	}

	ok, trail, err := newHandler().Simulate(packet)
	if err != nil {
		return xerrors.Errorf(": %w", err)
	}

	out := cmd.OutOrStdout()
	if simulateArgs.trail {
		for _, event := range trail {
			fmt.Fprintf(out, "Packet %s denied by the special rule %d: %s\n", &event.Packet, event.Index, &event.Rule)
		}
	}
	if ok {
		allowed.Fprintln(out, "Packet allowed.")
	} else {
		denied.Fprintln(out, "Packet denied.")
	}
	return nil
}
