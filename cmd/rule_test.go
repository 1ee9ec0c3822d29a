package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"fwsim/domain/entity"
	ruleInfra "fwsim/infrastructure/rule"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	code := m.Run()

	os.Exit(code)
}

// run executes the command line against the rules file and returns what it printed.
func run(t *testing.T, rulesPath string, args ...string) (string, error) {
	t.Helper()
	command := NewRootCommand()
	out := &bytes.Buffer{}
	command.SetOut(out)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(append([]string{"--rules", rulesPath}, args...))
	err := command.Execute()
	return out.String(), err
}

func loadRules(t *testing.T, path string) []entity.Rule {
	t.Helper()
	rules, err := ruleInfra.LoadRules(path)
	require.NoError(t, err)
	return rules.List()
}

func TestAddAndListRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")

	out, err := run(t, path, "add_rule", "allow", "TCP", "80", "90", "1.1.1.1", "2.2.2.2")
	require.NoError(t, err)
	assert.Equal(t, "Rule added successfully.\n", out)

	_, err = run(t, path, "add_rule", "deny", "All", "0", "65535", "3.3.3.3", "4.4.4.4")
	require.NoError(t, err)

	rules := loadRules(t, path)
	require.Len(t, rules, 2)
	assert.Equal(t, entity.ActionAllow, rules[0].Action)
	assert.Equal(t, entity.ProtocolAll, rules[1].Protocol)

	out, err = run(t, path, "list_rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Rule 0:\n{\n")
	assert.Contains(t, out, `"action": "Allow"`)
	assert.Contains(t, out, "Rule 1:\n")
	assert.Contains(t, out, `"protocol": "All"`)
}

func TestAddRule_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "Unknown action.", args: []string{"add_rule", "drop", "TCP", "1", "2", "a", "b"}},
		{name: "Unknown protocol.", args: []string{"add_rule", "allow", "ICMP", "1", "2", "a", "b"}},
		{name: "Reversed port range.", args: []string{"add_rule", "allow", "TCP", "90", "80", "a", "b"}, wantErr: entity.ErrInvalidPortRange},
		{name: "Port is not a number.", args: []string{"add_rule", "allow", "TCP", "http", "80", "a", "b"}},
		{name: "Missing arguments.", args: []string{"add_rule", "allow", "TCP"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, path, tt.args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, xerrors.Is(err, tt.wantErr))
			}
			assert.Empty(t, loadRules(t, path))
		})
	}
}

func TestListRules_Empty(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "rules.json"), "list_rules")
	require.NoError(t, err)
	assert.Equal(t, "No rules.\n", out)
}

func TestSimulateTraffic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yml")
	_, err := run(t, path, "add_rule", "deny", "TCP", "1", "65535", "1.1.1.1", "2.2.2.2")
	require.NoError(t, err)
	_, err = run(t, path, "add_rule", "allow", "TCP", "80", "80", "1.1.1.1", "2.2.2.2")
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{
			name: "The allow rule after the deny rule lets the packet through.",
			args: []string{"simulate_traffic", "TCP", "80", "1.1.1.1", "2.2.2.2"},
			want: "Packet allowed.\n",
		},
		{
			name: "No allow rule matches.",
			args: []string{"simulate_traffic", "UDP", "80", "1.1.1.1", "2.2.2.2"},
			want: "Packet denied.\n",
		},
		{
			name: "The trail shows the deny rule.",
			args: []string{"simulate_traffic", "--trail", "TCP", "81", "1.1.1.1", "2.2.2.2"},
			want: "Packet {Protocol: TCP Port: 81 SourceIP: 1.1.1.1 DestinationIP: 2.2.2.2} denied by the special rule 0: " +
				"{Action: Deny Protocol: TCP PortRange: 1-65535 SourceIP: 1.1.1.1 DestinationIP: 2.2.2.2}\nPacket denied.\n",
		},
		{
			name:    "All is not a packet protocol.",
			args:    []string{"simulate_traffic", "All", "80", "1.1.1.1", "2.2.2.2"},
			wantErr: entity.ErrInvalidPacketProtocol,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, path, tt.args...)
			if tt.wantErr != nil {
				assert.True(t, xerrors.Is(err, tt.wantErr), "error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDeleteRule(t *testing.T) {
	prepare := func(t *testing.T) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "rules.json")
		for _, args := range [][]string{
			{"add_rule", "allow", "TCP", "80", "90", "1.1.1.1", "2.2.2.2"},
			{"add_rule", "allow", "UDP", "53", "53", "3.3.3.3", "4.4.4.4"},
			{"add_rule", "deny", "All", "80", "90", "5.5.5.5", "2.2.2.2"},
		} {
			_, err := run(t, path, args...)
			require.NoError(t, err)
		}
		return path
	}

	tests := []struct {
		name       string
		args       []string
		wantOut    string
		wantRemain int
		wantErr    error
	}{
		{
			name:       "Delete by index.",
			args:       []string{"delete_rule", "index", "0"},
			wantOut:    "Deleted rule at index 0:\n",
			wantRemain: 2,
		},
		{
			name:       "Delete by an index out of range.",
			args:       []string{"delete_rule", "index", "5"},
			wantOut:    "Invalid index: 5\n",
			wantRemain: 3,
			wantErr:    entity.ErrIndexOutOfRange,
		},
		{
			name:       "Delete by protocol.",
			args:       []string{"delete_rule", "protocol", "UDP"},
			wantOut:    "Deleted rule:\n",
			wantRemain: 2,
		},
		{
			name:       "Delete by protocol ignores the case.",
			args:       []string{"delete_rule", "protocol", "tcp"},
			wantOut:    "Deleted rule:\n",
			wantRemain: 2,
		},
		{
			name:       "Delete by source ip.",
			args:       []string{"delete_rule", "source_ip", "9.9.9.9"},
			wantOut:    "No rules found with source IP: 9.9.9.9\n",
			wantRemain: 3,
		},
		{
			name:       "Delete by destination ip.",
			args:       []string{"delete_rule", "destination_ip", "2.2.2.2"},
			wantOut:    "Deleted rule:\n",
			wantRemain: 1,
		},
		{
			name:       "Delete by port range.",
			args:       []string{"delete_rule", "port_range", "80", "90"},
			wantOut:    "Deleted rule:\n",
			wantRemain: 1,
		},
		{
			name:       "Delete by an overlapping port range removes nothing.",
			args:       []string{"delete_rule", "port_range", "80", "85"},
			wantOut:    "No rules found with port range: 80 - 85\n",
			wantRemain: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := prepare(t)

			out, err := run(t, path, tt.args...)
			if tt.wantErr != nil {
				assert.True(t, xerrors.Is(err, tt.wantErr), "error = %v, wantErr %v", err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out, tt.wantOut)
			assert.Len(t, loadRules(t, path), tt.wantRemain)
		})
	}
}
