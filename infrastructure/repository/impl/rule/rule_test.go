package rule

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fwsim/domain/entity"
)

func TestRepository_SaveAndLoad(t *testing.T) {
	r := NewRuleRepository(filepath.Join(t.TempDir(), "rules.json"))

	rules, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, rules.Len())

	allow, err := entity.NewRule(entity.ActionAllow, entity.ProtocolTCP, 80, 80, "1.1.1.1", "2.2.2.2")
	require.NoError(t, err)
	deny, err := entity.NewRule(entity.ActionDeny, entity.ProtocolUDP, 0, 65535, "3.3.3.3", "4.4.4.4")
	require.NoError(t, err)
	rules.Add(*allow)
	rules.Add(*deny)

	require.NoError(t, r.Save(rules))

	got, err := r.Load()
	require.NoError(t, err)
	assert.Equal(t, []entity.Rule{*allow, *deny}, got.List())
}
