package events_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/backoffice/pkg/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoriesCoverEveryType(t *testing.T) {
	t.Parallel()
	f := events.Factories()
	for _, typ := range []string{
		events.TypeUserRegistered,
		events.TypeDepositMade,
		events.TypeWithdrawMade,
		events.TypeLoanIssued,
		events.TypeLoanCompensated,
		events.TypeLoanCovered,
	} {
		ctor, ok := f[typ]
		require.True(t, ok, typ)
		assert.Equal(t, typ, ctor().Type())
	}
}

func TestDecodeIntoFactoryEvent(t *testing.T) {
	t.Parallel()
	raw, err := json.Marshal(events.DepositMade{AccountID: 4, Amount: 150_000, Balance: 650_000})
	require.NoError(t, err)

	evt := events.Factories()[events.TypeDepositMade]()
	require.NoError(t, json.Unmarshal(raw, evt))
	got, ok := evt.(*events.DepositMade)
	require.True(t, ok)
	assert.Equal(t, int64(4), got.AccountID)
	assert.Equal(t, int64(650_000), got.Balance)
}
