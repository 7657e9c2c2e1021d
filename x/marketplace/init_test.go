package marketplace

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/artmarket"
	"github.com/iov-one/artmarket/artmarkettest"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/store"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	owner := artmarkettest.NewCondition().Address()
	registry := artmarkettest.NewCondition().Address()

	cases := map[string]struct {
		conf    string
		wantFee uint64
		wantErr *errors.Error
	}{
		"explicit fee": {
			conf:    fmt.Sprintf(`{"owner": "%s", "listing_fee": 25, "asset_registry": "%s"}`, owner, registry),
			wantFee: 25,
		},
		"default fee": {
			conf:    fmt.Sprintf(`{"owner": "%s"}`, owner),
			wantFee: DefaultListingFee,
		},
		"missing owner": {
			conf:    `{"listing_fee": 3}`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			opts := artmarket.Options{
				"conf": json.RawMessage(fmt.Sprintf(`{"marketplace": %s}`, tc.conf)),
			}
			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
				return
			}
			require.NoError(t, err)

			conf, err := loadConfig(db)
			require.NoError(t, err)
			require.Equal(t, owner, conf.Owner)
			require.Equal(t, tc.wantFee, conf.ListingFee)
		})
	}
}

func TestGenesisWithoutConfiguration(t *testing.T) {
	err := Initializer{}.FromGenesis(artmarket.Options{}, store.MemStore())
	require.True(t, errors.ErrNotFound.Is(err))
}
