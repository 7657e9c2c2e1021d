package sigs

import (
	"testing"

	"github.com/iov-one/artmarket/crypto"
	"github.com/iov-one/artmarket/errors"
	"github.com/iov-one/artmarket/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignBytes(t *testing.T) {
	const chainID = "art-chain"
	base, err := SignBytes([]byte("tx"), chainID, 17)
	require.NoError(t, err)
	assert.Len(t, base, 64)

	// Every input is part of the digest.
	for name, args := range map[string]struct {
		tx    string
		chain string
		seq   int64
	}{
		"tx":       {"other", chainID, 17},
		"chain id": {"tx", chainID + "2", 17},
		"sequence": {"tx", chainID, 18},
	} {
		got, err := SignBytes([]byte(args.tx), args.chain, args.seq)
		require.NoError(t, err, name)
		assert.NotEqual(t, base, got, name)
	}

	_, err = SignBytes([]byte("tx"), chainID, -1)
	assert.True(t, ErrInvalidSequence.Is(err))
	_, err = SignBytes([]byte("tx"), "bad", 1)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVerifyConsumesNonces(t *testing.T) {
	const chainID = "art-chain"
	db := store.MemStore()
	users := newUserBucket()
	priv := crypto.GenPrivKeyEd25519()
	tx := newSignedTx("buy token 7")

	sign := func(seq int64) *StdSignature {
		sig, err := SignTx(priv, tx, chainID, seq)
		require.NoError(t, err)
		return sig
	}
	run := func(sigs ...*StdSignature) error {
		tx.sigs = sigs
		_, err := verifyTx(db, users, tx, chainID)
		return err
	}

	// Signing is deterministic.
	assert.Equal(t, sign(2), sign(2))

	assert.True(t, ErrInvalidSequence.Is(run(sign(1))))
	assert.True(t, errors.ErrUnauthorized.Is(run(new(StdSignature))))
	assert.NoError(t, run(sign(0)))
	assert.NoError(t, run(sign(1)))

	// Replays and gaps are refused.
	assert.True(t, ErrInvalidSequence.Is(run(sign(1))))
	assert.True(t, ErrInvalidSequence.Is(run(sign(13))))

	// A signature made for another chain or payload does not verify.
	other, err := SignTx(priv, newSignedTx("sell token 7"), chainID, 2)
	require.NoError(t, err)
	assert.True(t, ErrInvalidSignature.Is(run(other)))
	other, err = SignTx(priv, tx, "other-chain", 2)
	require.NoError(t, err)
	assert.True(t, ErrInvalidSignature.Is(run(other)))

	nonce, err := NextNonce(db, priv.PublicKey().Address())
	require.NoError(t, err)
	assert.EqualValues(t, 2, nonce)

	tx.sigs = []*StdSignature{sign(2)}
	signers, err := verifyTx(db, users, tx, chainID)
	require.NoError(t, err)
	assert.Equal(t, priv.PublicKey().Condition(), signers[0])

	nonce, err = NextNonce(db, crypto.GenPrivKeyEd25519().PublicKey().Address())
	require.NoError(t, err)
	assert.EqualValues(t, 0, nonce)
}
