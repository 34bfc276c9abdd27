package aura_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/aurachain/aura/model/aura"
	"github.com/aurachain/aura/utils/unittest"
)

func TestEquivocationProofRoundTrip(t *testing.T) {
	proof := &model.EquivocationProof{
		Offender:     unittest.IdentifierFixture(),
		Slot:         99,
		FirstBlockID: unittest.IdentifierFixture(),
		SecondHeader: *unittest.HeaderFixture(),
	}

	data, err := proof.Encode()
	require.NoError(t, err)

	decoded, err := model.DecodeEquivocationProof(data)
	require.NoError(t, err)
	assert.Equal(t, proof, decoded)
}
