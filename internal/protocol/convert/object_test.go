package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/stellar-empires/internal/opt"
	"github.com/palemoky/stellar-empires/internal/protocol"
	"github.com/palemoky/stellar-empires/internal/universe"
)

func TestObjectToInfo(t *testing.T) {
	t.Parallel()

	o := universe.Object{
		ID:         1001,
		Kind:       universe.KindSystem,
		Name:       "Vega",
		Owner:      opt.Some(1),
		ExploredBy: map[int]bool{3: true, 1: true, 2: false},
	}
	info := ObjectToInfo(o)
	assert.Equal(t, "system", info.Kind)
	require.NotNil(t, info.Owner)
	assert.Equal(t, 1, *info.Owner)
	assert.Equal(t, []int{1, 3}, info.ExploredBy)

	back, err := InfoToObject(info)
	require.NoError(t, err)
	assert.Equal(t, universe.KindSystem, back.Kind)
	assert.True(t, back.Explored(3))
	assert.False(t, back.Explored(2))
	assert.True(t, back.Owner.Is(1))
}

func TestInfoToObject_Unowned(t *testing.T) {
	t.Parallel()

	o, err := InfoToObject(protocol.ObjectInfo{ID: 5, Kind: "field", Name: "Ion Storm"})
	require.NoError(t, err)
	assert.True(t, o.Owner.IsNone())

	_, err = InfoToObject(protocol.ObjectInfo{ID: 6, Kind: "nebula"})
	assert.ErrorContains(t, err, "object 6")
}
