package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/stellar-empires/internal/order"
	"github.com/palemoky/stellar-empires/internal/protocol"
)

func TestOrderToInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order order.Order
		want  protocol.OrderInfo
	}{
		{
			name:  "fleet move",
			order: order.Order{ID: 1, EmpireID: 2, Details: order.FleetMove{Fleet: 3, Destination: 4}},
			want:  protocol.OrderInfo{ID: 1, EmpireID: 2, Kind: "fleet_move", Fleet: 3, System: 4},
		},
		{
			name:  "rename",
			order: order.Order{ID: 5, EmpireID: 2, Details: order.Rename{Object: 6, Name: "Sol"}},
			want:  protocol.OrderInfo{ID: 5, EmpireID: 2, Kind: "rename", Object: 6, Name: "Sol"},
		},
		{
			name:  "research",
			order: order.Order{ID: 7, EmpireID: 2, Details: order.ResearchQueue{Tech: "SHP_ZORTRIUM_PLATE", Position: 2}},
			want:  protocol.OrderInfo{ID: 7, EmpireID: 2, Kind: "research_queue", Name: "SHP_ZORTRIUM_PLATE", Position: 2},
		},
		{
			name:  "production",
			order: order.Order{ID: 8, EmpireID: 2, Details: order.ProductionQueue{Item: "SH_OUTPOST", Location: 12}},
			want:  protocol.OrderInfo{ID: 8, EmpireID: 2, Kind: "production_queue", Name: "SH_OUTPOST", Location: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := OrderToInfo(tt.order)
			assert.Equal(t, tt.want, info)

			back, err := InfoToOrder(info)
			require.NoError(t, err)
			assert.Equal(t, tt.order, back)
		})
	}
}

func TestInfoToOrder_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := InfoToOrder(protocol.OrderInfo{ID: 1, Kind: "teleport"})
	assert.Error(t, err)

	_, err = InfosToOrders([]protocol.OrderInfo{{ID: 1, Kind: "scrap", Object: 2}, {ID: 2, Kind: "teleport"}})
	assert.ErrorContains(t, err, "order 2")
}

func TestIntPtr(t *testing.T) {
	t.Parallel()

	assert.Nil(t, IntPtr(3, false))
	p := IntPtr(0, true)
	require.NotNil(t, p)
	assert.Equal(t, 0, *p)
}
