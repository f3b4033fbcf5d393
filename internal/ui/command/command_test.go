package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/stellar-empires/internal/order"
)

func TestParse_Orders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want order.Details
	}{
		{"move 3 12", order.FleetMove{Fleet: 3, Destination: 12}},
		{"MOVE 3 12", order.FleetMove{Fleet: 3, Destination: 12}},
		{"rename 5 New Terra", order.Rename{Object: 5, Name: "New Terra"}},
		{"colonize 8 21", order.Colonize{Planet: 8, Ship: 21}},
		{"scrap 4", order.Scrap{Object: 4}},
		{"research LRN_ALGO_ELEGANCE", order.ResearchQueue{Tech: "LRN_ALGO_ELEGANCE", Position: QueueEnd}},
		{"research GRO_PLANET_ECOL 0", order.ResearchQueue{Tech: "GRO_PLANET_ECOL", Position: 0}},
		{"  produce BLD_SHIPYARD_BASE   7 ", order.ProductionQueue{Item: "BLD_SHIPYARD_BASE", Location: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			cmd, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, ActionIssue, cmd.Action)
			assert.Equal(t, tt.want, cmd.Details)
		})
	}
}

func TestParse_Actions(t *testing.T) {
	t.Parallel()

	tests := map[string]Action{
		"send":  ActionSend,
		"end":   ActionEnd,
		"quit":  ActionQuit,
		"exit":  ActionQuit,
		"help":  ActionHelp,
		"?":     ActionHelp,
		"Send ": ActionSend,
	}
	for line, want := range tests {
		cmd, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, want, cmd.Action, line)
		assert.Nil(t, cmd.Details, line)
	}

	cmd, err := Parse("rescind 17")
	require.NoError(t, err)
	assert.Equal(t, ActionRescind, cmd.Action)
	assert.Equal(t, 17, cmd.OrderID)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse("warp 1 2")
	assert.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), "warp")

	for _, line := range []string{
		"move 1",
		"move a b",
		"move 1 2 3",
		"rename 5",
		"rename x Name",
		"scrap",
		"research",
		"research T -2",
		"research T x",
		"produce ITEM",
		"produce ITEM here",
		"rescind",
		"rescind one",
	} {
		_, err := Parse(line)
		assert.ErrorIs(t, err, ErrUsage, line)
	}

	_, err = Parse("colonize 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colonize <planet> <ship>")
}
