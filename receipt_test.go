package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferLog(t *testing.T, event *EventDef, from, to common.Address, value *big.Int) Log {
	t.Helper()
	var fromTopic, toTopic [32]byte
	copy(fromTopic[12:], from[:])
	copy(toTopic[12:], to[:])
	data, err := EncodeParams([]Type{Uint(256)}, []Value{NewUint(value)})
	require.NoError(t, err)
	return Log{
		Topics: [][32]byte{event.Topic(), fromTopic, toTopic},
		Data:   data,
	}
}

func TestDecodeReceiptLogsSkipsUnknownTopics(t *testing.T) {
	registry := buildERC20Registry(t)
	event, err := registry.EventByName("Transfer")
	require.NoError(t, err)

	known := transferLog(t, event,
		common.HexToAddress("0x00000000000000000000000000000000000001"),
		common.HexToAddress("0x00000000000000000000000000000000000002"),
		big.NewInt(5))

	unknown := Log{Topics: [][32]byte{{0xff}}, Data: nil}

	decoded := registry.DecodeReceiptLogs([]Log{known, unknown})
	require.Len(t, decoded, 1)
	assert.Equal(t, "Transfer", decoded[0].Event.Name)
}

func TestFilterLogsByEventName(t *testing.T) {
	registry := buildERC20Registry(t)
	event, err := registry.EventByName("Transfer")
	require.NoError(t, err)

	log1 := transferLog(t, event,
		common.HexToAddress("0x00000000000000000000000000000000000001"),
		common.HexToAddress("0x00000000000000000000000000000000000002"),
		big.NewInt(5))

	decoded, err := registry.FilterLogsByEventName([]Log{log1}, "Transfer")
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, big.NewInt(5), decoded[0].Event.Args["value"].Int)

	_, err = registry.FilterLogsByEventName(nil, "NoSuchEvent")
	assert.ErrorIs(t, err, ErrUnknownEvent)
}
