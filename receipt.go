package abi

import "github.com/ethereum/go-ethereum/common"

// Log is one entry of a transaction receipt: the event payload plus
// bookkeeping the codec never inspects.
type Log struct {
	Address     common.Address
	Topics      [][32]byte
	Data        []byte
	BlockNumber uint64
	TxHash      [32]byte
	Index       uint
}

// DecodedLog pairs a decoded event record with the original log's
// bookkeeping metadata.
type DecodedLog struct {
	Log   Log
	Event *DecodedEvent
}

// DecodeReceiptLogs filters logs to those whose topics[0] is known to
// the registry, dispatches each to DecodeLog, and returns the decoded
// records annotated with their source log. This is a thin façade over
// the registry's topic index and the Log Decoder, not codec logic in
// its own right — unknown topics and any per-log decode failure are
// silently skipped rather than aborting the whole batch.
func (r *Registry) DecodeReceiptLogs(logs []Log) []DecodedLog {
	var out []DecodedLog
	for _, l := range logs {
		if len(l.Topics) == 0 {
			continue
		}
		event, err := r.EventByTopic(l.Topics[0])
		if err != nil {
			continue
		}
		decoded, err := DecodeLog(event, l.Data, l.Topics)
		if err != nil {
			continue
		}
		out = append(out, DecodedLog{Log: l, Event: decoded})
	}
	return out
}

// FilterLogsByEventName is the by-name counterpart of
// DecodeReceiptLogs: a linear scan restricted to one event, for
// callers who already know what they're looking for.
func (r *Registry) FilterLogsByEventName(logs []Log, name string) ([]DecodedLog, error) {
	event, err := r.EventByName(name)
	if err != nil {
		return nil, err
	}
	var out []DecodedLog
	for _, l := range logs {
		if len(l.Topics) == 0 {
			continue
		}
		if !event.Anonymous && l.Topics[0] != event.Topic() {
			continue
		}
		decoded, err := DecodeLog(event, l.Data, l.Topics)
		if err != nil {
			continue
		}
		out = append(out, DecodedLog{Log: l, Event: decoded})
	}
	return out, nil
}
