package astroledger

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Key prefixes. Every ledger record lives under a single-byte prefix
// followed by its composite key, so nested owner -> date lookups become
// flat (owner, date) keys with no collisions between record kinds.
const (
	prefixChart       byte = 0x01 // ++ chart id        -> ChartRecord (JSON)
	prefixOwnerCharts byte = 0x02 // ++ owner           -> []chart id (JSON)
	prefixCommitment  byte = 0x10 // ++ owner           -> 32-byte commitment
	prefixRegistered  byte = 0x11 // ++ owner           -> 0x01
	prefixPrediction  byte = 0x12 // ++ owner ++ be64(date) -> 32-byte hash
	prefixRating      byte = 0x13 // ++ owner ++ be64(date) -> 1-byte rating
	prefixUserStats   byte = 0x14 // ++ owner           -> userStats (JSON)
	prefixCounter     byte = 0xf0 // ++ name            -> be64 counter
)

// Global counter names.
var (
	counterCharts      = []byte("charts")
	counterOwners      = []byte("owners")
	counterPredictions = []byte("predictions")
)

// userStats is the stored form of an owner's aggregates. The public
// UserStats view derives AverageX10 from RatingSum at read time.
type userStats struct {
	PredictionCount uint64 `json:"predictionCount"`
	RatingCount     uint64 `json:"ratingCount"`
	RatingSum       uint64 `json:"ratingSum"`
}

func chartKey(id string) []byte {
	return append([]byte{prefixChart}, id...)
}

func ownerChartsKey(owner Address) []byte {
	return append([]byte{prefixOwnerCharts}, owner[:]...)
}

func commitmentKey(owner Address) []byte {
	return append([]byte{prefixCommitment}, owner[:]...)
}

func registeredKey(owner Address) []byte {
	return append([]byte{prefixRegistered}, owner[:]...)
}

func predictionKey(owner Address, date uint64) []byte {
	return ownerDateKey(prefixPrediction, owner, date)
}

func ratingKey(owner Address, date uint64) []byte {
	return ownerDateKey(prefixRating, owner, date)
}

func userStatsKey(owner Address) []byte {
	return append([]byte{prefixUserStats}, owner[:]...)
}

func counterKey(name []byte) []byte {
	return append([]byte{prefixCounter}, name...)
}

func ownerDateKey(prefix byte, owner Address, date uint64) []byte {
	key := make([]byte, 0, 1+AddressLength+8)
	key = append(key, prefix)
	key = append(key, owner[:]...)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], date)
	return append(key, buf[:]...)
}

func encodeUint64(v uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return buf[:]
}

func decodeUint64(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// readCounter returns the counter value, 0 when the counter was never set.
func readCounter(kv KV, name []byte) (uint64, error) {
	val, ok, err := kv.Get(counterKey(name))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return decodeUint64(val), nil
}

func encodeChartRecord(rec ChartRecord) ([]byte, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("astroledger: failed to encode chart record: %w", err)
	}
	return b, nil
}

func decodeChartRecord(data []byte) (ChartRecord, error) {
	var rec ChartRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return ChartRecord{}, fmt.Errorf("astroledger: failed to decode chart record: %w", err)
	}
	return rec, nil
}

func encodeChartIDs(ids []string) ([]byte, error) {
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("astroledger: failed to encode chart id list: %w", err)
	}
	return b, nil
}

func decodeChartIDs(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("astroledger: failed to decode chart id list: %w", err)
	}
	return ids, nil
}

func encodeUserStats(s userStats) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("astroledger: failed to encode user stats: %w", err)
	}
	return b, nil
}

func decodeUserStats(data []byte) (userStats, error) {
	var s userStats
	if err := json.Unmarshal(data, &s); err != nil {
		return userStats{}, fmt.Errorf("astroledger: failed to decode user stats: %w", err)
	}
	return s, nil
}

// readUserStats returns the stored aggregates, zero when the owner has none.
func readUserStats(kv KV, owner Address) (userStats, error) {
	val, ok, err := kv.Get(userStatsKey(owner))
	if err != nil {
		return userStats{}, err
	}
	if !ok {
		return userStats{}, nil
	}
	return decodeUserStats(val)
}
